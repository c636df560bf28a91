package smoke

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`salesdash smoke checker
=======================

Hits every read endpoint of a running salesdash instance and verifies the
envelope contract, ordering, and cardinality properties.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: smoke_TIMESTAMP.log)
  -verbose
        Log passing checks too
  -help
        Show this help message

Examples:
  # Verify a local instance
  go run cmd/smoke/main.go

  # Verify a deployed instance with verbose output
  go run cmd/smoke/main.go -url https://dash.example.com -verbose
`)
}
