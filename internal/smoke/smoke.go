// Package smoke drives post-deploy verification of a running salesdash
// instance: it hits every read endpoint, validates the envelope contract,
// and checks the ordering and cardinality properties the dashboard relies
// on. It talks plain HTTP; no warehouse credentials are needed.
package smoke

import (
	"time"
)

// Config holds configuration for one smoke run.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Log file for run output
	Verbose bool          // Enable verbose logging
}

// Stats holds smoke run statistics.
type Stats struct {
	ChecksRun    int
	ChecksPassed int
	ChecksFailed int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// summary mirrors the /api/data row.
type summary struct {
	TotalCustomers int64   `json:"totalCustomers"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
}

// monthRow mirrors one /api/monthly-revenue row.
type monthRow struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Orders    int64   `json:"orders"`
	Customers int64   `json:"customers"`
}

// categoryRow mirrors one /api/category-sales row.
type categoryRow struct {
	Category    string  `json:"category"`
	ProductName string  `json:"productName"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
}

// productRow mirrors one /api/top-products-by-category row.
type productRow struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	UnitsSold   int64   `json:"unitsSold"`
	Revenue     float64 `json:"revenue"`
}

// healthPayload mirrors /api/health.
type healthPayload struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Timestamp   string `json:"timestamp"`
}
