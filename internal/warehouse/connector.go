// Package warehouse opens request-scoped warehouse sessions and builds the
// parameterized aggregate statements executed over them.
//
// A session's lifetime is bounded by a single HTTP request: the service
// layer opens exactly one Handle per request and closes it on every exit
// path. There is deliberately no pooling here; the auth model assumes
// short-lived per-call sessions.
package warehouse

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"database/sql"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/snowflakedb/gosnowflake"

	"github.com/okian/salesdash/internal/provision"
)

// Driver names the SQL dialect and database/sql driver in use.
type Driver string

// Supported drivers. DriverMySQL exists only as an explicit local-development
// escape hatch; production deployments use DriverSnowflake.
const (
	DriverSnowflake Driver = "snowflake"
	DriverMySQL     Driver = "mysql"
)

// Handle is a single-request warehouse session. *sql.DB satisfies it.
type Handle interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Connector turns resolved connection parameters into a live Handle.
type Connector interface {
	Connect(ctx context.Context, p provision.Params) (Handle, error)
}

// SQLConnector opens database/sql handles for the configured driver.
type SQLConnector struct {
	driver Driver
}

// NewSQLConnector creates a connector for the given driver.
func NewSQLConnector(driver Driver) *SQLConnector {
	if driver == "" {
		driver = DriverSnowflake
	}
	return &SQLConnector{driver: driver}
}

// Connect opens a fresh handle for one request. The handle is capped at a
// single underlying connection; the caller owns closing it.
func (c *SQLConnector) Connect(_ context.Context, p provision.Params) (Handle, error) {
	dsn, err := c.dsn(p)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(string(c.driver), dsn)
	if err != nil {
		return nil, WrapQuery("open warehouse session", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func (c *SQLConnector) dsn(p provision.Params) (string, error) {
	if c.driver == DriverMySQL {
		return mysqlDSN(p), nil
	}
	return snowflakeDSN(p)
}

func snowflakeDSN(p provision.Params) (string, error) {
	cfg := &gosnowflake.Config{
		Account:   p.Account,
		User:      p.User,
		Host:      p.Host,
		Port:      p.Port,
		Database:  p.Database,
		Schema:    p.Schema,
		Warehouse: p.Warehouse,
		Role:      p.Role,
	}

	switch p.Mode {
	case provision.AuthToken:
		cfg.Authenticator = gosnowflake.AuthTypeOAuth
		cfg.Token = p.Token
	default:
		if p.PrivateKeyPath != "" {
			key, err := loadPrivateKey(p.PrivateKeyPath)
			if err != nil {
				return "", err
			}
			cfg.Authenticator = gosnowflake.AuthTypeJwt
			cfg.PrivateKey = key
		} else {
			cfg.Password = p.Password
		}
	}

	dsn, err := gosnowflake.DSN(cfg)
	if err != nil {
		return "", fmt.Errorf("%w: build dsn: %w", provision.ErrConfiguration, err)
	}
	return dsn, nil
}

func mysqlDSN(p provision.Params) string {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", p.Host, p.Port)
	cfg.DBName = p.Database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// loadPrivateKey reads and parses a PKCS#8 RSA key for key-pair auth.
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read private key %s: %w", provision.ErrCredential, path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: private key %s is not PEM encoded", provision.ErrCredential, path)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key %s: %w", provision.ErrCredential, path, err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key %s is not RSA", provision.ErrCredential, path)
	}
	return rsaKey, nil
}
