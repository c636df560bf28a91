// Package service provides the query gateway that implements the
// dependencies required by the HTTP API.
//
// Every exported method performs exactly one warehouse round trip: resolve
// connection parameters, open one session, execute one statement, and close
// the session on every exit path. That open/close pairing is the central
// invariant of the whole system and lives in withSession below.
package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/okian/salesdash/internal/domain/model"
	"github.com/okian/salesdash/internal/provision"
	"github.com/okian/salesdash/internal/warehouse"
	"github.com/okian/salesdash/pkg/logger"
	"github.com/okian/salesdash/pkg/metrics"
)

// Service is the query gateway between the HTTP API and the warehouse.
type Service struct {
	resolver  provision.Resolver
	connector warehouse.Connector
	builder   *warehouse.Builder

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithResolver sets the connection parameter resolver.
func WithResolver(r provision.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithConnector sets the warehouse connector.
func WithConnector(c warehouse.Connector) Option {
	return func(s *Service) {
		if c != nil {
			s.connector = c
		}
	}
}

// WithDriver selects the SQL dialect used for statement building.
func WithDriver(d warehouse.Driver) Option {
	return func(s *Service) {
		s.builder = warehouse.NewBuilder(d)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service using the provided options.
func New(opts ...Option) *Service {
	s := &Service{
		builder: warehouse.NewBuilder(warehouse.DriverSnowflake),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Summary returns the aggregate totals for GET /api/data.
func (s *Service) Summary(ctx context.Context, f model.Filters) (model.Summary, error) {
	var out model.Summary
	err := s.withSession(ctx, func(ctx context.Context, h warehouse.Handle) error {
		return s.queryRow(ctx, h, "summary", s.builder.Summary(f),
			&out.TotalCustomers, &out.TotalOrders, &out.TotalRevenue, &out.AvgOrderValue)
	})
	return out, err
}

// MonthlyRevenue returns one row per calendar month in range, ascending.
func (s *Service) MonthlyRevenue(ctx context.Context, f model.Filters) ([]model.MonthlyRevenue, error) {
	out := make([]model.MonthlyRevenue, 0)
	err := s.withSession(ctx, func(ctx context.Context, h warehouse.Handle) error {
		return s.queryRows(ctx, h, "monthly_revenue", s.builder.MonthlyRevenue(f), func(rows *sql.Rows) error {
			var m model.MonthlyRevenue
			if err := rows.Scan(&m.Month, &m.Revenue, &m.Orders, &m.Customers); err != nil {
				return err
			}
			out = append(out, m)
			return nil
		})
	})
	return out, err
}

// CategorySales returns a category breakdown, or a product breakdown within
// the filtered category.
func (s *Service) CategorySales(ctx context.Context, f model.Filters) ([]model.CategorySale, error) {
	_, byProduct := f.CategoryValue()
	out := make([]model.CategorySale, 0)
	err := s.withSession(ctx, func(ctx context.Context, h warehouse.Handle) error {
		return s.queryRows(ctx, h, "category_sales", s.builder.CategorySales(f), func(rows *sql.Rows) error {
			var name string
			var c model.CategorySale
			if err := rows.Scan(&name, &c.Revenue, &c.Orders); err != nil {
				return err
			}
			if byProduct {
				c.ProductName = name
			} else {
				c.Category = name
			}
			out = append(out, c)
			return nil
		})
	})
	return out, err
}

// Categories returns the distinct category names, ascending.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	err := s.withSession(ctx, func(ctx context.Context, h warehouse.Handle) error {
		return s.queryRows(ctx, h, "categories", s.builder.Categories(), func(rows *sql.Rows) error {
			var c string
			if err := rows.Scan(&c); err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	})
	return out, err
}

// TopProducts returns up to five products ordered by revenue descending.
func (s *Service) TopProducts(ctx context.Context, f model.Filters) ([]model.TopProduct, error) {
	out := make([]model.TopProduct, 0)
	err := s.withSession(ctx, func(ctx context.Context, h warehouse.Handle) error {
		return s.queryRows(ctx, h, "top_products", s.builder.TopProducts(f), func(rows *sql.Rows) error {
			var p model.TopProduct
			if err := rows.Scan(&p.ProductName, &p.Category, &p.UnitsSold, &p.Revenue); err != nil {
				return err
			}
			out = append(out, p)
			return nil
		})
	})
	return out, err
}

// withSession runs fn over a fresh warehouse session and closes it
// unconditionally. A disconnected client must not abandon the session
// mid-flight, so the warehouse call runs detached from the request's
// cancellation; the in-flight statement completes and the session is still
// released.
func (s *Service) withSession(ctx context.Context, fn func(ctx context.Context, h warehouse.Handle) error) error {
	ctx = context.WithoutCancel(ctx)

	params, err := s.resolver.Resolve(ctx)
	if err != nil {
		kind := "configuration"
		if errors.Is(err, provision.ErrCredential) {
			kind = "credential"
		}
		metrics.RecordProvisionError(kind)
		return err
	}

	h, err := s.connector.Connect(ctx, params)
	if err != nil {
		return err
	}
	metrics.RecordConnectionOpened()
	defer func() {
		if cerr := h.Close(); cerr != nil {
			s.logger.Warn(ctx, "closing warehouse session", logger.Error(cerr))
		}
		metrics.RecordConnectionClosed()
	}()

	return fn(ctx, h)
}

// queryRow executes st and scans its single result row into dest.
func (s *Service) queryRow(ctx context.Context, h warehouse.Handle, name string, st warehouse.Statement, dest ...any) error {
	return s.queryRows(ctx, h, name, st, func(rows *sql.Rows) error {
		return rows.Scan(dest...)
	})
}

// queryRows executes st and feeds each result row to scan.
func (s *Service) queryRows(ctx context.Context, h warehouse.Handle, name string, st warehouse.Statement, scan func(rows *sql.Rows) error) error {
	start := time.Now()
	rows, err := h.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		metrics.RecordQueryError(name)
		return warehouse.WrapQuery(name, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			metrics.RecordQueryError(name)
			return warehouse.WrapQuery(name, err)
		}
	}
	if err := rows.Err(); err != nil {
		metrics.RecordQueryError(name)
		return warehouse.WrapQuery(name, err)
	}

	metrics.RecordQueryLatency(name, float64(time.Since(start).Milliseconds()))
	return nil
}
