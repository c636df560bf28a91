package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
)

// avgTolerance bounds the acceptable drift between the reported average
// order value and revenue/orders, to absorb warehouse-side rounding.
const avgTolerance = 0.01

func filterQuery(period, category string) url.Values {
	q := url.Values{}
	q.Set("period", period)
	q.Set("category", category)
	return q
}

// checkHealth verifies the fixed health payload.
func checkHealth(ctx context.Context, c *client) error {
	body, status, err := c.get(ctx, "/api/health", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("/api/health: HTTP %d", status)
	}
	var h healthPayload
	if err := json.Unmarshal(body, &h); err != nil {
		return fmt.Errorf("/api/health: bad payload: %w", err)
	}
	if h.Status != "ok" {
		return fmt.Errorf("/api/health: status %q", h.Status)
	}
	if h.Timestamp == "" {
		return fmt.Errorf("/api/health: missing timestamp")
	}
	return nil
}

// checkSummary verifies the summary row is internally consistent.
func checkSummary(ctx context.Context, c *client, period, category string) error {
	var s summary
	if err := c.getData(ctx, "/api/data", filterQuery(period, category), &s); err != nil {
		return err
	}
	if s.TotalOrders < 0 || s.TotalCustomers < 0 {
		return fmt.Errorf("/api/data: negative counts: %+v", s)
	}
	if s.TotalOrders > 0 {
		want := s.TotalRevenue / float64(s.TotalOrders)
		if math.Abs(want-s.AvgOrderValue) > avgTolerance {
			return fmt.Errorf("/api/data: avgOrderValue %.4f inconsistent with revenue/orders %.4f", s.AvgOrderValue, want)
		}
	}
	return nil
}

// checkMonthlyRevenue verifies ascending order and unique month keys.
func checkMonthlyRevenue(ctx context.Context, c *client, period, category string) error {
	var rows []monthRow
	if err := c.getData(ctx, "/api/monthly-revenue", filterQuery(period, category), &rows); err != nil {
		return err
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Month <= rows[i-1].Month {
			return fmt.Errorf("/api/monthly-revenue: months not strictly ascending at %q", rows[i].Month)
		}
	}
	return nil
}

// checkCategorySales verifies the row shape follows the category sentinel.
func checkCategorySales(ctx context.Context, c *client, period, category string) error {
	var rows []categoryRow
	if err := c.getData(ctx, "/api/category-sales", filterQuery(period, category), &rows); err != nil {
		return err
	}
	byProduct := category != "all"
	for _, r := range rows {
		if byProduct && r.ProductName == "" {
			return fmt.Errorf("/api/category-sales: expected product rows for category %q, got %+v", category, r)
		}
		if !byProduct && r.Category == "" {
			return fmt.Errorf("/api/category-sales: expected category rows, got %+v", r)
		}
	}
	return nil
}

// checkCategories verifies ascending distinct category names and returns
// them for use by dependent checks.
func checkCategories(ctx context.Context, c *client) ([]string, error) {
	var names []string
	if err := c.getData(ctx, "/api/categories", nil, &names); err != nil {
		return nil, err
	}
	if !sort.StringsAreSorted(names) {
		return nil, fmt.Errorf("/api/categories: names not ascending: %v", names)
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return nil, fmt.Errorf("/api/categories: duplicate name %q", n)
		}
		seen[n] = struct{}{}
	}
	return names, nil
}

// checkTopProducts verifies the five-row cap and descending revenue order.
func checkTopProducts(ctx context.Context, c *client, period, category string) error {
	var rows []productRow
	if err := c.getData(ctx, "/api/top-products-by-category", filterQuery(period, category), &rows); err != nil {
		return err
	}
	if len(rows) > 5 {
		return fmt.Errorf("/api/top-products-by-category: %d rows, cap is 5", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Revenue > rows[i-1].Revenue {
			return fmt.Errorf("/api/top-products-by-category: revenue not descending at %q", rows[i].ProductName)
		}
	}
	return nil
}
