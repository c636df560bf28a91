// Package model defines the read shapes returned by the aggregate queries
// and the request filters that scope them.
//
// Conventions:
// - Types here are plain data carriers; no I/O, no business logic.
// - JSON field names are part of the HTTP contract and must not change.
package model

import (
	"strings"
	"time"
)

// Period is a symbolic time-range selector. Each recognized value maps to a
// fixed calendar range inside the 2024 reporting year. The mapping is owned
// by this package; callers never supply raw dates.
type Period string

// Recognized period buckets.
const (
	PeriodAll          Period = "all"
	PeriodFirstHalf    Period = "first-half"
	PeriodSecondHalf   Period = "second-half"
	PeriodFirstQuarter Period = "first-quarter"
	PeriodLastQuarter  Period = "last-quarter"
)

// CategoryAll is the sentinel meaning "no category filtering".
const CategoryAll = "all"

// periodRange is a closed-open calendar interval.
type periodRange struct {
	start time.Time
	end   time.Time
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// periodRanges maps each bucket to its fixed bounds. PeriodAll is absent on
// purpose: it applies no date predicate at all.
var periodRanges = map[Period]periodRange{
	PeriodFirstHalf:    {day(2024, time.January, 1), day(2024, time.July, 1)},
	PeriodSecondHalf:   {day(2024, time.July, 1), day(2025, time.January, 1)},
	PeriodFirstQuarter: {day(2024, time.January, 1), day(2024, time.April, 1)},
	PeriodLastQuarter:  {day(2024, time.October, 1), day(2025, time.January, 1)},
}

// Filters carries the normalized query-string filters shared by the
// aggregate endpoints.
type Filters struct {
	Period   Period
	Category string
}

// ParseFilters normalizes raw query-string values. Empty values collapse to
// the "all" sentinels. An unrecognized period also collapses to "all":
// permissive fallback is the contract here, not rejection.
func ParseFilters(period, category string) Filters {
	p := Period(strings.ToLower(strings.TrimSpace(period)))
	if _, ok := periodRanges[p]; !ok {
		p = PeriodAll
	}
	c := strings.TrimSpace(category)
	if c == "" {
		c = CategoryAll
	}
	return Filters{Period: p, Category: c}
}

// Range returns the calendar bounds for the period as a closed-open
// interval. ok is false when no date predicate applies.
func (f Filters) Range() (start, end time.Time, ok bool) {
	r, ok := periodRanges[f.Period]
	return r.start, r.end, ok
}

// CategoryValue returns the category to bind and whether category filtering
// applies at all.
func (f Filters) CategoryValue() (string, bool) {
	if f.Category == "" || strings.EqualFold(f.Category, CategoryAll) {
		return "", false
	}
	return f.Category, true
}

// Summary is the single aggregate row behind GET /api/data.
type Summary struct {
	TotalCustomers int64   `json:"totalCustomers"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
}

// MonthlyRevenue is one calendar-month row, ascending by Month.
type MonthlyRevenue struct {
	Month     string  `json:"month"`
	Revenue   float64 `json:"revenue"`
	Orders    int64   `json:"orders"`
	Customers int64   `json:"customers"`
}

// CategorySale is one row of GET /api/category-sales. Exactly one of
// Category or ProductName is populated: a category breakdown when the
// category filter is the "all" sentinel, a product breakdown otherwise.
type CategorySale struct {
	Category    string  `json:"category,omitempty"`
	ProductName string  `json:"productName,omitempty"`
	Revenue     float64 `json:"revenue"`
	Orders      int64   `json:"orders"`
}

// TopProduct is one row of GET /api/top-products-by-category, descending by
// Revenue.
type TopProduct struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	UnitsSold   int64   `json:"unitsSold"`
	Revenue     float64 `json:"revenue"`
}
