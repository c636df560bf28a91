// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/salesdash/internal/domain/model"
	"github.com/okian/salesdash/internal/provision"
	"github.com/okian/salesdash/pkg/logger"
	"github.com/okian/salesdash/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the gateway implementation.
type Dependencies interface {
	Summary(ctx context.Context, f model.Filters) (model.Summary, error)
	MonthlyRevenue(ctx context.Context, f model.Filters) ([]model.MonthlyRevenue, error)
	CategorySales(ctx context.Context, f model.Filters) ([]model.CategorySale, error)
	Categories(ctx context.Context) ([]string, error)
	TopProducts(ctx context.Context, f model.Filters) ([]model.TopProduct, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler        *HealthHandler
	dataHandler          *DataHandler
	revenueHandler       *RevenueHandler
	categoriesHandler    *CategoriesHandler
	categorySalesHandler *CategorySalesHandler
	topProductsHandler   *TopProductsHandler
}

// NewServer creates a new API server with all handlers. environment and
// port are reported by the health endpoint.
func NewServer(deps Dependencies, environment string, port int, log logger.Logger) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(environment, port),
		dataHandler:          NewDataHandler(deps, log),
		revenueHandler:       NewRevenueHandler(deps, log),
		categoriesHandler:    NewCategoriesHandler(deps, log),
		categorySalesHandler: NewCategorySalesHandler(deps, log),
		topProductsHandler:   NewTopProductsHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/health", wrap(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/data", wrap(s.dataHandler.HandleData, "data"))
	mux.HandleFunc("/api/monthly-revenue", wrap(s.revenueHandler.HandleMonthlyRevenue, "monthly_revenue"))
	mux.HandleFunc("/api/category-sales", wrap(s.categorySalesHandler.HandleCategorySales, "category_sales"))
	mux.HandleFunc("/api/categories", wrap(s.categoriesHandler.HandleCategories, "categories"))
	mux.HandleFunc("/api/top-products-by-category", wrap(s.topProductsHandler.HandleTopProducts, "top_products"))

	// Serve the custom Prometheus registry for scraping.
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// wrap applies the standard middleware chain to an API handler.
func wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(RequestIDMiddleware(next), endpoint)
}

// filtersFrom normalizes the recognized query-string filters.
func filtersFrom(r *http.Request) model.Filters {
	q := r.URL.Query()
	return model.ParseFilters(q.Get("period"), q.Get("category"))
}

// envelope is the uniform response wrapper shared by every read endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData writes the success envelope.
func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// writeFailure logs err and writes the error envelope. The body carries the
// taxonomy category only; raw driver errors stay in the logs.
func writeFailure(w http.ResponseWriter, r *http.Request, log logger.Logger, endpoint string, err error) {
	category := errorCategory(err)
	if log != nil {
		log.Error(r.Context(), "request failed",
			logger.String("endpoint", endpoint),
			logger.String("category", category),
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err))
	}
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: category})
}

// errorCategory maps an error chain to its human-readable taxonomy bucket.
func errorCategory(err error) string {
	switch {
	case errors.Is(err, provision.ErrConfiguration):
		return "configuration error"
	case errors.Is(err, provision.ErrCredential):
		return "credential error"
	default:
		return "query error"
	}
}
