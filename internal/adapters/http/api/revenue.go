// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/salesdash/pkg/logger"
)

// RevenueHandler handles monthly revenue requests.
type RevenueHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewRevenueHandler creates a new revenue handler.
func NewRevenueHandler(deps Dependencies, log logger.Logger) *RevenueHandler {
	return &RevenueHandler{deps: deps, log: log}
}

// HandleMonthlyRevenue handles GET /api/monthly-revenue?period=&category=
// requests. Rows arrive ordered ascending by month.
func (h *RevenueHandler) HandleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.MonthlyRevenue(r.Context(), filtersFrom(r))
	if err != nil {
		writeFailure(w, r, h.log, "monthly_revenue", err)
		return
	}
	writeData(w, rows)
}
