// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/salesdash/pkg/logger"
)

// TopProductsHandler handles top products requests.
type TopProductsHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewTopProductsHandler creates a new top products handler.
func NewTopProductsHandler(deps Dependencies, log logger.Logger) *TopProductsHandler {
	return &TopProductsHandler{deps: deps, log: log}
}

// HandleTopProducts handles GET /api/top-products-by-category?period=&category=
// requests. At most five rows, revenue descending.
func (h *TopProductsHandler) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.TopProducts(r.Context(), filtersFrom(r))
	if err != nil {
		writeFailure(w, r, h.log, "top_products", err)
		return
	}
	writeData(w, rows)
}
