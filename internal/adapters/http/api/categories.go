// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/salesdash/pkg/logger"
)

// CategoriesHandler handles category list requests.
type CategoriesHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(deps Dependencies, log logger.Logger) *CategoriesHandler {
	return &CategoriesHandler{deps: deps, log: log}
}

// HandleCategories handles GET /api/categories requests.
func (h *CategoriesHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	names, err := h.deps.Categories(r.Context())
	if err != nil {
		writeFailure(w, r, h.log, "categories", err)
		return
	}
	writeData(w, names)
}

// CategorySalesHandler handles category sales breakdown requests.
type CategorySalesHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewCategorySalesHandler creates a new category sales handler.
func NewCategorySalesHandler(deps Dependencies, log logger.Logger) *CategorySalesHandler {
	return &CategorySalesHandler{deps: deps, log: log}
}

// HandleCategorySales handles GET /api/category-sales?period=&category=
// requests. The row shape follows the category filter: per-category rows
// for the "all" sentinel, per-product rows within a specific category.
func (h *CategorySalesHandler) HandleCategorySales(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows, err := h.deps.CategorySales(r.Context(), filtersFrom(r))
	if err != nil {
		writeFailure(w, r, h.log, "category_sales", err)
		return
	}
	writeData(w, rows)
}
