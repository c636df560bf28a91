// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/salesdash/pkg/logger"
)

// DataHandler handles aggregate summary requests.
type DataHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps Dependencies, log logger.Logger) *DataHandler {
	return &DataHandler{deps: deps, log: log}
}

// HandleData handles GET /api/data?period=&category= requests.
func (h *DataHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	row, err := h.deps.Summary(r.Context(), filtersFrom(r))
	if err != nil {
		writeFailure(w, r, h.log, "data", err)
		return
	}
	writeData(w, row)
}
