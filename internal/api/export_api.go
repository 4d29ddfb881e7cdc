package api

import (
	"fmt"
	"net/http"
	"time"

	"hibachi/internal/export"
	"hibachi/internal/metrics"
)

// handleExport streams the reservation book as an .xlsx workbook.
// GET /api/export
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	filename := fmt.Sprintf("reservations_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := export.WriteBook(w, s.store.List()); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}
