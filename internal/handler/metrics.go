package handler

import (
	"net/http"
	"time"

	"github.com/ucin-dev/workload-tracker/backend/internal/report"
)

const trendDays = 7

// GetMetricsOverview computes the KPI dashboard for a window selected by the
// "window" query parameter: the current calendar month (default), the
// trailing 7 days or the trailing 30 days.
func (h *Handler) GetMetricsOverview(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	var window report.Window
	switch r.URL.Query().Get("window") {
	case "", "month":
		window = report.MonthWindow(now)
	case "7d":
		window = report.TrailingWindow(now, 7)
	case "30d":
		window = report.TrailingWindow(now, 30)
	default:
		h.errorResponse(w, r, "invalid window, expected month, 7d or 30d")
		return
	}

	sessions, err := h.repository.GetSessionStats(window.From, window.To)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	categories, err := h.repository.GetCategoryBands(window.From, window.To)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	activePatients, err := h.repository.CountActivePatients()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	activeStaff, err := h.repository.CountActiveStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	overview := report.BuildOverview(report.Input{
		Sessions:       sessions,
		Categories:     categories,
		ActivePatients: activePatients,
		ActiveStaff:    activeStaff,
	}, window, now, trendDays)

	h.successResponse(w, r, "metrics overview computed", overview)
}
