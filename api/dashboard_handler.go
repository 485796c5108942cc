package api

import (
	"net/http"

	"github.com/aggroplatform/aggro-admin/views"
)

type DashboardHandler struct {
	dashboard *views.Dashboard
}

func NewDashboardHandler(dashboard *views.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary serves the landing page counters. Each request reads the
// collections fresh rather than serving a cached mirror.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		RespondError(w, "Error building summary", http.StatusInternalServerError)
		return
	}
	RespondJSON(w, http.StatusOK, summary)
}
