package handlers

import (
	"net/http"
	"time"

	"github.com/MaxiAdad31/gastos/internal/reports"
)

// DashboardViewModel is the data passed to the dashboard view.
type DashboardViewModel struct {
	Flash   string
	Summary *reports.Summary
}

// Dashboard renders the summary of recent activity: daily expense and
// income totals over the last 30 days, all-time totals, and the latest
// records.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.DashboardSummary(time.Now())
	if err != nil {
		h.storageError(w, "dashboard summary", err)
		return
	}
	h.render(w, r, "index.html", DashboardViewModel{
		Flash:   h.popFlash(w, r),
		Summary: summary,
	})
}
