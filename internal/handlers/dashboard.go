package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/middleware"
	"github.com/dmelo/academia-app/internal/models"
	"github.com/dmelo/academia-app/internal/services"
)

type DashboardHandler struct {
	Service *services.DashboardService
	// Now is swappable for tests.
	Now func() time.Time
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{Service: services.NewDashboardService(db), Now: time.Now}
}

func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/dashboard", h.dashboard)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	data, err := h.Service.Load(models.DateOf(h.Now()), middleware.LangFrom(r))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "dashboard_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}
