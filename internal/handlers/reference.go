package handlers

import (
	"net/http"

	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/models"
)

// ReferenceHandler serves the fixed finance vocabularies.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler { return &ReferenceHandler{} }

func (h *ReferenceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.categories)
}

func (h *ReferenceHandler) categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"revenueCategories": models.RevenueCategories,
		"expenseCategories": models.ExpenseCategories,
		"paymentMethods":    models.PaymentMethods,
	})
}
