package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/models"
	"github.com/dmelo/academia-app/validation"
)

// PlanHandler manages the pricing tiers students subscribe to.
type PlanHandler struct{ DB *gorm.DB }

func NewPlanHandler(db *gorm.DB) *PlanHandler { return &PlanHandler{DB: db} }

func (h *PlanHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/plans", h.plans)
	mux.HandleFunc("/plans/update", h.update)
	mux.HandleFunc("/plans/delete", h.delete)
}

func (h *PlanHandler) plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *PlanHandler) list(w http.ResponseWriter, r *http.Request) {
	var plans []models.Plan
	if err := h.DB.Order("value asc").Find(&plans).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, plans)
}

type planInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	DurationDays int     `json:"durationDays"`
}

func (in *planInput) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", strings.TrimSpace(in.Name), v)
	validation.NonNegativeFloat("value", in.Value, v)
	validation.PositiveInt("durationDays", in.DurationDays, v)
	return v
}

func (h *PlanHandler) create(w http.ResponseWriter, r *http.Request) {
	var in planInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	plan := models.Plan{Name: strings.TrimSpace(in.Name), Value: in.Value, DurationDays: in.DurationDays}
	if err := h.DB.Create(&plan).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in planInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := in.validate()
	validation.Required("id", in.ID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var plan models.Plan
	if err := h.DB.First(&plan, "id = ?", in.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "plan_not_found", nil)
		return
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.Value = in.Value
	plan.DurationDays = in.DurationDays
	if err := h.DB.Save(&plan).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	res := h.DB.Delete(&models.Plan{}, "id = ?", in.ID)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "plan_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
