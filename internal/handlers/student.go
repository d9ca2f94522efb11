package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/models"
	"github.com/dmelo/academia-app/internal/services"
	"github.com/dmelo/academia-app/validation"
)

// StudentHandler covers the member lifecycle: enrollment, profile edits,
// status toggling, renewals and removal.
type StudentHandler struct {
	DB         *gorm.DB
	Enrollment *services.EnrollmentService
	Renewal    *services.RenewalService
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		DB:         db,
		Enrollment: services.NewEnrollmentService(db),
		Renewal:    services.NewRenewalService(db),
	}
}

func (h *StudentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/students", h.students)
	mux.HandleFunc("/students/update", h.update)
	mux.HandleFunc("/students/status", h.status)
	mux.HandleFunc("/students/renew", h.renew)
	mux.HandleFunc("/students/delete", h.delete)
}

func (h *StudentHandler) students(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.enroll(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *StudentHandler) list(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("name asc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if search := strings.TrimSpace(r.URL.Query().Get("q")); search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, students)
}

func (h *StudentHandler) enroll(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name          string `json:"name"`
		Whatsapp      string `json:"whatsapp"`
		PlanID        string `json:"planId"`
		TrainingTime  string `json:"trainingTime"`
		PaymentMethod string `json:"paymentMethod"`
		PaymentDate   string `json:"paymentDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", strings.TrimSpace(in.Name), v)
	validation.Digits("whatsapp", in.Whatsapp, v)
	validation.Required("planId", in.PlanID, v)
	validation.DateISO("paymentDate", in.PaymentDate, v)
	validation.OneOf("paymentMethod", in.PaymentMethod, models.PaymentMethods, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	paymentDate, err := models.ParseDate(in.PaymentDate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"paymentDate": "invalid date"})
		return
	}
	student, err := h.Enrollment.Enroll(services.EnrollmentInput{
		Name:          strings.TrimSpace(in.Name),
		Whatsapp:      in.Whatsapp,
		PlanID:        in.PlanID,
		TrainingTime:  in.TrainingTime,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   paymentDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPlan) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_plan", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "enrollment_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, student)
}

// update only touches the editable profile fields. Plan, status and due date
// move through their own endpoints.
func (h *StudentHandler) update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Whatsapp     string `json:"whatsapp"`
		TrainingTime string `json:"trainingTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.Required("name", strings.TrimSpace(in.Name), v)
	validation.Digits("whatsapp", in.Whatsapp, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var student models.Student
	if err := h.DB.First(&student, "id = ?", in.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "student_not_found", nil)
		return
	}
	updates := map[string]any{
		"name":          strings.TrimSpace(in.Name),
		"whatsapp":      in.Whatsapp,
		"training_time": in.TrainingTime,
	}
	if err := h.DB.Model(&student).Updates(updates).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *StudentHandler) status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.OneOf("status", in.Status, []string{
		string(models.StatusActive),
		string(models.StatusInactive),
		string(models.StatusPending),
	}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	res := h.DB.Model(&models.Student{}).Where("id = ?", in.ID).
		Update("status", models.StudentStatus(in.Status))
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "student_not_found", nil)
		return
	}
	var student models.Student
	if err := h.DB.First(&student, "id = ?", in.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, student)
}

func (h *StudentHandler) renew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var in struct {
		ID             string `json:"id"`
		PaymentDate    string `json:"paymentDate"`
		PaymentMethod  string `json:"paymentMethod"`
		NewPlanID      string `json:"newPlanId"`
		CompetenceDate string `json:"competenceDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("id", in.ID, v)
	validation.DateISO("paymentDate", in.PaymentDate, v)
	validation.OneOf("paymentMethod", in.PaymentMethod, models.PaymentMethods, v)
	if in.CompetenceDate != "" {
		validation.DateISO("competenceDate", in.CompetenceDate, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	paymentDate, _ := models.ParseDate(in.PaymentDate)
	input := services.RenewalInput{
		StudentID:     in.ID,
		PaymentDate:   paymentDate,
		PaymentMethod: in.PaymentMethod,
		NewPlanID:     in.NewPlanID,
	}
	if in.CompetenceDate != "" {
		input.CompetenceDate, _ = models.ParseDate(in.CompetenceDate)
	}
	result, err := h.Renewal.Renew(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			httpx.JSONError(w, http.StatusNotFound, "student_not_found", nil)
		case errors.Is(err, services.ErrInvalidPlan):
			httpx.JSONError(w, http.StatusBadRequest, "invalid_plan", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "renewal_failed", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *StudentHandler) delete(w http.ResponseWriter, r *http.Request) {
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
	res := h.DB.Delete(&models.Student{}, "id = ?", in.ID)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "student_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
