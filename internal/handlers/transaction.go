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

// TransactionHandler is the raw ledger surface. Enrollment and renewal write
// their own entries through the student endpoints; this one covers manual
// revenue/expense entries and the CSV report.
type TransactionHandler struct {
	DB     *gorm.DB
	Export *services.ExportService
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db, Export: services.NewExportService(db)}
}

func (h *TransactionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/transactions", h.transactions)
	mux.HandleFunc("/transactions/delete", h.delete)
	mux.HandleFunc("/transactions/export", h.export)
}

func (h *TransactionHandler) transactions(w http.ResponseWriter, r *http.Request) {
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

func (h *TransactionHandler) list(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("date desc, created_at desc")
	if month := r.URL.Query().Get("month"); month != "" {
		from, to, err := monthBounds(month)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_month", nil)
			return
		}
		q = q.Where("date >= ? AND date <= ?", from, to)
	}
	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date           string  `json:"date"`
		Type           string  `json:"type"`
		Category       string  `json:"category"`
		Value          float64 `json:"value"`
		Description    string  `json:"description"`
		PaymentMethod  string  `json:"paymentMethod"`
		CompetenceDate string  `json:"competenceDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.DateISO("date", in.Date, v)
	validation.OneOf("type", in.Type, []string{string(models.TypeReceita), string(models.TypeDespesa)}, v)
	validation.PositiveFloat("value", in.Value, v)
	switch models.TransactionType(in.Type) {
	case models.TypeReceita:
		validation.OneOf("category", in.Category, models.RevenueCategories, v)
	case models.TypeDespesa:
		validation.OneOf("category", in.Category, models.ExpenseCategories, v)
	}
	if in.PaymentMethod != "" {
		validation.OneOf("paymentMethod", in.PaymentMethod, models.PaymentMethods, v)
	}
	if in.CompetenceDate != "" {
		validation.DateISO("competenceDate", in.CompetenceDate, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	date, _ := models.ParseDate(in.Date)
	tx := models.Transaction{
		Date:          date,
		Type:          models.TransactionType(in.Type),
		Category:      in.Category,
		Value:         in.Value,
		Description:   strings.TrimSpace(in.Description),
		PaymentMethod: in.PaymentMethod,
	}
	if in.CompetenceDate != "" {
		tx.CompetenceDate, _ = models.ParseDate(in.CompetenceDate)
	}
	if err := h.DB.Create(&tx).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) delete(w http.ResponseWriter, r *http.Request) {
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
	res := h.DB.Delete(&models.Transaction{}, "id = ?", in.ID)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "transaction_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *TransactionHandler) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	query := r.URL.Query()
	var (
		content  []byte
		filename string
		err      error
	)
	switch {
	case query.Get("month") != "":
		content, filename, err = h.Export.Month(query.Get("month"))
	case query.Get("start") != "" && query.Get("end") != "":
		var start, end models.Date
		start, err = models.ParseDate(query.Get("start"))
		if err == nil {
			end, err = models.ParseDate(query.Get("end"))
		}
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
			return
		}
		content, filename, err = h.Export.Range(start, end)
	default:
		httpx.JSONError(w, http.StatusBadRequest, "missing_period", nil)
		return
	}
	if err != nil {
		if errors.Is(err, services.ErrNoTransactions) {
			httpx.JSONError(w, http.StatusNotFound, "no_transactions", nil)
			return
		}
		httpx.JSONError(w, http.StatusBadRequest, "invalid_period", nil)
		return
	}
	httpx.CSV(w, filename, content)
}

func monthBounds(month string) (models.Date, models.Date, error) {
	start, err := models.ParseDate(month + "-01")
	if err != nil {
		return models.Date{}, models.Date{}, err
	}
	return start, models.DateOf(start.AddDate(0, 1, -1)), nil
}
