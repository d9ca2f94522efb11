package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/models"
)

// ExportService renders the transaction report the accountant imports into a
// spreadsheet: semicolon-delimited, DD/MM/YYYY dates, comma decimals. Rows
// come out ascending by date regardless of the on-screen order.
type ExportService struct{ DB *gorm.DB }

func NewExportService(db *gorm.DB) *ExportService { return &ExportService{DB: db} }

var csvHeader = []string{"Data", "Tipo", "Categoria", "Descrição", "Valor", "Forma Pagamento"}

// Month exports all transactions of a YYYY-MM month.
func (s *ExportService) Month(month string) ([]byte, string, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	from := models.DateOf(start)
	to := models.DateOf(start.AddDate(0, 1, 0)).AddDays(-1)
	content, err := s.export(from, to)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("relatorio_%s.csv", month), nil
}

// Range exports all transactions between start and end, inclusive.
func (s *ExportService) Range(start, end models.Date) ([]byte, string, error) {
	content, err := s.export(start, end)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("relatorio_%s_ate_%s.csv", start, end), nil
}

func (s *ExportService) export(from, to models.Date) ([]byte, error) {
	var transactions []models.Transaction
	if err := s.DB.Where("date >= ? AND date <= ?", from, to).Order("date asc, created_at asc").Find(&transactions).Error; err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		record := []string{
			tx.Date.BR(),
			string(tx.Type),
			tx.Category,
			// internal delimiters would break the columns
			strings.ReplaceAll(tx.Description, ";", " "),
			formatValueBR(tx.Value),
			tx.PaymentMethod,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatValueBR renders 1234.5 as "1234,50".
func formatValueBR(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}
