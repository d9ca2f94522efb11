package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TypeReceita TransactionType = "Receita"
	TypeDespesa TransactionType = "Despesa"
)

// Transaction is a ledger entry. StudentID is a non-owning back-reference
// for display only: deleting a student never cascades here, and deleting a
// transaction never touches the student.
type Transaction struct {
	ID             string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Date           Date            `gorm:"column:date;not null;index" json:"date"`
	Type           TransactionType `gorm:"column:type;not null" json:"type"`
	Category       string          `gorm:"column:category;not null" json:"category"`
	Value          float64         `gorm:"column:value;not null" json:"value"`
	Description    string          `gorm:"column:description" json:"description"`
	StudentID      *string         `gorm:"column:student_id;type:uuid;index" json:"studentId,omitempty"`
	PaymentMethod  string          `gorm:"column:payment_method" json:"paymentMethod,omitempty"`
	CompetenceDate Date            `gorm:"column:competence_date" json:"competenceDate"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"-"`
}

func (t *Transaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	// Competence defaults to the payment date.
	if t.CompetenceDate.IsZero() {
		t.CompetenceDate = t.Date
	}
	return nil
}
