package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/billing"
	"github.com/dmelo/academia-app/internal/models"
)

type RenewalInput struct {
	StudentID     string
	PaymentDate   models.Date
	PaymentMethod string
	// NewPlanID switches the student to another plan; empty keeps the current one.
	NewPlanID string
	// CompetenceDate is the period the payment is attributed to; zero means
	// the payment date itself.
	CompetenceDate models.Date
}

// RenewalResult feeds the confirmation summary shown after a renewal.
type RenewalResult struct {
	NextDueDate models.Date `json:"nextDueDate"`
	PlanName    string      `json:"planName"`
	PlanValue   float64     `json:"planValue"`
}

// RenewalService records a payment against an existing student: advances the
// due date, reactivates the student and appends the revenue entry.
type RenewalService struct{ DB *gorm.DB }

func NewRenewalService(db *gorm.DB) *RenewalService { return &RenewalService{DB: db} }

func (s *RenewalService) Renew(in RenewalInput) (*RenewalResult, error) {
	var student models.Student
	if err := s.DB.First(&student, "id = ?", in.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	planID := student.PlanID
	if in.NewPlanID != "" {
		planID = in.NewPlanID
	}
	var plan models.Plan
	if err := s.DB.First(&plan, "id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPlan
		}
		return nil, err
	}

	base := in.CompetenceDate
	if base.IsZero() {
		base = in.PaymentDate
	}
	newDue := billing.NextDueDate(base, plan.DurationDays)

	// Status and due date always move; the plan reference only when it
	// actually changed (avoids a no-op write).
	updates := map[string]any{
		"status":        models.StatusActive,
		"next_due_date": newDue,
	}
	if in.NewPlanID != "" && in.NewPlanID != student.PlanID {
		updates["plan_id"] = in.NewPlanID
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).Where("id = ?", student.ID).Updates(updates).Error; err != nil {
			return err
		}
		entry := models.Transaction{
			Date:           in.PaymentDate,
			Type:           models.TypeReceita,
			Category:       models.CategoryRenewal,
			Value:          plan.Value,
			Description:    fmt.Sprintf("Renovação: %s (%s)", student.Name, plan.Name),
			StudentID:      &student.ID,
			PaymentMethod:  in.PaymentMethod,
			CompetenceDate: base,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &RenewalResult{NextDueDate: newDue, PlanName: plan.Name, PlanValue: plan.Value}, nil
}
