package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/billing"
	"github.com/dmelo/academia-app/internal/models"
)

type EnrollmentInput struct {
	Name          string
	Whatsapp      string
	PlanID        string
	TrainingTime  string
	PaymentMethod string
	PaymentDate   models.Date
}

// EnrollmentService creates a student together with the first ledger entry.
type EnrollmentService struct{ DB *gorm.DB }

func NewEnrollmentService(db *gorm.DB) *EnrollmentService { return &EnrollmentService{DB: db} }

// Enroll creates an Active student with a derived due date and the matching
// "Mensalidade" revenue entry. Both writes share one transaction so a failed
// ledger insert can never leave a student without its enrollment revenue.
func (s *EnrollmentService) Enroll(in EnrollmentInput) (*models.Student, error) {
	var plan models.Plan
	if err := s.DB.First(&plan, "id = ?", in.PlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPlan
		}
		return nil, err
	}

	student := models.Student{
		Name:           in.Name,
		Whatsapp:       in.Whatsapp,
		PlanID:         plan.ID,
		EnrollmentDate: in.PaymentDate,
		NextDueDate:    billing.NextDueDate(in.PaymentDate, plan.DurationDays),
		Status:         models.StatusActive,
		TrainingTime:   in.TrainingTime,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		entry := models.Transaction{
			Date:           in.PaymentDate,
			Type:           models.TypeReceita,
			Category:       models.CategoryEnrollment,
			Value:          plan.Value,
			Description:    fmt.Sprintf("Matrícula: %s (%s)", in.Name, plan.Name),
			StudentID:      &student.ID,
			PaymentMethod:  in.PaymentMethod,
			CompetenceDate: in.PaymentDate,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &student, nil
}
