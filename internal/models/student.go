package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StatusActive   StudentStatus = "Active"
	StatusInactive StudentStatus = "Inactive"
	StatusPending  StudentStatus = "Pending"
)

// Student is an enrolled gym member. NextDueDate is always derived from a
// payment/competence date plus the plan duration, never entered directly.
type Student struct {
	ID             string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name           string        `gorm:"column:name;not null;index" json:"name"`
	Whatsapp       string        `gorm:"column:whatsapp;not null" json:"whatsapp"`
	PlanID         string        `gorm:"column:plan_id;type:uuid;not null;index" json:"planId"`
	EnrollmentDate Date          `gorm:"column:enrollment_date" json:"enrollmentDate"`
	NextDueDate    Date          `gorm:"column:next_due_date;index" json:"nextDueDate"`
	Status         StudentStatus `gorm:"column:status;not null;default:'Pending'" json:"status"`
	TrainingTime   string        `gorm:"column:training_time" json:"trainingTime,omitempty"`
	CreatedAt      time.Time     `gorm:"column:created_at" json:"-"`
	UpdatedAt      time.Time     `gorm:"column:updated_at" json:"-"`
}

func (s *Student) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
