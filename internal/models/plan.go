package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a pricing/duration tier a student subscribes to.
// Column names (snake_case) and JSON names (camelCase) are both declared
// here; this file is the single mapping boundary between the store and the
// API. See models_test.go for the exhaustive field table.
type Plan struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Value        float64   `gorm:"column:value;not null" json:"value"`
	DurationDays int       `gorm:"column:duration_days;not null" json:"durationDays"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"-"`
}

func (p *Plan) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
