package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Digits requires a non-empty string of decimal digits only (phone numbers).
func Digits(field, value string, v Violations) {
	if value == "" {
		v[field] = "required"
		return
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			v[field] = "digits_only"
			return
		}
	}
}

// DateISO requires a YYYY-MM-DD calendar date.
func DateISO(field, value string, v Violations) {
	if value == "" {
		v[field] = "required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v[field] = "invalid_date"
	}
}

// OneOf requires value to match one of the allowed options exactly.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_option"
}
