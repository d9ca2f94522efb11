package models

// KPI aggregates shown on the dashboard. Derived, never persisted.
type KPI struct {
	ActiveStudents  int     `json:"activeStudents"`
	ReceivableToday float64 `json:"receivableToday"`
	MonthlyBalance  float64 `json:"monthlyBalance"`
}
