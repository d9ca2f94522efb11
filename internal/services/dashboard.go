package services

import (
	"sort"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/billing"
	"github.com/dmelo/academia-app/internal/models"
)

// RadarEntry is a student surfaced by the billing radar, enriched with the
// classification badge and a ready-to-send WhatsApp reminder link.
type RadarEntry struct {
	models.Student
	Label        string `json:"label"`
	Kind         string `json:"kind"`
	DaysDelta    int    `json:"daysDelta"`
	WhatsAppLink string `json:"whatsappLink"`
}

type DashboardData struct {
	KPI                models.KPI           `json:"kpi"`
	DueStudents        []RadarEntry         `json:"dueStudents"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
}

// DashboardService recomputes KPIs and the radar from scratch on every load.
// Fine for a single gym: the working set is a few hundred rows.
type DashboardService struct{ DB *gorm.DB }

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{DB: db} }

func (s *DashboardService) Load(today models.Date, lang string) (*DashboardData, error) {
	var students []models.Student
	if err := s.DB.Find(&students).Error; err != nil {
		return nil, err
	}
	var plans []models.Plan
	if err := s.DB.Order("value asc").Find(&plans).Error; err != nil {
		return nil, err
	}
	var transactions []models.Transaction
	if err := s.DB.Order("date desc, created_at desc").Find(&transactions).Error; err != nil {
		return nil, err
	}

	planValue := make(map[string]float64, len(plans))
	for _, p := range plans {
		planValue[p.ID] = p.Value
	}

	data := &DashboardData{}
	data.KPI = computeKPI(students, planValue, transactions, today)
	data.DueStudents = computeRadar(students, today, lang)
	if len(transactions) > 5 {
		transactions = transactions[:5]
	}
	data.RecentTransactions = transactions
	return data, nil
}

func computeKPI(students []models.Student, planValue map[string]float64, transactions []models.Transaction, today models.Date) models.KPI {
	var kpi models.KPI
	for _, st := range students {
		if st.Status != models.StatusActive {
			continue
		}
		kpi.ActiveStudents++
		if st.NextDueDate.Equal(today.Time) {
			kpi.ReceivableToday += planValue[st.PlanID]
		}
	}
	y, m, _ := today.Date()
	for _, tx := range transactions {
		ty, tm, _ := tx.Date.Date()
		if ty != y || tm != m {
			continue
		}
		switch tx.Type {
		case models.TypeReceita:
			kpi.MonthlyBalance += tx.Value
		case models.TypeDespesa:
			kpi.MonthlyBalance -= tx.Value
		}
	}
	return kpi
}

// computeRadar filters to active students due within the alert window
// (overdue included) and orders them earliest first. The sort is stable so
// same-day students keep their input order.
func computeRadar(students []models.Student, today models.Date, lang string) []RadarEntry {
	limit := today.AddDays(billing.DueSoonWindowDays)
	entries := make([]RadarEntry, 0)
	for _, st := range students {
		if st.Status != models.StatusActive {
			continue
		}
		if st.NextDueDate.After(limit.Time) {
			continue
		}
		c := billing.Classify(st.NextDueDate, today)
		entries = append(entries, RadarEntry{
			Student:      st,
			Label:        billing.Label(c, lang),
			Kind:         string(c.Kind),
			DaysDelta:    c.DaysDelta,
			WhatsAppLink: billing.WhatsAppLink(st.Whatsapp, billing.ReminderMessage(st.Name, st.NextDueDate, c, lang)),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].NextDueDate.Before(entries[j].NextDueDate.Time)
	})
	return entries
}
