package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Role{}, &models.User{}, &models.Plan{}, &models.Student{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedPlan(t *testing.T, conn *gorm.DB, name string, value float64, days int) models.Plan {
	t.Helper()
	p := models.Plan{Name: name, Value: value, DurationDays: days}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return p
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func countTransactions(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(&models.Transaction{}).Count(&n).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}
