package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmelo/academia-app/internal/models"
)

// Models returns every persisted model, in dependency order, for AutoMigrate
// and for test databases.
func Models() []any {
	return []any{
		&models.Role{}, &models.User{},
		&models.Plan{}, &models.Student{}, &models.Transaction{},
	}
}

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty; check the environment configuration")
	}
	var conn *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Println("[DB] Using DSN:", MaskDSN(dsn))

	// MIGRATIONS=1 runs versioned SQL migrations; otherwise AutoMigrate keeps
	// dev setups going without a migrations directory.
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range Models() {
			if migErr := conn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}
	if err := seedRoles(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func runSQLMigrations(dsn string) error {
	src := os.Getenv("MIGRATIONS_PATH")
	if src == "" {
		src = "migrations"
	}
	m, err := migrate.New("file://"+src, dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// seedRoles guarantees the two fixed roles exist.
func seedRoles(conn *gorm.DB) error {
	for _, r := range []models.Role{
		{Name: "admin", Description: "Full access, including destructive operations"},
		{Name: "staff", Description: "Day-to-day operations"},
	} {
		var count int64
		if err := conn.Model(&models.Role{}).Where("name = ?", r.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := conn.Create(&r).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
