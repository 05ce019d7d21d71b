package postgres

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/observability/telemetry"
)

// NewConnection initializes a PostgreSQL connection using GORM.
// Non-positive pool sizes fall back to 100 open / 10 idle.
func NewConnection(url string, maxOpen, maxIdle int, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if maxOpen <= 0 {
		maxOpen = 100
	}
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)

	log.Info("connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Patient{},
		&domain.Staff{},
		&domain.Device{},
		&domain.CareRecord{},
		&domain.VitalSign{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func observe(start time.Time) {
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
}
