package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/ports"
)

type VitalRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewVitalRepository(db *gorm.DB, log *zap.Logger) ports.VitalRepository {
	return &VitalRepository{
		db:  db,
		log: log,
	}
}

func (r *VitalRepository) Save(ctx context.Context, vital *domain.VitalSign) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Create(vital).Error
}

func (r *VitalRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.VitalSign, error) {
	defer observe(time.Now())

	var vitals []domain.VitalSign
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&vitals).Error
	if err != nil {
		return nil, err
	}
	return vitals, nil
}
