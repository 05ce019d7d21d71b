package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/ports"
)

type CareRecordRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCareRecordRepository(db *gorm.DB, log *zap.Logger) ports.CareRecordRepository {
	return &CareRecordRepository{
		db:  db,
		log: log,
	}
}

func (r *CareRecordRepository) Save(ctx context.Context, record *domain.CareRecord) error {
	defer observe(time.Now())
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *CareRecordRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.CareRecord, error) {
	defer observe(time.Now())

	var records []domain.CareRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
