package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/ports"
)

type PatientRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPatientRepository(db *gorm.DB, log *zap.Logger) ports.PatientRepository {
	return &PatientRepository{
		db:  db,
		log: log,
	}
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	defer observe(time.Now())

	var patient domain.Patient
	err := r.db.WithContext(ctx).First(&patient, "patient_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) FindByName(ctx context.Context, name string) (*domain.Patient, error) {
	defer observe(time.Now())

	var patient domain.Patient
	err := r.db.WithContext(ctx).First(&patient, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}
