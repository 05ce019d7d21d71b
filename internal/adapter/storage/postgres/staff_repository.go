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

type StaffRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStaffRepository(db *gorm.DB, log *zap.Logger) ports.StaffRepository {
	return &StaffRepository{
		db:  db,
		log: log,
	}
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	defer observe(time.Now())

	var staff domain.Staff
	err := r.db.WithContext(ctx).First(&staff, "staff_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *StaffRepository) FindByName(ctx context.Context, name string) (*domain.Staff, error) {
	defer observe(time.Now())

	var staff domain.Staff
	err := r.db.WithContext(ctx).First(&staff, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}
