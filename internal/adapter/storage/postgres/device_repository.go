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

type DeviceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDeviceRepository(db *gorm.DB, log *zap.Logger) ports.DeviceRepository {
	return &DeviceRepository{
		db:  db,
		log: log,
	}
}

func (r *DeviceRepository) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	defer observe(time.Now())

	var device domain.Device
	err := r.db.WithContext(ctx).First(&device, "device_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}
