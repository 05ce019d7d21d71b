package ports

import (
	"context"

	"github.com/carewear/carevoice/internal/domain"
)

// Name lookups return (nil, nil) when nothing matches: absence is a
// first-class outcome, never an error. When more than one row shares a
// name the storage layer's first match wins; uniqueness is not enforced.

type PatientRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	FindByName(ctx context.Context, name string) (*domain.Patient, error)
}

type StaffRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Staff, error)
	FindByName(ctx context.Context, name string) (*domain.Staff, error)
}

type DeviceRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Device, error)
}

type VitalRepository interface {
	Save(ctx context.Context, vital *domain.VitalSign) error
	// FindRecentByPatient returns vitals newest first, at most limit rows.
	FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.VitalSign, error)
}

type CareRecordRepository interface {
	Save(ctx context.Context, record *domain.CareRecord) error
	FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.CareRecord, error)
}
