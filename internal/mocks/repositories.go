package mocks

import (
	"context"

	"github.com/carewear/carevoice/internal/domain"
)

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Patient, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Patient, error)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPatientRepository) FindByName(ctx context.Context, name string) (*domain.Patient, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

// MockStaffRepository is a mock implementation of StaffRepository
type MockStaffRepository struct {
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Staff, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Staff, error)
}

func (m *MockStaffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockStaffRepository) FindByName(ctx context.Context, name string) (*domain.Staff, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

// MockDeviceRepository is a mock implementation of DeviceRepository
type MockDeviceRepository struct {
	FindByIDFunc func(ctx context.Context, id string) (*domain.Device, error)
}

func (m *MockDeviceRepository) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockVitalRepository is a mock implementation of VitalRepository
type MockVitalRepository struct {
	SavedVitals             []*domain.VitalSign
	SaveFunc                func(ctx context.Context, vital *domain.VitalSign) error
	FindRecentByPatientFunc func(ctx context.Context, patientID string, limit int) ([]domain.VitalSign, error)
}

func (m *MockVitalRepository) Save(ctx context.Context, vital *domain.VitalSign) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, vital)
	}
	m.SavedVitals = append(m.SavedVitals, vital)
	return nil
}

func (m *MockVitalRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.VitalSign, error) {
	if m.FindRecentByPatientFunc != nil {
		return m.FindRecentByPatientFunc(ctx, patientID, limit)
	}
	return []domain.VitalSign{}, nil
}

// MockCareRecordRepository is a mock implementation of CareRecordRepository
type MockCareRecordRepository struct {
	SavedRecords            []*domain.CareRecord
	SaveFunc                func(ctx context.Context, record *domain.CareRecord) error
	FindRecentByPatientFunc func(ctx context.Context, patientID string, limit int) ([]domain.CareRecord, error)
}

func (m *MockCareRecordRepository) Save(ctx context.Context, record *domain.CareRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, record)
	}
	m.SavedRecords = append(m.SavedRecords, record)
	return nil
}

func (m *MockCareRecordRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.CareRecord, error) {
	if m.FindRecentByPatientFunc != nil {
		return m.FindRecentByPatientFunc(ctx, patientID, limit)
	}
	return []domain.CareRecord{}, nil
}
