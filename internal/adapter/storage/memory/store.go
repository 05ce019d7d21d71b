package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/ports"
)

// Store is the in-memory substitute for the Postgres repositories, used
// in development and test mode. All repositories share one store so a
// record saved by one handler is visible to the next lookup.
type Store struct {
	mu       sync.RWMutex
	patients map[string]*domain.Patient
	staff    map[string]*domain.Staff
	devices  map[string]*domain.Device
	vitals   []domain.VitalSign
	records  []domain.CareRecord
}

func NewStore() *Store {
	return &Store{
		patients: make(map[string]*domain.Patient),
		staff:    make(map[string]*domain.Staff),
		devices:  make(map[string]*domain.Device),
	}
}

func (s *Store) AddPatient(p *domain.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients[p.ID] = p
}

func (s *Store) AddStaff(st *domain.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[st.ID] = st
}

func (s *Store) AddDevice(d *domain.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[d.ID] = d
}

func (s *Store) Patients() ports.PatientRepository { return &patientRepository{store: s} }

func (s *Store) Staff() ports.StaffRepository { return &staffRepository{store: s} }

func (s *Store) Devices() ports.DeviceRepository { return &deviceRepository{store: s} }

func (s *Store) Vitals() ports.VitalRepository { return &vitalRepository{store: s} }

func (s *Store) CareRecords() ports.CareRecordRepository { return &careRecordRepository{store: s} }

type patientRepository struct{ store *Store }

func (r *patientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if p, ok := r.store.patients[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *patientRepository) FindByName(ctx context.Context, name string) (*domain.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Deterministic first match: iterate in ID order.
	ids := make([]string, 0, len(r.store.patients))
	for id := range r.store.patients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.store.patients[id].Name == name {
			copied := *r.store.patients[id]
			return &copied, nil
		}
	}
	return nil, nil
}

type staffRepository struct{ store *Store }

func (r *staffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if st, ok := r.store.staff[id]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, nil
}

func (r *staffRepository) FindByName(ctx context.Context, name string) (*domain.Staff, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.staff))
	for id := range r.store.staff {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.store.staff[id].Name == name {
			copied := *r.store.staff[id]
			return &copied, nil
		}
	}
	return nil, nil
}

type deviceRepository struct{ store *Store }

func (r *deviceRepository) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if d, ok := r.store.devices[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, nil
}

type vitalRepository struct{ store *Store }

func (r *vitalRepository) Save(ctx context.Context, vital *domain.VitalSign) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.vitals = append(r.store.vitals, *vital)
	return nil
}

func (r *vitalRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.VitalSign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.VitalSign, 0)
	for _, v := range r.store.vitals {
		if v.PatientID == patientID {
			matched = append(matched, v)
		}
	}
	// Timestamps are RFC3339 so lexicographic order is chronological.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

type careRecordRepository struct{ store *Store }

func (r *careRecordRepository) Save(ctx context.Context, record *domain.CareRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.records = append(r.store.records, *record)
	return nil
}

func (r *careRecordRepository) FindRecentByPatient(ctx context.Context, patientID string, limit int) ([]domain.CareRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.CareRecord, 0)
	for _, rec := range r.store.records {
		if rec.PatientID == patientID {
			matched = append(matched, rec)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
