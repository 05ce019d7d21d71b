package domain

import (
	"time"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

// Patient is a resident of the care facility. Read-only input to the
// command core; lookups happen by name through the repository.
type Patient struct {
	ID               string        `json:"patientId" gorm:"column:patient_id;primaryKey"`
	Name             string        `json:"name" gorm:"index"`
	Age              int           `json:"age"`
	Gender           string        `json:"gender,omitempty"`
	RoomNumber       string        `json:"roomNumber"`
	CareLevel        int           `json:"careLevel"`
	Allergies        StringList    `json:"allergies,omitempty" gorm:"type:text"`
	PrimaryNurse     string        `json:"primaryNurse,omitempty"`
	EmergencyContact string        `json:"emergencyContact,omitempty"`
	Status           PatientStatus `json:"status"`
	AdmissionDate    string        `json:"admissionDate,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
