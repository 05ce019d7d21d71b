package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type CareType string

const (
	CareTypeMeal     CareType = "meal"
	CareTypeMedicine CareType = "medicine"
	CareTypeBath     CareType = "bath"
	CareTypeToilet   CareType = "toilet"
	CareTypeOther    CareType = "other"
)

// CareRecord is one persisted care event (meal, medication, ...). Records
// are written once inside a handler invocation and never updated.
type CareRecord struct {
	ID          string   `json:"recordId" gorm:"column:record_id;primaryKey"`
	PatientID   string   `json:"patientId" gorm:"index"`
	Timestamp   string   `json:"timestamp"` // ISO-8601, creation time
	CareType    CareType `json:"careType"`
	Details     JSONMap  `json:"details" gorm:"type:text"`
	PerformedBy string   `json:"performedBy"`
	DeviceID    string   `json:"deviceId"`
	Notes       string   `json:"notes,omitempty"`
}

// VitalSign is one persisted vital-sign measurement. Optional fields use
// pointers so absent measurements stay absent instead of rendering as zero.
type VitalSign struct {
	ID                     string   `json:"recordId" gorm:"column:record_id;primaryKey"`
	PatientID              string   `json:"patientId" gorm:"index"`
	Timestamp              string   `json:"timestamp"`
	Temperature            *float64 `json:"temperature,omitempty"`
	BloodPressureSystolic  *int     `json:"bloodPressureSystolic,omitempty"`
	BloodPressureDiastolic *int     `json:"bloodPressureDiastolic,omitempty"`
	HeartRate              *int     `json:"heartRate,omitempty"`
	SpO2                   *int     `json:"spO2,omitempty"`
	RespiratoryRate        *int     `json:"respiratoryRate,omitempty"`
	RecordedBy             string   `json:"recordedBy"`
	DeviceID               string   `json:"deviceId"`
	Notes                  string   `json:"notes,omitempty"`
}

// JSONMap stores a loosely-typed details bag as a JSON text column.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
}

// StringList stores a string slice as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}
