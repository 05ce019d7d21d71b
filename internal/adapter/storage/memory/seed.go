package memory

import (
	"context"

	"github.com/carewear/carevoice/internal/domain"
)

// NewSeededStore returns a store pre-loaded with the development
// fixtures: four patients, three staff members and two registered
// devices.
func NewSeededStore() *Store {
	s := NewStore()

	s.AddPatient(&domain.Patient{
		ID:           "P001",
		Name:         "山田太郎",
		Age:          82,
		Gender:       "male",
		RoomNumber:   "101",
		CareLevel:    3,
		Allergies:    domain.StringList{"ペニシリン"},
		PrimaryNurse: "S001",
		Status:       domain.PatientStatusActive,
	})
	s.AddPatient(&domain.Patient{
		ID:         "P002",
		Name:       "佐藤花子",
		Age:        78,
		Gender:     "female",
		RoomNumber: "102",
		CareLevel:  2,
		Status:     domain.PatientStatusActive,
	})
	s.AddPatient(&domain.Patient{
		ID:         "P003",
		Name:       "田中次郎",
		Age:        90,
		Gender:     "male",
		RoomNumber: "103",
		CareLevel:  4,
		Allergies:  domain.StringList{"そば", "卵"},
		Status:     domain.PatientStatusActive,
	})
	s.AddPatient(&domain.Patient{
		ID:         "P004",
		Name:       "鈴木一郎",
		Age:        85,
		Gender:     "male",
		RoomNumber: "104",
		CareLevel:  1,
		Status:     domain.PatientStatusActive,
	})

	s.AddStaff(&domain.Staff{ID: "S001", Name: "佐藤看護師", Role: "nurse", Status: domain.StaffStatusActive})
	s.AddStaff(&domain.Staff{ID: "S002", Name: "田中看護師", Role: "nurse", Status: domain.StaffStatusActive})
	s.AddStaff(&domain.Staff{ID: "S003", Name: "鈴木医師", Role: "doctor", Status: domain.StaffStatusActive})

	s.AddDevice(&domain.Device{ID: "D001", AssignedTo: "S001", DeviceType: "ar-glass", Status: domain.DeviceStatusActive})
	s.AddDevice(&domain.Device{ID: "D002", AssignedTo: "S002", DeviceType: "ar-glass", Status: domain.DeviceStatusActive})

	return s
}

// Canned transcripts keyed by the mock audio payloads the development
// endpoint substitutes for real audio.
var mockTranscripts = map[string]string{
	"mock:patient_info": "山田太郎さんの情報を教えて",
	"mock:temperature":  "山田太郎さんの体温36.5度を記録",
	"mock:meal":         "田中次郎さんの昼食8割摂取を記録",
	"mock:medicine":     "山田太郎さんにアムロジピンを投与",
	"mock:call":         "佐藤看護師を呼んで",
	"mock:emergency":    "103号室で緊急事態発生",
}

// SpeechStub resolves the canned mock payloads; anything else counts as
// "no result".
type SpeechStub struct{}

func NewSpeechStub() *SpeechStub { return &SpeechStub{} }

func (s *SpeechStub) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return mockTranscripts[string(audio)], nil
}

// IntentStub classifies the canned transcripts with fixed high
// confidence; anything else yields the UNKNOWN sentinel.
type IntentStub struct{}

func NewIntentStub() *IntentStub { return &IntentStub{} }

func (s *IntentStub) Classify(ctx context.Context, text string) *domain.Intent {
	intents := map[string]*domain.Intent{
		"山田太郎さんの情報を教えて": {
			Command:    domain.CommandGetPatientInfo,
			Parameters: map[string]any{"patientName": "山田太郎"},
			Confidence: 0.95,
		},
		"山田太郎さんの体温36.5度を記録": {
			Command:    domain.CommandRecordVital,
			Parameters: map[string]any{"patientName": "山田太郎", "vitalType": "temperature", "vitalValue": "36.5度"},
			Confidence: 0.95,
		},
		"田中次郎さんの昼食8割摂取を記録": {
			Command:    domain.CommandRecordMeal,
			Parameters: map[string]any{"patientName": "田中次郎", "mealType": "lunch", "amount": "8割"},
			Confidence: 0.95,
		},
		"山田太郎さんにアムロジピンを投与": {
			Command:    domain.CommandRecordMedicine,
			Parameters: map[string]any{"patientName": "山田太郎", "medicine": "アムロジピン"},
			Confidence: 0.95,
		},
		"佐藤看護師を呼んで": {
			Command:    domain.CommandCallStaff,
			Parameters: map[string]any{"staffName": "佐藤看護師"},
			Confidence: 0.95,
		},
		"103号室で緊急事態発生": {
			Command:    domain.CommandEmergency,
			Parameters: map[string]any{"location": "103号室"},
			Confidence: 0.98,
		},
	}
	if intent, ok := intents[text]; ok {
		return intent
	}
	return domain.UnknownIntent()
}

// MockAudio maps a development mockCommand tag to its canned payload.
// Unknown tags return nil so the caller falls back to the real audio.
func MockAudio(command string) []byte {
	key := "mock:" + command
	if _, ok := mockTranscripts[key]; !ok {
		return nil
	}
	return []byte(key)
}
