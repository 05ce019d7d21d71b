package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

type testEnv struct {
	patients *mocks.MockPatientRepository
	staff    *mocks.MockStaffRepository
	vitals   *mocks.MockVitalRepository
	records  *mocks.MockCareRecordRepository
	mq       *mocks.MockPublisher
	service  *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		patients: &mocks.MockPatientRepository{},
		staff:    &mocks.MockStaffRepository{},
		vitals:   &mocks.MockVitalRepository{},
		records:  &mocks.MockCareRecordRepository{},
		mq:       mocks.NewMockPublisher(),
	}
	env.service = NewService(env.patients, env.staff, env.vitals, env.records, env.mq, newTestLogger())
	return env
}

func testDevice() *domain.Device {
	return &domain.Device{
		ID:         "D001",
		AssignedTo: "S001",
		DeviceType: "ar-glass",
		Status:     domain.DeviceStatusActive,
	}
}

func TestResolve_LowConfidence(t *testing.T) {
	// Arrange
	env := newTestEnv()
	intent := &domain.Intent{
		Command:    domain.CommandEmergency,
		Parameters: map[string]any{"location": "103号室"},
		Confidence: 0.5,
	}

	// Act
	out := env.service.Resolve(context.Background(), intent, testDevice())

	// Assert
	if out.Command != domain.OutcomeLowConfidence {
		t.Errorf("expected LOW_CONFIDENCE, got %s", out.Command)
	}
	if !strings.Contains(out.DisplayText, "EMERGENCY") {
		t.Errorf("expected display text to echo the command, got %q", out.DisplayText)
	}
	if out.IsEmergency {
		t.Error("low-confidence EMERGENCY must not be escalated")
	}
}

func TestResolve_LowConfidence_AllCommands(t *testing.T) {
	env := newTestEnv()

	commands := []string{
		domain.CommandGetPatientInfo,
		domain.CommandRecordVital,
		domain.CommandRecordMeal,
		domain.CommandRecordMedicine,
		domain.CommandCallStaff,
		domain.CommandEmergency,
		"SOMETHING_ELSE",
	}

	for _, cmd := range commands {
		intent := &domain.Intent{Command: cmd, Confidence: 0.69}
		out := env.service.Resolve(context.Background(), intent, testDevice())
		if out.Command != domain.OutcomeLowConfidence {
			t.Errorf("command %s: expected LOW_CONFIDENCE, got %s", cmd, out.Command)
		}
	}
}

func TestResolve_UnknownCommand(t *testing.T) {
	// Arrange
	env := newTestEnv()
	intent := &domain.Intent{Command: "MAKE_COFFEE", Confidence: 0.9}

	// Act
	out := env.service.Resolve(context.Background(), intent, testDevice())

	// Assert
	if out.Command != domain.OutcomeUnknownCommand {
		t.Errorf("expected UNKNOWN_COMMAND, got %s", out.Command)
	}
	if !strings.Contains(out.DisplayText, "MAKE_COFFEE") {
		t.Errorf("expected display text to echo the tag, got %q", out.DisplayText)
	}
}

func TestResolve_HandlerErrorConvertedToOutcome(t *testing.T) {
	// Arrange: GET_PATIENT_INFO has no local catch, the router converts.
	env := newTestEnv()
	env.patients.FindByNameFunc = func(ctx context.Context, name string) (*domain.Patient, error) {
		return nil, errors.New("dynamo on fire")
	}
	intent := &domain.Intent{
		Command:    domain.CommandGetPatientInfo,
		Parameters: map[string]any{"patientName": "山田太郎"},
		Confidence: 0.95,
	}

	// Act
	out := env.service.Resolve(context.Background(), intent, testDevice())

	// Assert
	if out.Command != domain.OutcomeError {
		t.Errorf("expected ERROR, got %s", out.Command)
	}
	if !strings.Contains(out.DisplayText, "dynamo on fire") {
		t.Errorf("expected underlying message in display text, got %q", out.DisplayText)
	}
}

func TestResolve_HandlerPanicConvertedToOutcome(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.patients.FindByNameFunc = func(ctx context.Context, name string) (*domain.Patient, error) {
		panic("boom")
	}
	intent := &domain.Intent{
		Command:    domain.CommandGetPatientInfo,
		Parameters: map[string]any{"patientName": "山田太郎"},
		Confidence: 0.95,
	}

	// Act
	out := env.service.Resolve(context.Background(), intent, testDevice())

	// Assert
	if out.Command != domain.OutcomeError {
		t.Errorf("expected ERROR, got %s", out.Command)
	}
	if !strings.Contains(out.DisplayText, "boom") {
		t.Errorf("expected panic message in display text, got %q", out.DisplayText)
	}
}

func TestResolve_QueueFailureDoesNotChangeOutcome(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.mq.PublishFunc = func(topic string, data []byte) error {
		return errors.New("nats down")
	}
	intent := &domain.Intent{
		Command:    domain.CommandEmergency,
		Parameters: map[string]any{"location": "102号室"},
		Confidence: 0.98,
	}

	// Act
	out := env.service.Resolve(context.Background(), intent, testDevice())

	// Assert
	if out.Command != domain.CommandEmergency {
		t.Errorf("expected EMERGENCY, got %s", out.Command)
	}
	if !out.IsEmergency {
		t.Error("expected isEmergency flag")
	}
}
