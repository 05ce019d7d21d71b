package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/mocks"
	"github.com/carewear/carevoice/internal/observability/telemetry"
	"github.com/carewear/carevoice/internal/service/command"
)

type testEnv struct {
	devices   *mocks.MockDeviceRepository
	cache     *mocks.MockCache
	speech    *mocks.MockSpeechService
	intents   *mocks.MockIntentService
	patients  *mocks.MockPatientRepository
	mq        *mocks.MockPublisher
	assistant *Assistant
}

func newTestEnv() *testEnv {
	logger, _ := zap.NewDevelopment()

	env := &testEnv{
		devices:  &mocks.MockDeviceRepository{},
		cache:    mocks.NewMockCache(),
		speech:   mocks.NewMockSpeechService(),
		intents:  mocks.NewMockIntentService(),
		patients: &mocks.MockPatientRepository{},
		mq:       mocks.NewMockPublisher(),
	}
	env.devices.FindByIDFunc = func(ctx context.Context, id string) (*domain.Device, error) {
		if id == "D001" {
			return &domain.Device{ID: "D001", AssignedTo: "S001", Status: domain.DeviceStatusActive}, nil
		}
		return nil, nil
	}

	resolver := command.NewService(
		env.patients,
		&mocks.MockStaffRepository{},
		&mocks.MockVitalRepository{},
		&mocks.MockCareRecordRepository{},
		env.mq,
		logger,
	)
	env.assistant = New(env.devices, env.cache, env.speech, env.intents, resolver, time.Minute, logger)
	return env
}

func TestProcess_UnknownDeviceNeverReachesClassification(t *testing.T) {
	// Arrange
	env := newTestEnv()
	classified := false
	env.intents.ClassifyFunc = func(ctx context.Context, text string) *domain.Intent {
		classified = true
		return domain.UnknownIntent()
	}

	// Act
	out, err := env.assistant.Process(context.Background(), []byte("audio"), "D999")

	// Assert
	if !errors.Is(err, ErrUnknownDevice) {
		t.Fatalf("expected ErrUnknownDevice, got %v", err)
	}
	if out != nil {
		t.Errorf("expected no outcome, got %+v", out)
	}
	if classified {
		t.Error("an unregistered device must not reach classification")
	}
}

func TestProcess_EmptyTranscriptShortCircuits(t *testing.T) {
	// Arrange: the recognizer produced no result.
	env := newTestEnv()
	env.speech.DefaultResponse = ""

	// Act
	out, err := env.assistant.Process(context.Background(), []byte("audio"), "D001")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Command != domain.OutcomeError {
		t.Errorf("expected ERROR, got %s", out.Command)
	}
	if out.DisplayText != "音声を認識できませんでした。もう一度お試しください。" {
		t.Errorf("unexpected display text %q", out.DisplayText)
	}
}

func TestProcess_TranscriptionErrorTreatedAsNoResult(t *testing.T) {
	env := newTestEnv()
	env.speech.TranscribeFunc = func(ctx context.Context, audio []byte) (string, error) {
		return "", errors.New("recognizer unavailable")
	}

	out, err := env.assistant.Process(context.Background(), []byte("audio"), "D001")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Command != domain.OutcomeError {
		t.Errorf("expected ERROR, got %s", out.Command)
	}
}

func TestProcess_TranscriptionErrorCountsOnce(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.speech.TranscribeFunc = func(ctx context.Context, audio []byte) (string, error) {
		return "", errors.New("recognizer unavailable")
	}
	before := testutil.ToFloat64(telemetry.TranscriptionFailures)

	// Act
	_, err := env.assistant.Process(context.Background(), []byte("audio"), "D001")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(telemetry.TranscriptionFailures) - before; got != 1 {
		t.Errorf("expected one counted failure, got %v", got)
	}
}

func TestProcess_ClassifierSentinelResolvesToLowConfidence(t *testing.T) {
	// Arrange: classifier failed internally, yielding the sentinel.
	env := newTestEnv()
	env.speech.DefaultResponse = "何か聞き取れない言葉"

	// Act
	out, err := env.assistant.Process(context.Background(), []byte("audio"), "D001")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Command != domain.OutcomeLowConfidence {
		t.Errorf("expected LOW_CONFIDENCE, got %s", out.Command)
	}
}

func TestProcess_FullFlow(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.speech.SetResponse("audio-1", "103号室で緊急事態です")
	env.intents.SetIntent("103号室で緊急事態です", &domain.Intent{
		Command:    domain.CommandEmergency,
		Parameters: map[string]any{"location": "103号室"},
		Confidence: 0.97,
	})

	// Act
	out, err := env.assistant.Process(context.Background(), []byte("audio-1"), "D001")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Command != domain.CommandEmergency || !out.IsEmergency {
		t.Errorf("expected emergency outcome, got %+v", out)
	}
	if !strings.Contains(out.DisplayText, "103号室") {
		t.Errorf("expected location in display text, got %q", out.DisplayText)
	}
	if len(env.mq.GetPublishedMessages("care.emergency.reported")) != 1 {
		t.Error("expected an emergency event")
	}
}

func TestProcess_DeviceLookupUsesCache(t *testing.T) {
	// Arrange: the device is already cached; the repository must not run.
	env := newTestEnv()
	device := &domain.Device{ID: "D002", AssignedTo: "S002", Status: domain.DeviceStatusActive}
	data, _ := json.Marshal(device)
	_ = env.cache.Set(context.Background(), "device:D002", string(data), time.Minute)

	repoCalled := false
	env.devices.FindByIDFunc = func(ctx context.Context, id string) (*domain.Device, error) {
		repoCalled = true
		return nil, nil
	}
	env.speech.DefaultResponse = ""

	// Act
	_, err := env.assistant.Process(context.Background(), []byte("audio"), "D002")

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repoCalled {
		t.Error("cached device must not hit the repository")
	}
}

func TestProcess_DeviceCachedAfterRepositoryHit(t *testing.T) {
	env := newTestEnv()
	env.speech.DefaultResponse = ""

	_, err := env.assistant.Process(context.Background(), []byte("audio"), "D001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cached, _ := env.cache.Get(context.Background(), "device:D001")
	if cached == "" {
		t.Fatal("expected the device to be cached")
	}
	var device domain.Device
	if err := json.Unmarshal([]byte(cached), &device); err != nil {
		t.Fatalf("cached device is not JSON: %v", err)
	}
	if device.AssignedTo != "S001" {
		t.Errorf("unexpected cached device %+v", device)
	}
}
