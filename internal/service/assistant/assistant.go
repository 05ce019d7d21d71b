package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/observability/telemetry"
	"github.com/carewear/carevoice/internal/ports"
	"github.com/carewear/carevoice/internal/service/command"
)

// ErrUnknownDevice means the request came from a device that is not
// registered. The transport layer maps it to 403.
var ErrUnknownDevice = errors.New("unknown device")

const noTranscriptText = "音声を認識できませんでした。もう一度お試しください。"

// Assistant runs one voice request end to end: device check,
// transcription, classification, command resolution. It owns the
// per-request metrics; everything domain-specific lives in the command
// resolver.
type Assistant struct {
	devices   ports.DeviceRepository
	cache     ports.Cache
	speech    ports.SpeechService
	intents   ports.IntentService
	resolver  *command.Service
	deviceTTL time.Duration
	log       *zap.Logger
}

func New(
	devices ports.DeviceRepository,
	cache ports.Cache,
	speech ports.SpeechService,
	intents ports.IntentService,
	resolver *command.Service,
	deviceTTL time.Duration,
	log *zap.Logger,
) *Assistant {
	return &Assistant{
		devices:   devices,
		cache:     cache,
		speech:    speech,
		intents:   intents,
		resolver:  resolver,
		deviceTTL: deviceTTL,
		log:       log,
	}
}

// Process resolves one audio payload into an outcome. A non-nil error is
// returned only for the unregistered-device case; every other failure is
// expressed as an outcome so the device always has something to render.
func (a *Assistant) Process(ctx context.Context, audio []byte, deviceID string) (*domain.Outcome, error) {
	start := time.Now()

	device, err := a.lookupDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	transcript, err := a.speech.Transcribe(ctx, audio)
	if err != nil {
		a.log.Error("transcription failed", zap.String("deviceId", deviceID), zap.Error(err))
		transcript = ""
	}
	// Recognizer errors and empty results take the same path and count
	// once.
	if transcript == "" {
		telemetry.TranscriptionFailures.Inc()
		out := &domain.Outcome{
			Command:     domain.OutcomeError,
			DisplayText: noTranscriptText,
		}
		a.observe(domain.CommandUnknown, out, start)
		return out, nil
	}

	intent := a.intents.Classify(ctx, transcript)
	a.log.Info("intent classified",
		zap.String("deviceId", deviceID),
		zap.String("command", intent.Command),
		zap.Float64("confidence", intent.Confidence),
	)

	out := a.resolver.Resolve(ctx, intent, device)
	a.observe(intent.Command, out, start)
	return out, nil
}

// lookupDevice checks the cache before the repository; a hit saves the
// round trip on every command a device sends during its TTL.
func (a *Assistant) lookupDevice(ctx context.Context, deviceID string) (*domain.Device, error) {
	cacheKey := "device:" + deviceID

	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var device domain.Device
			if err := json.Unmarshal([]byte(cached), &device); err == nil {
				return &device, nil
			}
		}
	}

	device, err := a.devices.FindByID(ctx, deviceID)
	if err != nil {
		a.log.Error("device lookup failed", zap.String("deviceId", deviceID), zap.Error(err))
		return nil, err
	}
	if device == nil {
		return nil, ErrUnknownDevice
	}

	if a.cache != nil {
		if data, err := json.Marshal(device); err == nil {
			if err := a.cache.Set(ctx, cacheKey, string(data), a.deviceTTL); err != nil {
				a.log.Warn("device cache write failed", zap.String("deviceId", deviceID), zap.Error(err))
			}
		}
	}
	return device, nil
}

func (a *Assistant) observe(commandTag string, out *domain.Outcome, start time.Time) {
	telemetry.CommandsTotal.WithLabelValues(commandTag, out.Command).Inc()
	telemetry.CommandLatency.Observe(time.Since(start).Seconds())

	switch out.Command {
	case domain.CommandRecordVital:
		telemetry.RecordsSavedTotal.WithLabelValues("vital").Inc()
	case domain.CommandRecordMeal:
		telemetry.RecordsSavedTotal.WithLabelValues(string(domain.CareTypeMeal)).Inc()
	case domain.CommandRecordMedicine:
		telemetry.RecordsSavedTotal.WithLabelValues(string(domain.CareTypeMedicine)).Inc()
	}
}
