package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/cache"
	"github.com/carewear/carevoice/internal/adapter/http/fiber/middleware"
	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/adapter/storage/memory"
	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/service/assistant"
	"github.com/carewear/carevoice/internal/service/command"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	store := memory.NewSeededStore()
	resolver := command.NewService(
		store.Patients(),
		store.Staff(),
		store.Vitals(),
		store.CareRecords(),
		queue.NewLocalPublisher(logger),
		logger,
	)
	a := assistant.New(
		store.Devices(),
		cache.NewLocalCache(time.Minute, logger),
		memory.NewSpeechStub(),
		memory.NewIntentStub(),
		resolver,
		time.Minute,
		logger,
	)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	handler := NewVoiceHandler(a, true, logger)
	app.Post("/api/v1/voice/command", handler.ProcessCommand)
	return app
}

func postCommand(t *testing.T, app *fiber.App, body map[string]string) (int, map[string]interface{}) {
	t.Helper()

	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/api/v1/voice/command", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, data)
	}
	return resp.StatusCode, decoded
}

func TestProcessCommand_MissingInput(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	status, body := postCommand(t, app, map[string]string{"deviceId": "D001"})

	// Assert
	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if body["error"] != "音声データとデバイスIDが必要です" {
		t.Errorf("unexpected error %v", body["error"])
	}
}

func TestProcessCommand_UnregisteredDevice(t *testing.T) {
	app := newTestApp(t)

	status, body := postCommand(t, app, map[string]string{
		"audio":       "ZHVtbXk=",
		"deviceId":    "D999",
		"mockCommand": "emergency",
	})

	if status != fiber.StatusForbidden {
		t.Errorf("expected 403, got %d", status)
	}
	if body["error"] != "未登録のデバイスです" {
		t.Errorf("unexpected error %v", body["error"])
	}
}

func TestProcessCommand_MockEmergencyFlow(t *testing.T) {
	// Arrange
	app := newTestApp(t)

	// Act
	status, body := postCommand(t, app, map[string]string{
		"audio":       "ZHVtbXk=",
		"deviceId":    "D001",
		"mockCommand": "emergency",
	})

	// Assert
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["command"] != domain.CommandEmergency {
		t.Errorf("expected EMERGENCY, got %v", body["command"])
	}
	if body["isEmergency"] != true {
		t.Error("expected isEmergency flag")
	}
}

func TestProcessCommand_MockMealFlow(t *testing.T) {
	app := newTestApp(t)

	status, body := postCommand(t, app, map[string]string{
		"audio":       "ZHVtbXk=",
		"deviceId":    "D001",
		"mockCommand": "meal",
	})

	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["command"] != domain.CommandRecordMeal {
		t.Errorf("expected RECORD_MEAL, got %v", body["command"])
	}
	text, _ := body["displayText"].(string)
	if !bytes.Contains([]byte(text), []byte("田中次郎さんの昼食摂取記録を保存しました")) {
		t.Errorf("unexpected display text %q", text)
	}
}

func TestProcessCommand_NoTranscriptOutcome(t *testing.T) {
	// Real (non-mock) audio has no canned transcript in development.
	app := newTestApp(t)

	status, body := postCommand(t, app, map[string]string{
		"audio":    "ZHVtbXk=",
		"deviceId": "D001",
	})

	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["command"] != domain.OutcomeError {
		t.Errorf("expected ERROR, got %v", body["command"])
	}
	if body["displayText"] != "音声を認識できませんでした。もう一度お試しください。" {
		t.Errorf("unexpected display text %v", body["displayText"])
	}
}

func TestProcessCommand_InvalidBase64(t *testing.T) {
	app := newTestApp(t)

	status, body := postCommand(t, app, map[string]string{
		"audio":    "not base64 !!!",
		"deviceId": "D001",
	})

	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d: %v", status, body)
	}
}
