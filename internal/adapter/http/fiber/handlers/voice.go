package handlers

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/storage/memory"
	"github.com/carewear/carevoice/internal/service/assistant"
)

type VoiceHandler struct {
	assistant *assistant.Assistant
	devMode   bool
	log       *zap.Logger
}

func NewVoiceHandler(a *assistant.Assistant, devMode bool, log *zap.Logger) *VoiceHandler {
	return &VoiceHandler{
		assistant: a,
		devMode:   devMode,
		log:       log,
	}
}

type VoiceCommandRequest struct {
	Audio       string `json:"audio"` // Base64
	DeviceID    string `json:"deviceId"`
	MockCommand string `json:"mockCommand,omitempty"`
}

func (h *VoiceHandler) ProcessCommand(c *fiber.Ctx) error {
	var req VoiceCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "音声データとデバイスIDが必要です"})
	}
	if req.Audio == "" || req.DeviceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "音声データとデバイスIDが必要です"})
	}

	var audio []byte
	if h.devMode && req.MockCommand != "" {
		audio = memory.MockAudio(req.MockCommand)
	}
	if audio == nil {
		decoded, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "音声データの形式が不正です"})
		}
		audio = decoded
	}

	outcome, err := h.assistant.Process(c.Context(), audio, req.DeviceID)
	if err != nil {
		if errors.Is(err, assistant.ErrUnknownDevice) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "未登録のデバイスです"})
		}
		h.log.Error("failed to process voice command", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to process voice command")
	}

	return c.JSON(outcome)
}
