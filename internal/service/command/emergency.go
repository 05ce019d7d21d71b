package command

import (
	"context"
	"fmt"
	"time"

	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/domain"
)

// reportEmergency emits an emergency event for the given location. The
// IsEmergency flag lets the device render the result specially.
func (s *Service) reportEmergency(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	location := intent.Param("location")
	if location == "" {
		return validationError("場所の情報が必要です。"), nil
	}

	s.publishEvent(queue.SubjectEmergencyReported, map[string]string{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"reporterId": device.AssignedTo,
		"location":   location,
		"status":     "active",
		"deviceId":   device.ID,
	})

	return &domain.Outcome{
		Command:     domain.CommandEmergency,
		DisplayText: fmt.Sprintf("緊急通報を送信しました: %s \n\n 応援が向かっています。", location),
		IsEmergency: true,
	}, nil
}
