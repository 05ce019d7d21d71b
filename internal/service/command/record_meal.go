package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/domain"
)

func (s *Service) recordMeal(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	patientName := intent.Param("patientName")
	mealType := intent.Param("mealType")
	amount := intent.Param("amount")

	if patientName == "" || mealType == "" || amount == "" {
		return validationError("患者名、食事タイプ、摂取量が必要です。"), nil
	}

	patient, err := s.patients.FindByName(ctx, patientName)
	if err != nil {
		s.log.Error("patient lookup failed", zap.String("patientName", patientName), zap.Error(err))
		return validationError("食事記録中にエラーが発生しました。"), nil
	}
	if patient == nil {
		return notFoundOutcome(patientName), nil
	}

	rec := &domain.CareRecord{
		ID:        uuid.NewString(),
		PatientID: patient.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		CareType:  domain.CareTypeMeal,
		Details: domain.JSONMap{
			"mealType": mealType, // 朝食/昼食/夕食/間食
			"amount":   amount,   // 摂取量 (例: "8割")
		},
		PerformedBy: device.AssignedTo,
		DeviceID:    device.ID,
	}

	if err := s.records.Save(ctx, rec); err != nil {
		s.log.Error("failed to save meal record",
			zap.String("patientId", patient.ID),
			zap.Error(err),
		)
		return validationError("食事記録中にエラーが発生しました。"), nil
	}

	s.publishEvent(queue.SubjectRecordSaved, map[string]string{
		"recordId":  rec.ID,
		"patientId": rec.PatientID,
		"careType":  string(domain.CareTypeMeal),
		"deviceId":  device.ID,
		"timestamp": rec.Timestamp,
	})

	return &domain.Outcome{
		Command: domain.CommandRecordMeal,
		DisplayText: fmt.Sprintf(
			"%sさんの%s摂取記録を保存しました: \n 摂取量: %s",
			patientName, localizeMealType(mealType), amount,
		),
	}, nil
}
