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

// Defaults applied when the classifier did not pick up route or dosage.
const (
	defaultRoute  = "経口"
	defaultDosage = "規定量"
)

func (s *Service) recordMedicine(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	patientName := intent.Param("patientName")
	medicine := intent.Param("medicine")

	if patientName == "" || medicine == "" {
		return validationError("患者名と薬名が必要です。"), nil
	}

	patient, err := s.patients.FindByName(ctx, patientName)
	if err != nil {
		s.log.Error("patient lookup failed", zap.String("patientName", patientName), zap.Error(err))
		return validationError("投薬記録中にエラーが発生しました。"), nil
	}
	if patient == nil {
		return notFoundOutcome(patientName), nil
	}

	route := intent.Param("route")
	if route == "" {
		route = defaultRoute
	}
	dosage := intent.Param("dosage")
	if dosage == "" {
		dosage = defaultDosage
	}

	rec := &domain.CareRecord{
		ID:        uuid.NewString(),
		PatientID: patient.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		CareType:  domain.CareTypeMedicine,
		Details: domain.JSONMap{
			"medicine": medicine,
			"route":    route,
			"dosage":   dosage,
		},
		PerformedBy: device.AssignedTo,
		DeviceID:    device.ID,
	}

	if err := s.records.Save(ctx, rec); err != nil {
		s.log.Error("failed to save medicine record",
			zap.String("patientId", patient.ID),
			zap.Error(err),
		)
		return validationError("投薬記録中にエラーが発生しました。"), nil
	}

	s.publishEvent(queue.SubjectRecordSaved, map[string]string{
		"recordId":  rec.ID,
		"patientId": rec.PatientID,
		"careType":  string(domain.CareTypeMedicine),
		"deviceId":  device.ID,
		"timestamp": rec.Timestamp,
	})

	return &domain.Outcome{
		Command:     domain.CommandRecordMedicine,
		DisplayText: fmt.Sprintf("%sさんの投薬を記録しました: \n 薬剤: %s", patientName, medicine),
	}, nil
}
