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

func (s *Service) recordVital(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	patientName := intent.Param("patientName")
	vitalType := intent.Param("vitalType")
	vitalValue := intent.Param("vitalValue")

	if patientName == "" || vitalType == "" || vitalValue == "" {
		return validationError("患者名、バイタルタイプ、値が必要です。"), nil
	}

	patient, err := s.patients.FindByName(ctx, patientName)
	if err != nil {
		s.log.Error("patient lookup failed", zap.String("patientName", patientName), zap.Error(err))
		return validationError("バイタル記録中にエラーが発生しました。"), nil
	}
	if patient == nil {
		return notFoundOutcome(patientName), nil
	}

	rec := &domain.VitalSign{
		ID:         uuid.NewString(),
		PatientID:  patient.ID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		RecordedBy: device.AssignedTo,
		DeviceID:   device.ID,
	}
	placeholderVital(vitalValue, rec)

	// Unsupported sub-types are the one case in this family that does
	// not degrade silently: nothing is persisted.
	if !applyVital(vitalType, vitalValue, rec) {
		return validationError(fmt.Sprintf("未対応のバイタルタイプです: %s", vitalType)), nil
	}

	if err := s.vitals.Save(ctx, rec); err != nil {
		s.log.Error("failed to save vital record",
			zap.String("patientId", patient.ID),
			zap.Error(err),
		)
		return validationError("バイタル記録中にエラーが発生しました。"), nil
	}

	s.publishEvent(queue.SubjectRecordSaved, map[string]string{
		"recordId":  rec.ID,
		"patientId": rec.PatientID,
		"careType":  "vital",
		"vitalType": vitalType,
		"deviceId":  device.ID,
		"timestamp": rec.Timestamp,
	})

	typeDisplay, valueDisplay := vitalDisplay(vitalType, vitalValue, rec)
	return &domain.Outcome{
		Command:     domain.CommandRecordVital,
		DisplayText: fmt.Sprintf("%sさんの%sを記録しました: \n %s", patientName, typeDisplay, valueDisplay),
	}, nil
}
