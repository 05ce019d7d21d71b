package command

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/domain"
)

// getPatientInfo composes the patient summary: demographics, primary
// nurse, allergies and — when one exists — the latest vital signs with
// only the fields actually present.
func (s *Service) getPatientInfo(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	patientName := intent.Param("patientName")
	if patientName == "" {
		return validationError("患者名が指定されていません。"), nil
	}

	patient, err := s.patients.FindByName(ctx, patientName)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return notFoundOutcome(patientName), nil
	}

	nurseInfo := "情報なし"
	if patient.PrimaryNurse != "" {
		nurse, err := s.staff.FindByID(ctx, patient.PrimaryNurse)
		if err != nil {
			s.log.Warn("primary nurse lookup failed",
				zap.String("staffId", patient.PrimaryNurse),
				zap.Error(err),
			)
		} else if nurse != nil {
			nurseInfo = nurse.Name
		}
	}

	vitalInfo := ""
	vitals, err := s.vitals.FindRecentByPatient(ctx, patient.ID, 1)
	if err != nil {
		s.log.Warn("vital history lookup failed",
			zap.String("patientId", patient.ID),
			zap.Error(err),
		)
	}
	if len(vitals) > 0 {
		v := vitals[0]
		var b strings.Builder
		b.WriteString("\n最新バイタル: ")
		if v.Temperature != nil {
			fmt.Fprintf(&b, "体温%g℃ ", *v.Temperature)
		}
		if v.BloodPressureSystolic != nil && v.BloodPressureDiastolic != nil {
			fmt.Fprintf(&b, "血圧%d/%d ", *v.BloodPressureSystolic, *v.BloodPressureDiastolic)
		}
		if v.HeartRate != nil {
			fmt.Fprintf(&b, "脈拍%d ", *v.HeartRate)
		}
		if v.SpO2 != nil {
			fmt.Fprintf(&b, "SpO2:%d%% ", *v.SpO2)
		}
		vitalInfo = b.String()
	}

	allergyInfo := "なし"
	if len(patient.Allergies) > 0 {
		allergyInfo = strings.Join(patient.Allergies, "、")
	}

	displayText := fmt.Sprintf(
		"%sさん\n年齢: %d歳\n部屋: %s\n介護度: %d\n担当: %s\nアレルギー: %s%s",
		patient.Name, patient.Age, patient.RoomNumber, patient.CareLevel,
		nurseInfo, allergyInfo, vitalInfo,
	)

	s.log.Info("activity",
		zap.String("staffId", device.AssignedTo),
		zap.String("actionType", domain.CommandGetPatientInfo),
		zap.String("patientId", patient.ID),
	)

	return &domain.Outcome{
		Command:     domain.CommandGetPatientInfo,
		DisplayText: displayText,
		Data:        patient,
	}, nil
}
