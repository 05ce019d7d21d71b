package command

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/domain"
	"github.com/carewear/carevoice/internal/ports"
)

// Service resolves classified intents into domain actions: it validates
// parameters, resolves entities by name, normalizes values, persists the
// resulting record and renders the confirmation text.
type Service struct {
	patients ports.PatientRepository
	staff    ports.StaffRepository
	vitals   ports.VitalRepository
	records  ports.CareRecordRepository
	mq       queue.Publisher
	log      *zap.Logger
}

func NewService(
	patients ports.PatientRepository,
	staff ports.StaffRepository,
	vitals ports.VitalRepository,
	records ports.CareRecordRepository,
	mq queue.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		patients: patients,
		staff:    staff,
		vitals:   vitals,
		records:  records,
		mq:       mq,
		log:      log,
	}
}

type handlerFunc func(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error)

// Resolve runs one intent through the confidence gate and the dispatch
// table. Handlers convert their own foreseeable failures into outcomes;
// anything that still escapes is converted to an ERROR outcome here so
// no defect can crash the caller.
func (s *Service) Resolve(ctx context.Context, intent *domain.Intent, device *domain.Device) (out *domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("command handler panicked",
				zap.String("command", intent.Command),
				zap.Any("panic", r),
			)
			out = errorOutcome(fmt.Sprintf("%v", r))
		}
	}()

	// The gate precedes dispatch: a low-confidence EMERGENCY is demoted
	// like any other command.
	if intent.Confidence < domain.ConfidenceThreshold {
		return &domain.Outcome{
			Command: domain.OutcomeLowConfidence,
			DisplayText: fmt.Sprintf(
				"コマンドの信頼度が低いです。\n「%s」と解釈しました。\n もう一度お試しください。",
				intent.Command,
			),
		}
	}

	var handler handlerFunc
	switch intent.Command {
	case domain.CommandGetPatientInfo:
		handler = s.getPatientInfo
	case domain.CommandRecordVital:
		handler = s.recordVital
	case domain.CommandRecordMeal:
		handler = s.recordMeal
	case domain.CommandRecordMedicine:
		handler = s.recordMedicine
	case domain.CommandCallStaff:
		handler = s.callStaff
	case domain.CommandEmergency:
		handler = s.reportEmergency
	default:
		return &domain.Outcome{
			Command:     domain.OutcomeUnknownCommand,
			DisplayText: fmt.Sprintf("認識できないコマンドです: %s\nもう一度お試しください。", intent.Command),
		}
	}

	result, err := handler(ctx, intent, device)
	if err != nil {
		s.log.Error("command execution failed",
			zap.String("command", intent.Command),
			zap.Error(err),
		)
		return errorOutcome(err.Error())
	}
	return result
}

func errorOutcome(msg string) *domain.Outcome {
	return &domain.Outcome{
		Command:     domain.OutcomeError,
		DisplayText: "コマンド実行中にエラーが発生しました: " + msg,
	}
}

func notFoundOutcome(name string) *domain.Outcome {
	return &domain.Outcome{
		Command:     domain.OutcomeNotFound,
		DisplayText: fmt.Sprintf("%sさんの情報が見つかりませんでした。", name),
	}
}

func validationError(msg string) *domain.Outcome {
	return &domain.Outcome{
		Command:     domain.OutcomeError,
		DisplayText: msg,
	}
}

// publishEvent emits a domain event for downstream consumers. Delivery is
// fire-and-forget: a queue failure never changes the outcome.
func (s *Service) publishEvent(subject string, payload interface{}) {
	if s.mq == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("failed to encode event", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := s.mq.Publish(subject, data); err != nil {
		s.log.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
