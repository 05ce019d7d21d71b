package command

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carewear/carevoice/internal/adapter/queue"
	"github.com/carewear/carevoice/internal/domain"
)

// callStaff resolves the target staff member and emits a call event.
// Actual delivery (push, pager, ...) is a downstream consumer's job and
// intentionally not implemented here.
func (s *Service) callStaff(ctx context.Context, intent *domain.Intent, device *domain.Device) (*domain.Outcome, error) {
	staffName := intent.Param("staffName")
	if staffName == "" {
		return validationError("スタッフ名が必要です。"), nil
	}

	staff, err := s.staff.FindByName(ctx, staffName)
	if err != nil {
		s.log.Error("staff lookup failed", zap.String("staffName", staffName), zap.Error(err))
		return validationError("スタッフ呼び出し中にエラーが発生しました。"), nil
	}
	if staff == nil {
		return notFoundOutcome(staffName), nil
	}

	s.publishEvent(queue.SubjectStaffCalled, map[string]string{
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"callerId":      device.AssignedTo,
		"targetStaffId": staff.ID,
		"status":        "pending",
		"deviceId":      device.ID,
	})

	return &domain.Outcome{
		Command:     domain.CommandCallStaff,
		DisplayText: fmt.Sprintf("%sさんを呼び出しました。 \n 応答をお待ちください。", staffName),
	}, nil
}
