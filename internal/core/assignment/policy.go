package assignment

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// SetPolicyInput はポリシー更新時の入力です。
type SetPolicyInput struct {
	MaxDailyHours float64
}

// GetPolicy は現在の上限勤務時間を返します。
func (s *Service) GetPolicy(ctx context.Context) (*Policy, error) {
	hours, err := s.policy.MaxDailyHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("read max daily hours: %w", err)
	}
	return &Policy{MaxDailyHours: hours}, nil
}

// SetPolicy は上限勤務時間を更新します。次の割り当て検証から即時に反映されます。
// 既存の割り当ては再検証しません。
func (s *Service) SetPolicy(ctx context.Context, in SetPolicyInput) (*Policy, error) {
	if !(in.MaxDailyHours > 0) || math.IsInf(in.MaxDailyHours, 0) || in.MaxDailyHours > 24 {
		return nil, ErrInvalidMaxDailyHours
	}

	store, ok := s.policy.(PolicyStore)
	if !ok {
		return nil, ErrPolicyReadOnly
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return store.SetMaxDailyHours(txCtx, in.MaxDailyHours)
	}); err != nil {
		return nil, err
	}

	s.logger.Info("max daily hours updated", zap.Float64("max_daily_hours", in.MaxDailyHours))
	return &Policy{MaxDailyHours: in.MaxDailyHours}, nil
}
