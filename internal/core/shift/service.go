package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// DateLayout はシフト日付の書式です。文字列比較と日付順が一致します。
const DateLayout = "2006-01-02"

// Service はシフトに関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error)
	GetShift(ctx context.Context, in GetShiftInput) (*Shift, error)
	ListShifts(ctx context.Context) ([]*Shift, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateShiftInput はシフト作成時の入力です。
type CreateShiftInput struct {
	ID        string
	Date      string
	StartTime string
	EndTime   string
}

// GetShiftInput はシフト取得時の入力です。
type GetShiftInput struct {
	ID string
}

// CreateShift はシフトを作成します。日跨ぎ (終了 <= 開始) のシフトは受け付けません。
func (s *Service) CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, ErrInvalidID
	}

	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}

	start, err := ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(in.EndTime)
	if err != nil {
		return nil, err
	}
	if end.MinuteOfDay() <= start.MinuteOfDay() {
		return nil, ErrInvalidTimeRange
	}

	sh := &Shift{
		ID:        id,
		Date:      date,
		StartTime: formatClock(start),
		EndTime:   formatClock(end),
	}

	var created *Shift
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil && !errors.Is(err, ErrShiftNotFound) {
			return err
		}
		if existing != nil {
			return ErrIDAlreadyExists
		}

		result, err := s.repo.Create(txCtx, sh)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetShift はシフトを取得します。
func (s *Service) GetShift(ctx context.Context, in GetShiftInput) (*Shift, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListShifts はシフトを日付・開始時刻順で返します。
func (s *Service) ListShifts(ctx context.Context) ([]*Shift, error) {
	var shifts []*Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		shifts = result
		return nil
	}); err != nil {
		return nil, err
	}

	SortChronologically(shifts)
	return shifts, nil
}

func normalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.ParseInLocation(DateLayout, trimmed, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidDate)
	}
	return t.Format(DateLayout), nil
}

func formatClock(c ClockTime) string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
