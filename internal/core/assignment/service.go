package assignment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/ogurasousui/shift-scheduler/internal/core/assignment"

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

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

// Service はシフト割り当てのユースケースをまとめます。
type Service struct {
	employees EmployeeFinder
	shifts    ShiftFinder
	repo      Repository
	policy    PolicySource
	tx        TransactionManager
	locker    Locker
	clock     Clock
	logger    *zap.Logger
	tracer    trace.Tracer
}

// UseCase は割り当てユースケースの公開インターフェースです。
type UseCase interface {
	AssignShift(ctx context.Context, in AssignShiftInput) (Outcome, error)
	GetEmployeeSchedule(ctx context.Context, in GetEmployeeScheduleInput) (*Schedule, error)
	GetPolicy(ctx context.Context) (*Policy, error)
	SetPolicy(ctx context.Context, in SetPolicyInput) (*Policy, error)
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithTransactionManager は検証とコミットを包むトランザクション制御を指定します。
func WithTransactionManager(tx TransactionManager) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// WithLocker は社員単位の直列化方式を指定します。既定はプロセス内の KeyedMutex です。
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithClock は割り当て日時の取得元を指定します。
func WithClock(c Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger はロガーを指定します。
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService は Service を生成します。
func NewService(employees EmployeeFinder, shifts ShiftFinder, repo Repository, policy PolicySource, opts ...Option) *Service {
	s := &Service{
		employees: employees,
		shifts:    shifts,
		repo:      repo,
		policy:    policy,
		tx:        noopTransactionManager{},
		locker:    NewKeyedMutex(),
		clock:     realClock{},
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssignShiftInput は割り当て要求の入力です。
type AssignShiftInput struct {
	EmployeeID string
	ShiftID    string
}

// AssignShift は社員をシフトに割り当てます。
//
// 検証は社員の存在、シフトの存在、重複、当日の合計勤務時間の順に行い、最初の失敗で打ち切ります。
// 拒否は Outcome として nil エラーとともに返します。error が返るのは入力不正と
// リポジトリ障害 (ErrRepository を wrap) のみで、後者の Outcome は OutcomeRepositoryError です。
// 追記は全ての検証を通過した後にだけ行われます。
func (s *Service) AssignShift(ctx context.Context, in AssignShiftInput) (Outcome, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return OutcomeUnspecified, fmt.Errorf("employee_id: %w", ErrInvalidEmployeeID)
	}
	shiftID := strings.TrimSpace(in.ShiftID)
	if shiftID == "" {
		return OutcomeUnspecified, fmt.Errorf("shift_id: %w", ErrInvalidShiftID)
	}

	ctx, span := s.tracer.Start(ctx, "assignment.AssignShift", trace.WithAttributes(
		attribute.String("employee.id", employeeID),
		attribute.String("shift.id", shiftID),
	))
	defer span.End()

	var (
		outcome  Outcome
		dayHours float64
	)
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		unlock, err := s.locker.Lock(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("lock employee %s: %w", employeeID, err)
		}
		defer unlock()

		result, hours, err := s.validateAndCommit(txCtx, employeeID, shiftID)
		outcome = result
		dayHours = hours
		return err
	})
	if err != nil {
		outcome = OutcomeRepositoryError
		err = asRepositoryError(err)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error("shift assignment failed",
			zap.String("employee_id", employeeID),
			zap.String("shift_id", shiftID),
			zap.Error(err),
		)
		return outcome, err
	}

	span.SetAttributes(attribute.String("assignment.outcome", outcome.String()))
	if outcome == OutcomeSuccess {
		s.logger.Info("shift assigned",
			zap.String("employee_id", employeeID),
			zap.String("shift_id", shiftID),
			zap.Float64("day_hours", dayHours),
		)
	} else {
		s.logger.Info("shift assignment rejected",
			zap.String("employee_id", employeeID),
			zap.String("shift_id", shiftID),
			zap.Stringer("outcome", outcome),
		)
	}

	return outcome, nil
}

func (s *Service) validateAndCommit(ctx context.Context, employeeID, shiftID string) (Outcome, float64, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return OutcomeEmployeeNotFound, 0, nil
		}
		return OutcomeRepositoryError, 0, fmt.Errorf("find employee %s: %w", employeeID, err)
	}

	target, err := s.shifts.FindByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return OutcomeShiftNotFound, 0, nil
		}
		return OutcomeRepositoryError, 0, fmt.Errorf("find shift %s: %w", shiftID, err)
	}

	if _, err := s.repo.Find(ctx, employeeID, shiftID); err == nil {
		return OutcomeAlreadyAssigned, 0, nil
	} else if !errors.Is(err, ErrAssignmentNotFound) {
		return OutcomeRepositoryError, 0, fmt.Errorf("find assignment: %w", err)
	}

	targetMinutes, err := target.Minutes()
	if err != nil {
		return OutcomeRepositoryError, 0, fmt.Errorf("shift %s: %w", target.ID, err)
	}
	if targetMinutes <= 0 {
		return OutcomeInvalidShiftTime, 0, nil
	}

	assignedMinutes, err := s.dailyMinutes(ctx, employeeID, target.Date)
	if err != nil {
		return OutcomeRepositoryError, 0, err
	}

	maxHours, err := s.policy.MaxDailyHours(ctx)
	if err != nil {
		return OutcomeRepositoryError, 0, fmt.Errorf("read max daily hours: %w", err)
	}
	if !(maxHours > 0) {
		return OutcomeRepositoryError, 0, fmt.Errorf("max daily hours %v: %w", maxHours, ErrInvalidMaxDailyHours)
	}

	totalMinutes := assignedMinutes + targetMinutes
	if float64(totalMinutes) > maxHours*60 {
		return OutcomeDailyLimitExceeded, 0, nil
	}

	if err := s.repo.Append(ctx, &Assignment{
		EmployeeID: employeeID,
		ShiftID:    shiftID,
		AssignedAt: s.clock.Now(),
	}); err != nil {
		if errors.Is(err, ErrAlreadyAssigned) {
			return OutcomeAlreadyAssigned, 0, nil
		}
		return OutcomeRepositoryError, 0, fmt.Errorf("append assignment: %w", err)
	}

	return OutcomeSuccess, float64(totalMinutes) / 60, nil
}

// dailyMinutes は社員に割り当て済みのシフトのうち、date と同じ日のものの合計分数を返します。
func (s *Service) dailyMinutes(ctx context.Context, employeeID, date string) (int, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list assignments: %w", err)
	}

	total := 0
	for _, a := range all {
		if a.EmployeeID != employeeID {
			continue
		}
		sh, err := s.shifts.FindByID(ctx, a.ShiftID)
		if err != nil {
			return 0, fmt.Errorf("resolve assigned shift %s: %w", a.ShiftID, err)
		}
		if sh.Date != date {
			continue
		}
		minutes, err := sh.Minutes()
		if err != nil {
			return 0, fmt.Errorf("assigned shift %s: %w", sh.ID, err)
		}
		if minutes <= 0 {
			return 0, fmt.Errorf("assigned shift %s: %w", sh.ID, shift.ErrInvalidTimeRange)
		}
		total += minutes
	}
	return total, nil
}

func asRepositoryError(err error) error {
	if err == nil || errors.Is(err, ErrRepository) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRepository, err)
}
