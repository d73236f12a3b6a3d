package assignment

import (
	"context"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// Repository は割り当て永続化の抽象です。追記のみで更新・削除はありません。
type Repository interface {
	// Find は組が存在しない場合 ErrAssignmentNotFound を返します。
	Find(ctx context.Context, employeeID, shiftID string) (*Assignment, error)
	ListAll(ctx context.Context) ([]*Assignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Assignment, error)
	// Append は既に同じ組がある場合 ErrAlreadyAssigned を返します。
	Append(ctx context.Context, a *Assignment) error
}

// EmployeeFinder は社員の存在確認に使う読み取り専用の契約です。
type EmployeeFinder interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

// ShiftFinder はシフト定義の参照に使う読み取り専用の契約です。
type ShiftFinder interface {
	FindByID(ctx context.Context, id string) (*shift.Shift, error)
}

// PolicySource は 1 日あたりの上限勤務時間を提供します。検証のたびに呼ばれ、キャッシュしません。
type PolicySource interface {
	MaxDailyHours(ctx context.Context) (float64, error)
}

// PolicyStore は更新可能な PolicySource です。
type PolicyStore interface {
	PolicySource
	SetMaxDailyHours(ctx context.Context, hours float64) error
}

// StaticPolicy は固定値の PolicySource です。
type StaticPolicy float64

// MaxDailyHours implements PolicySource.
func (p StaticPolicy) MaxDailyHours(context.Context) (float64, error) {
	return float64(p), nil
}
