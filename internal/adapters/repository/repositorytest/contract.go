// Package repositorytest は各ストレージ実装が満たすべき振る舞いを共通のテストとして提供します。
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// TransactionManager は各実装のトランザクション制御です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

// Backend はテスト対象のリポジトリ一式です。Policy の初期値は 9 時間である必要があります。
type Backend struct {
	Employees   employee.Repository
	Shifts      shift.Repository
	Assignments assignment.Repository
	Policy      assignment.PolicyStore
	Tx          TransactionManager
}

// Run は newBackend が返す空のストレージに対して共通の振る舞いを検証します。
func Run(t *testing.T, newBackend func(t *testing.T) Backend) {
	t.Helper()

	t.Run("employee ids are allocated sequentially", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		first, err := b.Employees.Create(ctx, &employee.Employee{Name: "Taro", Phone: "0000-0001"})
		require.NoError(t, err)
		second, err := b.Employees.Create(ctx, &employee.Employee{Name: "Hanako", Phone: "0000-0002"})
		require.NoError(t, err)

		assert.Equal(t, "E001", first.ID)
		assert.Equal(t, "E002", second.ID)

		list, err := b.Employees.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Hanako", list[1].Name)
	})

	t.Run("employee update and lookup", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		created, err := b.Employees.Create(ctx, &employee.Employee{Name: "Taro", Phone: "0000-0001"})
		require.NoError(t, err)

		_, err = b.Employees.Update(ctx, &employee.Employee{ID: created.ID, Name: "Jiro", Phone: "1111-2222"})
		require.NoError(t, err)

		found, err := b.Employees.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, &employee.Employee{ID: created.ID, Name: "Jiro", Phone: "1111-2222"}, found)

		_, err = b.Employees.FindByID(ctx, "E999")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		_, err = b.Employees.Update(ctx, &employee.Employee{ID: "E999", Name: "X", Phone: "0000-0000"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("shifts", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		for _, s := range []*shift.Shift{
			{ID: "S3", Date: "2024-01-02", StartTime: "09:00", EndTime: "12:00"},
			{ID: "S2", Date: "2024-01-01", StartTime: "13:00", EndTime: "17:00"},
			{ID: "S1", Date: "2024-01-01", StartTime: "08:00", EndTime: "12:00"},
		} {
			_, err := b.Shifts.Create(ctx, s)
			require.NoError(t, err)
		}

		_, err := b.Shifts.Create(ctx, &shift.Shift{ID: "S1", Date: "2024-01-05", StartTime: "08:00", EndTime: "09:00"})
		assert.ErrorIs(t, err, shift.ErrIDAlreadyExists)

		found, err := b.Shifts.FindByID(ctx, "S2")
		require.NoError(t, err)
		assert.Equal(t, "13:00", found.StartTime)

		_, err = b.Shifts.FindByID(ctx, "S404")
		assert.ErrorIs(t, err, shift.ErrShiftNotFound)

		list, err := b.Shifts.List(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, s := range list {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []string{"S1", "S2", "S3"}, ids)
	})

	t.Run("assignments", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		seed(t, b)

		_, err := b.Assignments.Find(ctx, "E001", "S1")
		require.ErrorIs(t, err, assignment.ErrAssignmentNotFound)

		at := time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC)
		require.NoError(t, b.Assignments.Append(ctx, &assignment.Assignment{EmployeeID: "E001", ShiftID: "S2", AssignedAt: at}))
		require.NoError(t, b.Assignments.Append(ctx, &assignment.Assignment{EmployeeID: "E002", ShiftID: "S1", AssignedAt: at}))
		require.NoError(t, b.Assignments.Append(ctx, &assignment.Assignment{EmployeeID: "E001", ShiftID: "S1", AssignedAt: at}))

		err = b.Assignments.Append(ctx, &assignment.Assignment{EmployeeID: "E001", ShiftID: "S1", AssignedAt: at})
		assert.ErrorIs(t, err, assignment.ErrAlreadyAssigned)

		found, err := b.Assignments.Find(ctx, "E001", "S1")
		require.NoError(t, err)
		assert.True(t, found.AssignedAt.Equal(at), "assigned_at round trip: %v", found.AssignedAt)

		all, err := b.Assignments.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mine, err := b.Assignments.ListByEmployee(ctx, "E001")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "S2", mine[0].ShiftID)
		assert.Equal(t, "S1", mine[1].ShiftID)
	})

	t.Run("policy", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()

		hours, err := b.Policy.MaxDailyHours(ctx)
		require.NoError(t, err)
		assert.Equal(t, 9.0, hours)

		require.NoError(t, b.Policy.SetMaxDailyHours(ctx, 7.5))
		hours, err = b.Policy.MaxDailyHours(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7.5, hours)
	})

	t.Run("engine enforces the daily cap", func(t *testing.T) {
		b := newBackend(t)
		ctx := context.Background()
		seed(t, b)

		svc := assignment.NewService(b.Employees, b.Shifts, b.Assignments, b.Policy,
			assignment.WithTransactionManager(b.Tx))

		// S1 は 4 時間、S2 は 4 時間、S4 は同日の 2 時間。上限 9 時間。
		for _, tc := range []struct {
			shiftID string
			want    assignment.Outcome
		}{
			{"S1", assignment.OutcomeSuccess},
			{"S1", assignment.OutcomeAlreadyAssigned},
			{"S2", assignment.OutcomeSuccess},
			{"S4", assignment.OutcomeDailyLimitExceeded},
			{"S3", assignment.OutcomeSuccess},
			{"S404", assignment.OutcomeShiftNotFound},
		} {
			got, err := svc.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: "E001", ShiftID: tc.shiftID})
			require.NoError(t, err, tc.shiftID)
			assert.Equal(t, tc.want, got, tc.shiftID)
		}

		got, err := svc.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: "E404", ShiftID: "S1"})
		require.NoError(t, err)
		assert.Equal(t, assignment.OutcomeEmployeeNotFound, got)

		require.NoError(t, b.Policy.SetMaxDailyHours(ctx, 10))
		got, err = svc.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: "E001", ShiftID: "S4"})
		require.NoError(t, err)
		assert.Equal(t, assignment.OutcomeSuccess, got)

		schedule, err := svc.GetEmployeeSchedule(ctx, assignment.GetEmployeeScheduleInput{EmployeeID: "E001"})
		require.NoError(t, err)
		require.Len(t, schedule.Entries, 4)
		assert.Equal(t, "S1", schedule.Entries[0].Shift.ID)
		assert.Equal(t, "S3", schedule.Entries[3].Shift.ID)
	})
}

func seed(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	for _, name := range []string{"Taro", "Hanako"} {
		_, err := b.Employees.Create(ctx, &employee.Employee{Name: name, Phone: "0000-0000"})
		require.NoError(t, err)
	}
	for _, s := range []*shift.Shift{
		{ID: "S1", Date: "2024-01-01", StartTime: "08:00", EndTime: "12:00"},
		{ID: "S2", Date: "2024-01-01", StartTime: "13:00", EndTime: "17:00"},
		{ID: "S3", Date: "2024-01-02", StartTime: "08:00", EndTime: "17:00"},
		{ID: "S4", Date: "2024-01-01", StartTime: "18:00", EndTime: "20:00"},
	} {
		_, err := b.Shifts.Create(ctx, s)
		require.NoError(t, err)
	}
}
