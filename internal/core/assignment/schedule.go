package assignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// morningCutoffHour より前に始まるシフトを午前シフトとして扱います。
const morningCutoffHour = 12

// GetEmployeeScheduleInput は勤務予定取得時の入力です。
type GetEmployeeScheduleInput struct {
	EmployeeID string
}

// GetEmployeeSchedule は社員に割り当てられたシフトを日付・開始時刻順で返します。
func (s *Service) GetEmployeeSchedule(ctx context.Context, in GetEmployeeScheduleInput) (*Schedule, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("employee_id: %w", ErrInvalidEmployeeID)
	}

	var schedule *Schedule
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.employees.FindByID(txCtx, employeeID)
		if err != nil {
			return err
		}

		assignments, err := s.repo.ListByEmployee(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("list assignments: %w", err)
		}

		shifts := make([]*shift.Shift, 0, len(assignments))
		for _, a := range assignments {
			sh, err := s.shifts.FindByID(txCtx, a.ShiftID)
			if err != nil {
				return fmt.Errorf("resolve assigned shift %s: %w", a.ShiftID, err)
			}
			shifts = append(shifts, sh)
		}
		shift.SortChronologically(shifts)

		entries := make([]ScheduleEntry, 0, len(shifts))
		for _, sh := range shifts {
			hours, err := sh.Hours()
			if err != nil {
				return fmt.Errorf("shift %s: %w", sh.ID, err)
			}
			start, err := shift.ParseClock(sh.StartTime)
			if err != nil {
				return fmt.Errorf("shift %s: %w", sh.ID, err)
			}
			entries = append(entries, ScheduleEntry{
				Shift:   sh,
				Hours:   hours,
				Morning: start.Hour < morningCutoffHour,
			})
		}

		schedule = &Schedule{Employee: emp, Entries: entries}
		return nil
	}); err != nil {
		return nil, err
	}

	return schedule, nil
}
