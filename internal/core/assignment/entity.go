package assignment

import (
	"strconv"
	"time"

	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// Assignment は社員とシフトの割り当てです。(EmployeeID, ShiftID) の組で一意になります。
type Assignment struct {
	EmployeeID string
	ShiftID    string
	AssignedAt time.Time
}

// Outcome は割り当て要求の結果です。
// 業務上の拒否は error ではなく Outcome で返します。
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	OutcomeSuccess
	OutcomeEmployeeNotFound
	OutcomeShiftNotFound
	OutcomeAlreadyAssigned
	OutcomeDailyLimitExceeded
	OutcomeInvalidShiftTime
	OutcomeRepositoryError
)

var outcomeNames = map[Outcome]string{
	OutcomeUnspecified:        "Unspecified",
	OutcomeSuccess:            "Success",
	OutcomeEmployeeNotFound:   "EmployeeNotFound",
	OutcomeShiftNotFound:      "ShiftNotFound",
	OutcomeAlreadyAssigned:    "AlreadyAssigned",
	OutcomeDailyLimitExceeded: "DailyLimitExceeded",
	OutcomeInvalidShiftTime:   "InvalidShiftTime",
	OutcomeRepositoryError:    "RepositoryError",
}

var outcomeMessages = map[Outcome]string{
	OutcomeSuccess:            "shift assigned",
	OutcomeEmployeeNotFound:   "employee does not exist",
	OutcomeShiftNotFound:      "shift does not exist",
	OutcomeAlreadyAssigned:    "employee is already assigned to this shift",
	OutcomeDailyLimitExceeded: "assignment would exceed the maximum daily hours",
	OutcomeInvalidShiftTime:   "shift end time must be after its start time",
	OutcomeRepositoryError:    "storage error",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// Message は利用者向けの説明文を返します。
func (o Outcome) Message() string {
	return outcomeMessages[o]
}

// Err は拒否結果に対応する sentinel error を返します。成功時は nil です。
func (o Outcome) Err() error {
	switch o {
	case OutcomeSuccess:
		return nil
	case OutcomeEmployeeNotFound:
		return ErrEmployeeNotFound
	case OutcomeShiftNotFound:
		return ErrShiftNotFound
	case OutcomeAlreadyAssigned:
		return ErrAlreadyAssigned
	case OutcomeDailyLimitExceeded:
		return ErrDailyLimitExceeded
	case OutcomeInvalidShiftTime:
		return ErrInvalidShiftTime
	case OutcomeRepositoryError:
		return ErrRepository
	default:
		return ErrUnknownOutcome
	}
}

// DefaultMaxDailyHours は新規に作成するデータストアの上限勤務時間です。
const DefaultMaxDailyHours = 9.0

// Policy は割り当て制約の設定です。
type Policy struct {
	MaxDailyHours float64
}

// ScheduleEntry は勤務予定の 1 行です。
type ScheduleEntry struct {
	Shift   *shift.Shift
	Hours   float64
	Morning bool
}

// Schedule は社員 1 人分の勤務予定です。Entries は日付・開始時刻順です。
type Schedule struct {
	Employee *employee.Employee
	Entries  []ScheduleEntry
}

// HoursByDate は日付ごとの合計勤務時間を返します。
func (s *Schedule) HoursByDate() map[string]float64 {
	totals := make(map[string]float64, len(s.Entries))
	for _, entry := range s.Entries {
		totals[entry.Shift.Date] += entry.Hours
	}
	return totals
}
