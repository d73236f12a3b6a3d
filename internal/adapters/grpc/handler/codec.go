package handler

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// stringField は文字列フィールドを取り出します。存在しない場合 present は false です。
func stringField(req *structpb.Struct, name string) (value string, present bool, err error) {
	v, ok := req.GetFields()[name]
	if !ok || v == nil {
		return "", false, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return "", false, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", true, fmt.Errorf("%s must be a string", name)
	}
	return s.StringValue, true, nil
}

func numberField(req *structpb.Struct, name string) (value float64, present bool, err error) {
	v, ok := req.GetFields()[name]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, true, fmt.Errorf("%s must be a number", name)
	}
	return n.NumberValue, true, nil
}

func employeeValue(e *employee.Employee) map[string]any {
	return map[string]any{
		"id":    e.ID,
		"name":  e.Name,
		"phone": e.Phone,
	}
}

func shiftValue(s *shift.Shift) map[string]any {
	v := map[string]any{
		"id":         s.ID,
		"date":       s.Date,
		"start_time": s.StartTime,
		"end_time":   s.EndTime,
	}
	if hours, err := s.Hours(); err == nil {
		v["hours"] = hours
	}
	return v
}

func scheduleValue(s *assignment.Schedule) map[string]any {
	entries := make([]any, 0, len(s.Entries))
	for _, entry := range s.Entries {
		v := shiftValue(entry.Shift)
		v["hours"] = entry.Hours
		v["morning"] = entry.Morning
		entries = append(entries, v)
	}

	byDate := make(map[string]any)
	for date, hours := range s.HoursByDate() {
		byDate[date] = hours
	}

	return map[string]any{
		"employee":      employeeValue(s.Employee),
		"entries":       entries,
		"hours_by_date": byDate,
	}
}

func outcomeValue(o assignment.Outcome) map[string]any {
	return map[string]any{
		"outcome": o.String(),
		"success": o == assignment.OutcomeSuccess,
		"message": o.Message(),
	}
}
