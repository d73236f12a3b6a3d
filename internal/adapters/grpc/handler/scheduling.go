package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/shift-scheduler/internal/adapters/grpc/schedulingrpc"
	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

// SchedulingGrpcHandler は SchedulingService の gRPC 実装です。
type SchedulingGrpcHandler struct {
	employees   employee.UseCase
	shifts      shift.UseCase
	assignments assignment.UseCase
	schedulingrpc.UnimplementedSchedulingServiceServer
}

// NewSchedulingGrpcHandler は SchedulingGrpcHandler を生成します。
func NewSchedulingGrpcHandler(employees employee.UseCase, shifts shift.UseCase, assignments assignment.UseCase) *SchedulingGrpcHandler {
	return &SchedulingGrpcHandler{employees: employees, shifts: shifts, assignments: assignments}
}

var _ schedulingrpc.SchedulingServiceServer = (*SchedulingGrpcHandler)(nil)

// CreateEmployee は社員を作成します。
func (h *SchedulingGrpcHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, _, err := stringField(req, "name")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	phone, _, err := stringField(req, "phone")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	created, err := h.employees.CreateEmployee(ctx, employee.CreateEmployeeInput{Name: name, Phone: phone})
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"employee": employeeValue(created)})
}

// GetEmployee は社員を取得します。
func (h *SchedulingGrpcHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, "id")
	if err != nil {
		return nil, err
	}

	found, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"employee": employeeValue(found)})
}

// ListEmployees は社員一覧を返します。
func (h *SchedulingGrpcHandler) ListEmployees(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.employees.ListEmployees(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	employees := make([]any, 0, len(list))
	for _, e := range list {
		employees = append(employees, employeeValue(e))
	}
	return respond(map[string]any{"employees": employees})
}

// UpdateEmployee は指定されたフィールドのみ更新します。
func (h *SchedulingGrpcHandler) UpdateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, "id")
	if err != nil {
		return nil, err
	}

	in := employee.UpdateEmployeeInput{ID: id}
	if name, ok, err := stringField(req, "name"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if ok {
		in.Name = &name
	}
	if phone, ok, err := stringField(req, "phone"); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	} else if ok {
		in.Phone = &phone
	}

	updated, err := h.employees.UpdateEmployee(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"employee": employeeValue(updated)})
}

// CreateShift はシフトを作成します。
func (h *SchedulingGrpcHandler) CreateShift(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in shift.CreateShiftInput
	for name, dst := range map[string]*string{
		"id":         &in.ID,
		"date":       &in.Date,
		"start_time": &in.StartTime,
		"end_time":   &in.EndTime,
	} {
		v, _, err := stringField(req, name)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		*dst = v
	}

	created, err := h.shifts.CreateShift(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"shift": shiftValue(created)})
}

// GetShift はシフトを取得します。
func (h *SchedulingGrpcHandler) GetShift(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, "id")
	if err != nil {
		return nil, err
	}

	found, err := h.shifts.GetShift(ctx, shift.GetShiftInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"shift": shiftValue(found)})
}

// ListShifts はシフト一覧を返します。
func (h *SchedulingGrpcHandler) ListShifts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.shifts.ListShifts(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	shifts := make([]any, 0, len(list))
	for _, s := range list {
		shifts = append(shifts, shiftValue(s))
	}
	return respond(map[string]any{"shifts": shifts})
}

// AssignShift は社員をシフトに割り当てます。
// 業務上の拒否は outcome を設定した通常のレスポンスで返し、リポジトリ障害のみ Internal になります。
func (h *SchedulingGrpcHandler) AssignShift(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	employeeID, err := requiredString(req, "employee_id")
	if err != nil {
		return nil, err
	}
	shiftID, err := requiredString(req, "shift_id")
	if err != nil {
		return nil, err
	}

	outcome, err := h.assignments.AssignShift(ctx, assignment.AssignShiftInput{EmployeeID: employeeID, ShiftID: shiftID})
	if err != nil {
		if errors.Is(err, assignment.ErrRepository) {
			return nil, status.Error(codes.Internal, outcome.Message())
		}
		return nil, toStatusError(err)
	}
	return respond(outcomeValue(outcome))
}

// GetEmployeeSchedule は社員の勤務予定を返します。
func (h *SchedulingGrpcHandler) GetEmployeeSchedule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	employeeID, err := requiredString(req, "employee_id")
	if err != nil {
		return nil, err
	}

	schedule, err := h.assignments.GetEmployeeSchedule(ctx, assignment.GetEmployeeScheduleInput{EmployeeID: employeeID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(scheduleValue(schedule))
}

// GetPolicy は現在の上限勤務時間を返します。
func (h *SchedulingGrpcHandler) GetPolicy(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	policy, err := h.assignments.GetPolicy(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"max_daily_hours": policy.MaxDailyHours})
}

// SetPolicy は上限勤務時間を更新します。
func (h *SchedulingGrpcHandler) SetPolicy(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	hours, ok, err := numberField(req, "max_daily_hours")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "max_daily_hours is required")
	}

	policy, err := h.assignments.SetPolicy(ctx, assignment.SetPolicyInput{MaxDailyHours: hours})
	if err != nil {
		return nil, toStatusError(err)
	}
	return respond(map[string]any{"max_daily_hours": policy.MaxDailyHours})
}

func requiredString(req *structpb.Struct, name string) (string, error) {
	v, ok, err := stringField(req, name)
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	if !ok || v == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return v, nil
}

func respond(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}
