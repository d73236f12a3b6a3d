// Package schedulingrpc は SchedulingService の gRPC サービス定義です。
//
// メッセージはすべて google.protobuf.Struct で、フィールド名は snake_case です。
package schedulingrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName は完全修飾サービス名です。
const ServiceName = "shiftscheduler.v1.SchedulingService"

// メソッド名
const (
	MethodCreateEmployee      = "CreateEmployee"
	MethodGetEmployee         = "GetEmployee"
	MethodListEmployees       = "ListEmployees"
	MethodUpdateEmployee      = "UpdateEmployee"
	MethodCreateShift         = "CreateShift"
	MethodGetShift            = "GetShift"
	MethodListShifts          = "ListShifts"
	MethodAssignShift         = "AssignShift"
	MethodGetEmployeeSchedule = "GetEmployeeSchedule"
	MethodGetPolicy           = "GetPolicy"
	MethodSetPolicy           = "SetPolicy"
)

// FullMethod は "/service/method" 形式のメソッド名を返します。
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// SchedulingServiceServer はサーバー側の実装が満たすインターフェースです。
type SchedulingServiceServer interface {
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListShifts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AssignShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployeeSchedule(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPolicy(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetPolicy(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedSchedulingServiceServer は全メソッドで Unimplemented を返します。
// 実装側に埋め込むと、後から追加されたメソッドでもコンパイルが通ります。
type UnimplementedSchedulingServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedSchedulingServiceServer) CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCreateEmployee)
}

func (UnimplementedSchedulingServiceServer) GetEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetEmployee)
}

func (UnimplementedSchedulingServiceServer) ListEmployees(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListEmployees)
}

func (UnimplementedSchedulingServiceServer) UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodUpdateEmployee)
}

func (UnimplementedSchedulingServiceServer) CreateShift(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCreateShift)
}

func (UnimplementedSchedulingServiceServer) GetShift(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetShift)
}

func (UnimplementedSchedulingServiceServer) ListShifts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListShifts)
}

func (UnimplementedSchedulingServiceServer) AssignShift(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodAssignShift)
}

func (UnimplementedSchedulingServiceServer) GetEmployeeSchedule(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetEmployeeSchedule)
}

func (UnimplementedSchedulingServiceServer) GetPolicy(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetPolicy)
}

func (UnimplementedSchedulingServiceServer) SetPolicy(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodSetPolicy)
}

type unaryCall func(SchedulingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SchedulingServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(SchedulingServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc は SchedulingService の grpc.ServiceDesc です。
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SchedulingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCreateEmployee, SchedulingServiceServer.CreateEmployee),
		unary(MethodGetEmployee, SchedulingServiceServer.GetEmployee),
		unary(MethodListEmployees, SchedulingServiceServer.ListEmployees),
		unary(MethodUpdateEmployee, SchedulingServiceServer.UpdateEmployee),
		unary(MethodCreateShift, SchedulingServiceServer.CreateShift),
		unary(MethodGetShift, SchedulingServiceServer.GetShift),
		unary(MethodListShifts, SchedulingServiceServer.ListShifts),
		unary(MethodAssignShift, SchedulingServiceServer.AssignShift),
		unary(MethodGetEmployeeSchedule, SchedulingServiceServer.GetEmployeeSchedule),
		unary(MethodGetPolicy, SchedulingServiceServer.GetPolicy),
		unary(MethodSetPolicy, SchedulingServiceServer.SetPolicy),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shiftscheduler/v1/scheduling.proto",
}

// RegisterSchedulingServiceServer は srv を s に登録します。
func RegisterSchedulingServiceServer(s grpc.ServiceRegistrar, srv SchedulingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
