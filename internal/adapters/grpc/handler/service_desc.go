package handler

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName は EmployeeService の完全修飾名です。
const ServiceName = "employee.v1.EmployeeService"

// EmployeeServiceServer は EmployeeService のサーバー側インターフェースです。
type EmployeeServiceServer interface {
	CreateEmployee(context.Context, *CreateEmployeeRequest) (*CreateEmployeeResponse, error)
	GetEmployee(context.Context, *GetEmployeeRequest) (*GetEmployeeResponse, error)
	ReplaceEmployee(context.Context, *ReplaceEmployeeRequest) (*ReplaceEmployeeResponse, error)
	GetReportingStructure(context.Context, *GetReportingStructureRequest) (*GetReportingStructureResponse, error)
	CreateCompensation(context.Context, *CreateCompensationRequest) (*CreateCompensationResponse, error)
	ListCompensations(context.Context, *ListCompensationsRequest) (*ListCompensationsResponse, error)
	GetCurrentCompensation(context.Context, *GetCurrentCompensationRequest) (*GetCurrentCompensationResponse, error)
}

// RegisterEmployeeServiceServer は srv を s に登録します。
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&EmployeeServiceDesc, srv)
}

// EmployeeServiceDesc は EmployeeService のサービス記述子です。メッセージは json コーデックで送受信します。
var EmployeeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateEmployee", Handler: _EmployeeService_CreateEmployee_Handler},
		{MethodName: "GetEmployee", Handler: _EmployeeService_GetEmployee_Handler},
		{MethodName: "ReplaceEmployee", Handler: _EmployeeService_ReplaceEmployee_Handler},
		{MethodName: "GetReportingStructure", Handler: _EmployeeService_GetReportingStructure_Handler},
		{MethodName: "CreateCompensation", Handler: _EmployeeService_CreateCompensation_Handler},
		{MethodName: "ListCompensations", Handler: _EmployeeService_ListCompensations_Handler},
		{MethodName: "GetCurrentCompensation", Handler: _EmployeeService_GetCurrentCompensation_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/employee.proto",
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func _EmployeeService_CreateEmployee_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateEmployeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).CreateEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("CreateEmployee")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).CreateEmployee(ctx, req.(*CreateEmployeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_GetEmployee_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetEmployeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).GetEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("GetEmployee")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).GetEmployee(ctx, req.(*GetEmployeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_ReplaceEmployee_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReplaceEmployeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).ReplaceEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("ReplaceEmployee")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).ReplaceEmployee(ctx, req.(*ReplaceEmployeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_GetReportingStructure_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetReportingStructureRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).GetReportingStructure(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("GetReportingStructure")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).GetReportingStructure(ctx, req.(*GetReportingStructureRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_CreateCompensation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateCompensationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).CreateCompensation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("CreateCompensation")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).CreateCompensation(ctx, req.(*CreateCompensationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_ListCompensations_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListCompensationsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).ListCompensations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("ListCompensations")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).ListCompensations(ctx, req.(*ListCompensationsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _EmployeeService_GetCurrentCompensation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCurrentCompensationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).GetCurrentCompensation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod("GetCurrentCompensation")}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EmployeeServiceServer).GetCurrentCompensation(ctx, req.(*GetCurrentCompensationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
