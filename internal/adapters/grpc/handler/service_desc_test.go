package handler

import (
	"context"
	"net"
	"testing"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/adapters/grpc/codec"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func dialBufconn(t *testing.T, srv EmployeeServiceServer, opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterEmployeeServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codec.Name)),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestEmployeeServiceDesc_RoundTrip(t *testing.T) {
	t.Parallel()

	h, emp, _, _ := newTestHandler()
	emp.getOut = &employee.Employee{ID: "emp-1", FirstName: "John", LastName: "Lennon", DirectReports: []string{"emp-2"}}
	conn := dialBufconn(t, h)

	resp := new(GetEmployeeResponse)
	if err := conn.Invoke(context.Background(), fullMethod("GetEmployee"), &GetEmployeeRequest{ID: "emp-1"}, resp); err != nil {
		t.Fatalf("invoke: %v", err)
	}

	if emp.getInput.ID != "emp-1" {
		t.Fatalf("unexpected input: %+v", emp.getInput)
	}
	if resp.Employee == nil || resp.Employee.LastName != "Lennon" || len(resp.Employee.DirectReports) != 1 {
		t.Fatalf("unexpected response: %+v", resp.Employee)
	}
}

func TestEmployeeServiceDesc_StatusPropagates(t *testing.T) {
	t.Parallel()

	h, emp, _, _ := newTestHandler()
	emp.getErr = employee.ErrEmployeeNotFound
	conn := dialBufconn(t, h)

	err := conn.Invoke(context.Background(), fullMethod("GetEmployee"), &GetEmployeeRequest{ID: "missing"}, new(GetEmployeeResponse))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestEmployeeServiceDesc_InterceptorSeesFullMethod(t *testing.T) {
	t.Parallel()

	var seen string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		seen = info.FullMethod
		return next(ctx, req)
	}

	h, _, rep, _ := newTestHandler()
	rep.err = context.Canceled
	conn := dialBufconn(t, h, grpc.UnaryInterceptor(interceptor))

	_ = conn.Invoke(context.Background(), fullMethod("GetReportingStructure"), &GetReportingStructureRequest{EmployeeID: "emp-1"}, new(GetReportingStructureResponse))
	if seen != "/employee.v1.EmployeeService/GetReportingStructure" {
		t.Fatalf("unexpected full method: %q", seen)
	}
}
