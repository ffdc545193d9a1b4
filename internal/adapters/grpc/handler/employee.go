package handler

import (
	"context"
	"time"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/compensation"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/reporting"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const dateLayout = time.DateOnly

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	employees     employee.UseCase
	reporting     reporting.UseCase
	compensations compensation.UseCase
}

var _ EmployeeServiceServer = (*EmployeeGrpcHandler)(nil)

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(employees employee.UseCase, reports reporting.UseCase, compensations compensation.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{employees: employees, reporting: reports, compensations: compensations}
}

// CreateEmployee は社員を登録します。employee が省略された場合は空の応答を返します。
func (h *EmployeeGrpcHandler) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*CreateEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := h.employees.CreateEmployee(ctx, toDraft(req.Employee))
	if err != nil {
		return nil, toStatusError(err)
	}

	return &CreateEmployeeResponse{Employee: toWireEmployee(created)}, nil
}

// GetEmployee は ID で社員を取得します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *GetEmployeeRequest) (*GetEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetEmployeeResponse{Employee: toWireEmployee(found)}, nil
}

// ReplaceEmployee は社員の内容を丸ごと置き換えます。
func (h *EmployeeGrpcHandler) ReplaceEmployee(ctx context.Context, req *ReplaceEmployeeRequest) (*ReplaceEmployeeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	replaced, err := h.employees.ReplaceEmployee(ctx, employee.ReplaceEmployeeInput{
		ID:    req.ID,
		Draft: toDraft(req.Employee),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &ReplaceEmployeeResponse{Employee: toWireEmployee(replaced)}, nil
}

// GetReportingStructure は社員の配下人数を返します。
func (h *EmployeeGrpcHandler) GetReportingStructure(ctx context.Context, req *GetReportingStructureRequest) (*GetReportingStructureResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	structure, err := h.reporting.ComputeReportingStructure(ctx, reporting.ComputeReportingStructureInput{EmployeeID: req.EmployeeID})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetReportingStructureResponse{
		Employee:        toWireEmployee(structure.Employee),
		NumberOfReports: structure.NumberOfReports,
	}, nil
}

// CreateCompensation は給与を登録します。
func (h *EmployeeGrpcHandler) CreateCompensation(ctx context.Context, req *CreateCompensationRequest) (*CreateCompensationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	salary, err := decimal.NewFromString(req.Salary)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid salary: %q", req.Salary)
	}

	effectiveDate, err := parseDateValue(req.EffectiveDate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid effective_date: %q", req.EffectiveDate)
	}

	created, err := h.compensations.RecordCompensation(ctx, compensation.RecordCompensationInput{
		EmployeeID:    req.EmployeeID,
		Salary:        salary,
		EffectiveDate: effectiveDate,
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return &CreateCompensationResponse{Compensation: toWireCompensation(created)}, nil
}

// ListCompensations は社員の給与履歴を返します。
func (h *EmployeeGrpcHandler) ListCompensations(ctx context.Context, req *ListCompensationsRequest) (*ListCompensationsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := compensation.ListCompensationsInput{EmployeeID: req.EmployeeID}
	if req.EffectiveDate != nil {
		d, err := parseDateValue(*req.EffectiveDate)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid effective_date: %q", *req.EffectiveDate)
		}
		in.EffectiveDate = &d
	}

	found, err := h.compensations.ListCompensations(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp := &ListCompensationsResponse{Compensations: make([]*Compensation, 0, len(found))}
	for _, c := range found {
		resp.Compensations = append(resp.Compensations, toWireCompensation(c))
	}
	return resp, nil
}

// GetCurrentCompensation は基準日時点で有効な給与を返します。
func (h *EmployeeGrpcHandler) GetCurrentCompensation(ctx context.Context, req *GetCurrentCompensationRequest) (*GetCurrentCompensationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := compensation.GetCurrentCompensationInput{EmployeeID: req.EmployeeID}
	if req.AsOf != nil {
		d, err := parseDateValue(*req.AsOf)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid as_of: %q", *req.AsOf)
		}
		in.AsOf = d
	}

	current, err := h.compensations.GetCurrentCompensation(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &GetCurrentCompensationResponse{Compensation: toWireCompensation(current)}, nil
}

func toDraft(d *EmployeeDraft) *employee.Draft {
	if d == nil {
		return nil
	}
	return &employee.Draft{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Position:      d.Position,
		Department:    d.Department,
		DirectReports: append([]string(nil), d.DirectReports...),
	}
}

func toWireEmployee(e *employee.Employee) *Employee {
	if e == nil {
		return nil
	}
	reports := make([]string, len(e.DirectReports))
	copy(reports, e.DirectReports)
	return &Employee{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Position:      e.Position,
		Department:    e.Department,
		DirectReports: reports,
	}
}

func toWireCompensation(c *compensation.Compensation) *Compensation {
	if c == nil {
		return nil
	}
	return &Compensation{
		ID:            c.ID,
		EmployeeID:    c.EmployeeID,
		Employee:      toWireEmployee(c.Employee),
		Salary:        c.Salary.StringFixed(2),
		EffectiveDate: c.EffectiveDate.Format(dateLayout),
		CreatedAt:     c.CreatedAt.UTC(),
	}
}

func parseDateValue(v string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, v, time.UTC)
}
