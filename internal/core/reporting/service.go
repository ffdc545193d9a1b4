package reporting

import (
	"context"
	"errors"
	"fmt"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/rs/zerolog"
)

// EmployeeReader は社員の参照手段です。employee.Service が満たします。
type EmployeeReader interface {
	GetEmployee(ctx context.Context, in employee.GetEmployeeInput) (*employee.Employee, error)
}

// TransactionManager は走査全体を 1 つの読み取りトランザクションで包むための抽象です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// UseCase は報告ライン集計の公開インターフェースです。
type UseCase interface {
	ComputeReportingStructure(ctx context.Context, in ComputeReportingStructureInput) (*Structure, error)
}

// Service は報告ラインの集計を行います。
type Service struct {
	employees EmployeeReader
	tx        TransactionManager
	logger    *zerolog.Logger
}

// NewService は Service を生成します。
func NewService(employees EmployeeReader, tx TransactionManager, logger *zerolog.Logger) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{employees: employees, tx: tx, logger: logger}
}

// ComputeReportingStructureInput は集計対象の社員を指定します。
type ComputeReportingStructureInput struct {
	EmployeeID string
}

// ComputeReportingStructure は指定社員の配下 (直属・間接の部下すべて) の人数を数えます。
// 再帰ではなく作業スタックで走査し、同じ社員へ 2 度到達した場合は ErrInvalidHierarchy を返します。
func (s *Service) ComputeReportingStructure(ctx context.Context, in ComputeReportingStructureInput) (*Structure, error) {
	var result *Structure
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		root, err := s.employees.GetEmployee(txCtx, employee.GetEmployeeInput{ID: in.EmployeeID})
		if err != nil {
			return err
		}

		count, err := s.countReports(txCtx, root)
		if err != nil {
			return err
		}

		result = &Structure{Employee: root, NumberOfReports: count}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) countReports(ctx context.Context, root *employee.Employee) (int, error) {
	visited := map[string]struct{}{root.ID: {}}
	stack := append([]string(nil), root.DirectReports...)
	count := 0

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[id]; seen {
			s.logger.Warn().
				Str("root_id", root.ID).
				Str("employee_id", id).
				Msg("employee reached twice while walking reporting structure")
			return 0, fmt.Errorf("%s reached twice under %s: %w", id, root.ID, ErrInvalidHierarchy)
		}
		visited[id] = struct{}{}

		report, err := s.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: id})
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return 0, fmt.Errorf("direct report %s does not exist: %w", id, ErrInvalidHierarchy)
			}
			return 0, err
		}

		count++
		stack = append(stack, report.DirectReports...)
	}

	return count, nil
}
