package compensation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// EmployeeReader は給与の所有社員を解決する手段です。employee.Service が満たします。
type EmployeeReader interface {
	GetEmployee(ctx context.Context, in employee.GetEmployeeInput) (*employee.Employee, error)
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// UseCase は給与履歴ユースケースの公開インターフェースです。
type UseCase interface {
	RecordCompensation(ctx context.Context, in RecordCompensationInput) (*Compensation, error)
	ListCompensations(ctx context.Context, in ListCompensationsInput) ([]*Compensation, error)
	GetCurrentCompensation(ctx context.Context, in GetCurrentCompensationInput) (*Compensation, error)
}

// Service は給与履歴を管理し、社員ごと・適用開始日ごとに 1 件までという制約を守ります。
type Service struct {
	repo      Repository
	employees EmployeeReader
	clock     Clock
	tx        TransactionManager
	logger    *zerolog.Logger
	newID     func() string
}

// NewService は Service を生成します。
func NewService(repo Repository, employees EmployeeReader, clock Clock, tx TransactionManager, logger *zerolog.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{
		repo:      repo,
		employees: employees,
		clock:     clock,
		tx:        tx,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// RecordCompensationInput は給与登録時の入力です。
type RecordCompensationInput struct {
	EmployeeID    string
	Salary        decimal.Decimal
	EffectiveDate time.Time
}

// ListCompensationsInput は給与一覧取得時の入力です。EffectiveDate を指定すると同日のものに絞り込みます。
type ListCompensationsInput struct {
	EmployeeID    string
	EffectiveDate *time.Time
}

// GetCurrentCompensationInput は基準日時点の給与取得時の入力です。AsOf が未指定の場合は現在日付を使います。
type GetCurrentCompensationInput struct {
	EmployeeID string
	AsOf       time.Time
}

// RecordCompensation は社員に給与を登録します。
func (s *Service) RecordCompensation(ctx context.Context, in RecordCompensationInput) (*Compensation, error) {
	if err := validateSalary(in.Salary); err != nil {
		return nil, err
	}
	if in.EffectiveDate.IsZero() {
		return nil, ErrInvalidEffectiveDate
	}
	effectiveDate := normalizeDate(in.EffectiveDate)

	var created *Compensation
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp, err := s.employees.GetEmployee(txCtx, employee.GetEmployeeInput{ID: in.EmployeeID})
		if err != nil {
			return err
		}

		if err := s.ensureNoCompensationOn(txCtx, emp.ID, effectiveDate); err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, &Compensation{
			ID:            s.newID(),
			EmployeeID:    emp.ID,
			Employee:      emp,
			Salary:        in.Salary,
			EffectiveDate: effectiveDate,
			CreatedAt:     s.clock.Now(),
		})
		if err != nil {
			return err
		}
		result.Employee = emp

		created = result
		return nil
	}); err != nil {
		if errors.Is(err, ErrCompensationAlreadyExists) {
			s.logger.Debug().
				Str("employee_id", in.EmployeeID).
				Str("effective_date", effectiveDate.Format(time.DateOnly)).
				Msg("compensation already recorded for effective date")
		}
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", created.EmployeeID).
		Str("compensation_id", created.ID).
		Str("effective_date", created.EffectiveDate.Format(time.DateOnly)).
		Msg("compensation recorded")

	return created, nil
}

// ListCompensations は社員の給与履歴を返します。履歴がない場合は空のスライスを返します。
func (s *Service) ListCompensations(ctx context.Context, in ListCompensationsInput) ([]*Compensation, error) {
	var result []*Compensation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.employees.GetEmployee(txCtx, employee.GetEmployeeInput{ID: in.EmployeeID})
		if err != nil {
			return err
		}

		var found []*Compensation
		if in.EffectiveDate != nil {
			c, err := s.repo.FindByEmployeeAndEffectiveDate(txCtx, emp.ID, normalizeDate(*in.EffectiveDate))
			switch {
			case errors.Is(err, ErrCompensationNotFound):
			case err != nil:
				return err
			default:
				found = append(found, c)
			}
		} else {
			found, err = s.repo.ListByEmployeeID(txCtx, emp.ID)
			if err != nil {
				return err
			}
		}

		result = make([]*Compensation, 0, len(found))
		for _, c := range found {
			c.Employee = emp
			result = append(result, c)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// GetCurrentCompensation は基準日時点で有効な (適用開始日が基準日以前で最新の) 給与を返します。
func (s *Service) GetCurrentCompensation(ctx context.Context, in GetCurrentCompensationInput) (*Compensation, error) {
	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = s.clock.Now()
	}
	asOf = normalizeDate(asOf)

	var result *Compensation
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.employees.GetEmployee(txCtx, employee.GetEmployeeInput{ID: in.EmployeeID})
		if err != nil {
			return err
		}

		c, err := s.repo.FindLatestEffective(txCtx, emp.ID, asOf)
		if err != nil {
			return err
		}
		c.Employee = emp

		result = c
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ensureNoCompensationOn は事前確認です。最終的な一意性はストアの一意制約が保証します。
func (s *Service) ensureNoCompensationOn(ctx context.Context, employeeID string, effectiveDate time.Time) error {
	existing, err := s.repo.FindByEmployeeAndEffectiveDate(ctx, employeeID, effectiveDate)
	if err != nil && !errors.Is(err, ErrCompensationNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%s on %s: %w", employeeID, effectiveDate.Format(time.DateOnly), ErrCompensationAlreadyExists)
	}
	return nil
}

// salaryScale と maxSalary は compensations.salary の NUMERIC(14,2) に合わせます。
const salaryScale = 2

var maxSalary = decimal.New(1, 14-salaryScale)

func validateSalary(salary decimal.Decimal) error {
	switch {
	case !salary.IsPositive():
		return ErrInvalidSalary
	case !salary.Equal(salary.Round(salaryScale)):
		return fmt.Errorf("%s has more than %d decimal places: %w", salary, salaryScale, ErrInvalidSalary)
	case salary.GreaterThanOrEqual(maxSalary):
		return fmt.Errorf("%s exceeds %s: %w", salary, maxSalary, ErrInvalidSalary)
	}
	return nil
}

// normalizeDate は時刻成分を落として UTC の暦日に揃えます。
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
