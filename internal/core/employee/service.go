package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員のライフサイクル (作成・取得・置き換え) をまとめます。
type Service struct {
	repo   Repository
	tx     TransactionManager
	logger *zerolog.Logger
	newID  func() string
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, draft *Draft) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ReplaceEmployee(ctx context.Context, in ReplaceEmployeeInput) (*Employee, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager, logger *zerolog.Logger) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{repo: repo, tx: tx, logger: logger, newID: uuid.NewString}
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// ReplaceEmployeeInput は社員置き換え時の入力です。
type ReplaceEmployeeInput struct {
	ID    string
	Draft *Draft
}

// CreateEmployee は新しい ID を採番して社員を登録します。draft が nil の場合は何もしません。
func (s *Service) CreateEmployee(ctx context.Context, draft *Draft) (*Employee, error) {
	if draft == nil {
		return nil, nil
	}

	emp, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureDirectReportsExist(txCtx, emp.DirectReports); err != nil {
			return err
		}

		emp.ID = s.newID()
		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", created.ID).
		Int("direct_reports", len(created.DirectReports)).
		Msg("employee created")

	return created, nil
}

// GetEmployee は社員を取得します。ID が空の場合はストアへ問い合わせずに ErrEmployeeNotFound を返します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrEmployeeNotFound)
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ReplaceEmployee は既存社員を削除し、draft の内容を同じ ID で登録し直します。
// 削除と再登録は 1 つの読み書きトランザクションで行われ、途中で失敗した場合は元の社員が残ります。
func (s *Service) ReplaceEmployee(ctx context.Context, in ReplaceEmployeeInput) (*Employee, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("id: %w", ErrEmployeeNotFound)
	}
	if in.Draft == nil {
		return nil, ErrInvalidDraft
	}

	emp, err := normalizeDraft(in.Draft)
	if err != nil {
		return nil, err
	}

	for _, reportID := range emp.DirectReports {
		if reportID == id {
			return nil, fmt.Errorf("%s reports to itself: %w", id, ErrInvalidDirectReport)
		}
	}

	var replaced *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return err
		}

		if err := s.ensureDirectReportsExist(txCtx, emp.DirectReports); err != nil {
			return err
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}

		emp.ID = id
		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		replaced = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", id).Msg("employee replaced")

	return replaced, nil
}

func (s *Service) ensureDirectReportsExist(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return fmt.Errorf("%s: %w", id, ErrDirectReportNotFound)
			}
			return err
		}
	}
	return nil
}

func normalizeDraft(d *Draft) (*Employee, error) {
	firstName := strings.TrimSpace(d.FirstName)
	if firstName == "" {
		return nil, ErrInvalidFirstName
	}

	lastName := strings.TrimSpace(d.LastName)
	if lastName == "" {
		return nil, ErrInvalidLastName
	}

	reports, err := normalizeDirectReports(d.DirectReports)
	if err != nil {
		return nil, err
	}

	return &Employee{
		FirstName:     firstName,
		LastName:      lastName,
		Position:      strings.TrimSpace(d.Position),
		Department:    strings.TrimSpace(d.Department),
		DirectReports: reports,
	}, nil
}

func normalizeDirectReports(raw []string) ([]string, error) {
	reports := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		id := strings.TrimSpace(r)
		if id == "" {
			return nil, fmt.Errorf("empty id: %w", ErrInvalidDirectReport)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%s listed twice: %w", id, ErrInvalidDirectReport)
		}
		seen[id] = struct{}{}
		reports = append(reports, id)
	}
	return reports, nil
}
