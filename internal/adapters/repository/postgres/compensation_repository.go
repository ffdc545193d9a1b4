package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/compensation"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	compensationsEmployeeDateKey = "compensations_employee_id_effective_date_key"
	compensationsEmployeeFkey    = "compensations_employee_id_fkey"
	compensationsSalaryCheck     = "compensations_salary_positive"

	numericOutOfRangeCode = "22003"
)

const compensationColumns = `id, employee_id, salary::text, effective_date, created_at`

// CompensationRepository は PostgreSQL を利用した給与履歴永続化の実装です。
type CompensationRepository struct {
	pool pgdb.Queryer
}

// NewCompensationRepository は CompensationRepository を生成します。
func NewCompensationRepository(pool pgdb.Queryer) *CompensationRepository {
	return &CompensationRepository{pool: pool}
}

// Create は給与を登録します。(employee_id, effective_date) の一意制約違反は ErrCompensationAlreadyExists に変換します。
func (r *CompensationRepository) Create(ctx context.Context, c *compensation.Compensation) (*compensation.Compensation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO compensations (id, employee_id, salary, effective_date, created_at)
        VALUES ($1, $2, $3::numeric, $4, $5)
        RETURNING `+compensationColumns,
		c.ID,
		c.EmployeeID,
		c.Salary.String(),
		c.EffectiveDate,
		c.CreatedAt,
	)

	created, err := scanCompensation(row)
	if err != nil {
		return nil, translateCompensationPgError(err)
	}
	return created, nil
}

// ListByEmployeeID は社員の給与を適用開始日の昇順で取得します。
func (r *CompensationRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*compensation.Compensation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+compensationColumns+`
          FROM compensations
         WHERE employee_id = $1
         ORDER BY effective_date ASC
    `, employeeID)
	if err != nil {
		return nil, translateCompensationPgError(err)
	}
	defer rows.Close()

	result := make([]*compensation.Compensation, 0)
	for rows.Next() {
		c, err := scanCompensation(rows)
		if err != nil {
			return nil, translateCompensationPgError(err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, translateCompensationPgError(err)
	}

	return result, nil
}

// FindByEmployeeAndEffectiveDate は社員と適用開始日が完全一致する給与を取得します。
func (r *CompensationRepository) FindByEmployeeAndEffectiveDate(ctx context.Context, employeeID string, effectiveDate time.Time) (*compensation.Compensation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+compensationColumns+`
          FROM compensations
         WHERE employee_id = $1 AND effective_date = $2
         LIMIT 1
    `, employeeID, effectiveDate)

	found, err := scanCompensation(row)
	if err != nil {
		return nil, translateCompensationPgError(err)
	}
	return found, nil
}

// FindLatestEffective は asOf 以前で最新の適用開始日を持つ給与を取得します。
func (r *CompensationRepository) FindLatestEffective(ctx context.Context, employeeID string, asOf time.Time) (*compensation.Compensation, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+compensationColumns+`
          FROM compensations
         WHERE employee_id = $1 AND effective_date <= $2
         ORDER BY effective_date DESC
         LIMIT 1
    `, employeeID, asOf)

	found, err := scanCompensation(row)
	if err != nil {
		return nil, translateCompensationPgError(err)
	}
	return found, nil
}

func scanCompensation(row pgx.Row) (*compensation.Compensation, error) {
	var (
		id            string
		employeeID    string
		salary        string
		effectiveDate time.Time
		createdAt     time.Time
	)

	if err := row.Scan(&id, &employeeID, &salary, &effectiveDate, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, compensation.ErrCompensationNotFound
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("parse salary %q: %w", salary, err)
	}

	t := effectiveDate.UTC()
	return &compensation.Compensation{
		ID:            id,
		EmployeeID:    employeeID,
		Salary:        amount,
		EffectiveDate: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt:     createdAt,
	}, nil
}

func translateCompensationPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return compensation.ErrCompensationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if pgErr.ConstraintName == compensationsEmployeeDateKey {
				return compensation.ErrCompensationAlreadyExists
			}
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == compensationsEmployeeFkey {
				return employee.ErrEmployeeNotFound
			}
		case checkViolationCode:
			if pgErr.ConstraintName == compensationsSalaryCheck {
				return compensation.ErrInvalidSalary
			}
		case numericOutOfRangeCode:
			return compensation.ErrInvalidSalary
		}
	}

	return err
}
