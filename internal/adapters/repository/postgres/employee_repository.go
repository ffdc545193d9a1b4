package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"

	directReportsPkey          = "employee_direct_reports_pkey"
	directReportsReportIDKey   = "employee_direct_reports_report_id_key"
	directReportsNotSelfCheck  = "employee_direct_reports_not_self"
	directReportsReportIDFkey  = "employee_direct_reports_report_id_fkey"
	directReportsManagerIDFkey = "employee_direct_reports_manager_id_fkey"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
// 直属の部下は employee_direct_reports に (manager_id, report_id) として保持し、
// report_id の一意制約で上長が 1 人であることを保証します。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員と直属の部下の関連を登録します。呼び出し側のトランザクション内で実行されることを前提とします。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO employees (id, first_name, last_name, position, department)
        VALUES ($1, $2, $3, $4, $5)
    `,
		e.ID,
		e.FirstName,
		e.LastName,
		e.Position,
		e.Department,
	); err != nil {
		return nil, translateEmployeePgError(err)
	}

	for ordinal, reportID := range e.DirectReports {
		if _, err := exec.Exec(ctx, `
            INSERT INTO employee_direct_reports (manager_id, report_id, ordinal)
            VALUES ($1, $2, $3)
        `, e.ID, reportID, ordinal); err != nil {
			return nil, translateEmployeePgError(err)
		}
	}

	created := *e
	created.DirectReports = append([]string{}, e.DirectReports...)
	return &created, nil
}

// Delete は社員と、その社員を上長とする関連を削除します。
// 他社員の部下としての関連と給与履歴は外部キーが遅延評価のため残り、同じ ID で再登録すれば解決されます。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `DELETE FROM employee_direct_reports WHERE manager_id = $1`, id); err != nil {
		return translateEmployeePgError(err)
	}

	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で社員を取得し、直属の部下の ID を表示順で付与します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, first_name, last_name, position, department
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}

	reports, err := r.directReports(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	found.DirectReports = reports

	return found, nil
}

func (r *EmployeeRepository) directReports(ctx context.Context, exec pgdb.Queryer, managerID string) ([]string, error) {
	rows, err := exec.Query(ctx, `
        SELECT report_id
          FROM employee_direct_reports
         WHERE manager_id = $1
         ORDER BY ordinal, report_id
    `, managerID)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	reports := make([]string, 0)
	for rows.Next() {
		var reportID string
		if err := rows.Scan(&reportID); err != nil {
			return nil, fmt.Errorf("scan direct report: %w", err)
		}
		reports = append(reports, reportID)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return reports, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var e employee.Employee
	if err := row.Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Position,
		&e.Department,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case directReportsReportIDKey, directReportsPkey:
				return employee.ErrDirectReportAlreadyAssigned
			default:
				return employee.ErrEmployeeAlreadyExists
			}
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case directReportsReportIDFkey, directReportsManagerIDFkey:
				return employee.ErrDirectReportNotFound
			default:
				return err
			}
		case checkViolationCode:
			if pgErr.ConstraintName == directReportsNotSelfCheck {
				return employee.ErrInvalidDirectReport
			}
		}
	}

	return err
}
