package compensation

import (
	"time"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/shopspring/decimal"
)

// Compensation は社員の給与履歴 1 件を表します。作成後は変更されません。
type Compensation struct {
	ID         string
	EmployeeID string
	// Employee は登録時および参照時に解決された所有社員です。
	Employee      *employee.Employee
	Salary        decimal.Decimal
	EffectiveDate time.Time
	CreatedAt     time.Time
}
