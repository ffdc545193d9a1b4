package compensation

import (
	"context"
	"time"
)

// Repository は給与履歴の永続化を行うインターフェースです。
type Repository interface {
	// Create は給与を登録します。同一社員・同一適用開始日の重複は ErrCompensationAlreadyExists を返します。
	Create(ctx context.Context, c *Compensation) (*Compensation, error)
	// ListByEmployeeID は社員の給与を適用開始日の昇順で返します。
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*Compensation, error)
	// FindByEmployeeAndEffectiveDate は存在しない場合 ErrCompensationNotFound を返します。
	FindByEmployeeAndEffectiveDate(ctx context.Context, employeeID string, effectiveDate time.Time) (*Compensation, error)
	// FindLatestEffective は asOf 以前で最も新しい適用開始日の給与を返します。
	FindLatestEffective(ctx context.Context, employeeID string, asOf time.Time) (*Compensation, error)
}
