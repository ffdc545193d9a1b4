package compensation

import "errors"

var (
	// ErrInvalidSalary は給与が 0 以下、小数 3 桁以上、または上限以上の場合に返却されます。
	ErrInvalidSalary = errors.New("compensation: invalid salary")
	// ErrInvalidEffectiveDate は適用開始日が未指定の場合に返却されます。
	ErrInvalidEffectiveDate = errors.New("compensation: invalid effective date")
	// ErrCompensationAlreadyExists は同一社員・同一適用開始日の給与が既に存在する場合に返却されます。
	ErrCompensationAlreadyExists = errors.New("compensation: already exists for effective date")
	// ErrCompensationNotFound は条件に合う給与が存在しない場合に返却されます。
	ErrCompensationNotFound = errors.New("compensation: not found")
)
