package reporting

import (
	"errors"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
)

// ErrInvalidHierarchy は報告ラインに循環・重複・存在しない部下が含まれる場合に返却されます。
var ErrInvalidHierarchy = errors.New("reporting: invalid hierarchy")

// Structure は社員と、その配下にいる全社員数の組です。永続化はされません。
type Structure struct {
	Employee        *employee.Employee
	NumberOfReports int
}
