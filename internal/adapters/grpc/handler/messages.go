package handler

import "time"

// Employee は社員のワイヤ表現です。
type Employee struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Position      string   `json:"position"`
	Department    string   `json:"department"`
	DirectReports []string `json:"direct_reports"`
}

// EmployeeDraft は作成・置き換え時の社員内容です。
type EmployeeDraft struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Position      string   `json:"position"`
	Department    string   `json:"department"`
	DirectReports []string `json:"direct_reports"`
}

type CreateEmployeeRequest struct {
	Employee *EmployeeDraft `json:"employee"`
}

type CreateEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type GetEmployeeRequest struct {
	ID string `json:"id"`
}

type GetEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type ReplaceEmployeeRequest struct {
	ID       string         `json:"id"`
	Employee *EmployeeDraft `json:"employee"`
}

type ReplaceEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type GetReportingStructureRequest struct {
	EmployeeID string `json:"employee_id"`
}

type GetReportingStructureResponse struct {
	Employee        *Employee `json:"employee"`
	NumberOfReports int       `json:"number_of_reports"`
}

// Compensation は給与のワイヤ表現です。Salary は精度を保つため文字列で表します。
type Compensation struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Employee      *Employee `json:"employee,omitempty"`
	Salary        string    `json:"salary"`
	EffectiveDate string    `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateCompensationRequest struct {
	EmployeeID    string `json:"employee_id"`
	Salary        string `json:"salary"`
	EffectiveDate string `json:"effective_date"`
}

type CreateCompensationResponse struct {
	Compensation *Compensation `json:"compensation"`
}

type ListCompensationsRequest struct {
	EmployeeID    string  `json:"employee_id"`
	EffectiveDate *string `json:"effective_date,omitempty"`
}

type ListCompensationsResponse struct {
	Compensations []*Compensation `json:"compensations"`
}

type GetCurrentCompensationRequest struct {
	EmployeeID string  `json:"employee_id"`
	AsOf       *string `json:"as_of,omitempty"`
}

type GetCurrentCompensationResponse struct {
	Compensation *Compensation `json:"compensation"`
}
