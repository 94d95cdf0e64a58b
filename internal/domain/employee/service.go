package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
	// CreateEmployee stores the employee and, when present, its photo. The photo
	// is only kept if the row was written.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	// UpdateEmployee applies a partial update. A new photo replaces the previous one.
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id int64) error
	RestoreEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
}
