package employee

import "context"

type EmployeeRepository interface {
	// FindAll returns one page of active employees matching filter and the
	// total number of matches regardless of pagination.
	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Update applies the non-nil fields of req, and photoPath when given, to an
	// active employee. It returns the updated row and the photo path it replaced.
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest, photoPath *string) (Employee, *string, error)
	// Delete marks an active employee as deleted.
	Delete(ctx context.Context, id int64) error
	// Restore reactivates a deleted employee.
	Restore(ctx context.Context, id int64) (Employee, error)
	ExistsActive(ctx context.Context, id int64) (bool, error)
}
