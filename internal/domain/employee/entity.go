package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an employee row. Deleted rows are kept for
// audit and can be restored.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

type Employee struct {
	ID          int64
	Name        string
	Age         int
	Designation string
	HiringDate  time.Time
	DateOfBirth time.Time
	Salary      decimal.Decimal
	PhotoPath   *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

