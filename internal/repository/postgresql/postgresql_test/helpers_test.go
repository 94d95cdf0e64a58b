package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func createEmployee(t *testing.T, repo employee.EmployeeRepository, name, designation string, age int, salary string) employee.Employee {
	t.Helper()
	e, err := repo.Create(context.Background(), employee.Employee{
		Name:        name,
		Age:         age,
		Designation: designation,
		HiringDate:  date(t, "2020-01-15"),
		DateOfBirth: date(t, "1990-05-20"),
		Salary:      decimal.RequireFromString(salary),
		Status:      employee.StatusActive,
	})
	require.NoError(t, err)
	return e
}

func ptr[T any](v T) *T {
	return &v
}
