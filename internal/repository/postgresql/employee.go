package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, age, designation, hiring_date, date_of_birth, salary,
	photo_path, status, created_at, updated_at, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner, extra ...any) (employee.Employee, error) {
	var e employee.Employee
	dest := []any{
		&e.ID, &e.Name, &e.Age, &e.Designation, &e.HiringDate, &e.DateOfBirth, &e.Salary,
		&e.PhotoPath, &e.Status, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func employeeFilterConditions(filter employee.EmployeeFilter) ([]string, []any) {
	conditions := []string{"status = 'active'"}
	var args []any
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}
	if filter.Designation != "" {
		conditions = append(conditions, fmt.Sprintf("designation = $%d", argIdx))
		args = append(args, filter.Designation)
		argIdx++
	}
	if filter.MinAge != nil {
		conditions = append(conditions, fmt.Sprintf("age >= $%d", argIdx))
		args = append(args, *filter.MinAge)
		argIdx++
	}
	if filter.MaxAge != nil {
		conditions = append(conditions, fmt.Sprintf("age <= $%d", argIdx))
		args = append(args, *filter.MaxAge)
		argIdx++
	}
	if filter.MinSalary != nil {
		conditions = append(conditions, fmt.Sprintf("salary >= $%d", argIdx))
		args = append(args, *filter.MinSalary)
		argIdx++
	}
	if filter.MaxSalary != nil {
		conditions = append(conditions, fmt.Sprintf("salary <= $%d", argIdx))
		args = append(args, *filter.MaxSalary)
	}

	return conditions, args
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindAll implements employee.EmployeeRepository. The count and the page are
// fetched concurrently from the pool.
func (r *employeeRepositoryImpl) FindAll(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	conditions, args := employeeFilterConditions(filter)
	whereClause := strings.Join(conditions, " AND ")

	var (
		total     int64
		employees []employee.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereClause)
		if err := r.db.QueryRow(gCtx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), filter.Limit, pagination.Offset(filter.Page, filter.Limit))
		query := fmt.Sprintf(`
			SELECT %s
			FROM employees
			WHERE %s
			ORDER BY id DESC
			LIMIT $%d OFFSET $%d
		`, employeeColumns, whereClause, len(args)+1, len(args)+2)

		rows, err := r.db.Query(gCtx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		defer rows.Close()

		employees = make([]employee.Employee, 0, filter.Limit)
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				return fmt.Errorf("failed to scan employee: %w", err)
			}
			employees = append(employees, e)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND status = 'active'`
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (name, age, designation, hiring_date, date_of_birth, salary, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.Name,
		newEmployee.Age,
		newEmployee.Designation,
		newEmployee.HiringDate,
		newEmployee.DateOfBirth,
		newEmployee.Salary,
		newEmployee.PhotoPath,
	))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. The previous photo path is
// read under the same row lock as the update.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest, photoPath *string) (employee.Employee, *string, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []any{id}
	argIdx := 2

	set := func(column string, value any) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Age != nil {
		set("age", *req.Age)
	}
	if req.Designation != nil {
		set("designation", *req.Designation)
	}
	if req.HiringDate != nil {
		d, err := time.Parse(employee.DateLayout, *req.HiringDate)
		if err != nil {
			return employee.Employee{}, nil, fmt.Errorf("invalid hiring_date: %w", err)
		}
		set("hiring_date", d)
	}
	if req.DateOfBirth != nil {
		d, err := time.Parse(employee.DateLayout, *req.DateOfBirth)
		if err != nil {
			return employee.Employee{}, nil, fmt.Errorf("invalid date_of_birth: %w", err)
		}
		set("date_of_birth", d)
	}
	if req.Salary != nil {
		set("salary", req.Salary.Round(2))
	}
	if photoPath != nil {
		set("photo_path", *photoPath)
	}

	query := fmt.Sprintf(`
		WITH previous AS (
			SELECT id, photo_path FROM employees
			WHERE id = $1 AND status = 'active'
			FOR UPDATE
		)
		UPDATE employees e
		SET %s
		FROM previous
		WHERE e.id = previous.id
		RETURNING e.id, e.name, e.age, e.designation, e.hiring_date, e.date_of_birth, e.salary,
			e.photo_path, e.status, e.created_at, e.updated_at, e.deleted_at, previous.photo_path
	`, strings.Join(setParts, ", "))

	var previousPhoto *string
	updated, err := scanEmployee(q.QueryRow(ctx, query, args...), &previousPhoto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, nil, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return updated, previousPhoto, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET status = 'deleted', deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Restore implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Restore(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET status = 'active', deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'deleted'
		RETURNING ` + employeeColumns

	restored, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to restore employee: %w", err)
	}
	return restored, nil
}

// ExistsActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsActive(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1 AND status = 'active')`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee: %w", err)
	}
	return exists, nil
}
