package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
)

const pgForeignKeyViolation = "23503"

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.check_in_time::text, a.created_at, a.updated_at, e.name
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id AND e.status = 'active'`

func scanAttendance(row rowScanner, extra ...any) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []any{&a.ID, &a.EmployeeID, &a.Date, &a.CheckInTime, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// FindAll implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindAll(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d::date", argIdx))
		args = append(args, filter.Date)
		argIdx++
	}
	if filter.From != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, filter.From)
		argIdx++
	}
	if filter.To != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, filter.To)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var (
		total   int64
		records []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		countQuery := fmt.Sprintf(`
			SELECT COUNT(*)
			FROM attendance a
			JOIN employees e ON e.id = a.employee_id AND e.status = 'active'
			%s
		`, whereClause)
		if err := r.db.QueryRow(gCtx, countQuery, args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), filter.Limit, pagination.Offset(filter.Page, filter.Limit))
		query := fmt.Sprintf(`%s
			%s
			ORDER BY a.date ASC, a.check_in_time ASC, a.id ASC
			LIMIT $%d OFFSET $%d
		`, attendanceSelect, whereClause, argIdx, argIdx+1)

		rows, err := r.db.Query(gCtx, query, pageArgs...)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		defer rows.Close()

		records = make([]attendance.Attendance, 0, filter.Limit)
		for rows.Next() {
			a, err := scanAttendance(rows)
			if err != nil {
				return fmt.Errorf("failed to scan attendance: %w", err)
			}
			records = append(records, a)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// Upsert implements attendance.AttendanceRepository. Uniqueness of
// (employee_id, date) is enforced by the table constraint, so concurrent calls
// for the same key converge on a single row.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, employeeID int64, date time.Time, checkInTime string) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH upserted AS (
			INSERT INTO attendance (employee_id, date, check_in_time)
			VALUES ($1, $2, $3::time)
			ON CONFLICT (employee_id, date) DO UPDATE
			SET check_in_time = EXCLUDED.check_in_time, updated_at = NOW()
			RETURNING id, employee_id, date, check_in_time, created_at, updated_at, (xmax = 0) AS inserted
		)
		SELECT u.id, u.employee_id, u.date, u.check_in_time::text, u.created_at, u.updated_at, e.name, u.inserted
		FROM upserted u
		JOIN employees e ON e.id = u.employee_id
	`

	var inserted bool
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, checkInTime), &inserted)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return attendance.Attendance{}, false, attendance.ErrEmployeeNotActive
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return a, inserted, nil
}

// UpdateCheckInTime implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateCheckInTime(ctx context.Context, id int64, checkInTime string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE attendance a
			SET check_in_time = $2::time, updated_at = NOW()
			FROM employees e
			WHERE a.id = $1 AND e.id = a.employee_id AND e.status = 'active'
			RETURNING a.id, a.employee_id, a.date, a.check_in_time, a.created_at, a.updated_at, e.name
		)
		SELECT id, employee_id, date, check_in_time::text, created_at, updated_at, name FROM updated
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, checkInTime))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return a, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance a
		USING employees e
		WHERE a.id = $1 AND e.id = a.employee_id AND e.status = 'active'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
