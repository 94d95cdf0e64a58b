package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetMonthlyAttendanceReport implements report.ReportRepository. Employees with
// no attendance in the period are absent from the result.
func (r *reportRepositoryImpl) GetMonthlyAttendanceReport(ctx context.Context, start, end time.Time, employeeID *int64, lateThreshold string) ([]report.MonthlyAttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			e.id,
			e.name,
			COUNT(a.id) AS days_present,
			COUNT(a.id) FILTER (WHERE a.check_in_time > $3::time) AS times_late
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id AND e.status = 'active'
		WHERE a.date >= $1 AND a.date < $2
			AND ($4::bigint IS NULL OR e.id = $4)
		GROUP BY e.id, e.name
		ORDER BY e.id ASC
	`

	rows, err := q.Query(ctx, query, start, end, lateThreshold, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly attendance: %w", err)
	}
	defer rows.Close()

	result := make([]report.MonthlyAttendanceRow, 0)
	for rows.Next() {
		var row report.MonthlyAttendanceRow
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.DaysPresent, &row.TimesLate); err != nil {
			return nil, fmt.Errorf("failed to scan monthly attendance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
