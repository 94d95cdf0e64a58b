package postgresql_test

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, employees, "John Smith", "Software Engineer", 30, "75000.00")
	day := date(t, "2024-01-15")

	first, created, err := repo.Upsert(ctx, emp.ID, day, "10:00:00")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "10:00:00", first.CheckInTime)
	assert.Equal(t, "John Smith", first.EmployeeName)
	assert.Equal(t, "2024-01-15", first.Date.Format("2006-01-02"))

	second, created, err := repo.Upsert(ctx, emp.ID, day, "09:00:00")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "09:00:00", second.CheckInTime)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	filter := attendance.NewAttendanceFilter()
	filter.EmployeeID = &emp.ID
	records, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "09:00:00", records[0].CheckInTime)
}

func TestAttendanceRepository_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, employees, "John Smith", "Software Engineer", 30, "75000.00")
	day := date(t, "2024-01-15")

	times := []string{"08:00:00", "08:30:00", "09:00:00", "09:30:00", "10:00:00"}
	var wg sync.WaitGroup
	errs := make(chan error, len(times))
	for _, clock := range times {
		wg.Add(1)
		go func(clock string) {
			defer wg.Done()
			_, _, err := repo.Upsert(ctx, emp.ID, day, clock)
			errs <- err
		}(clock)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int
	require.NoError(t, db.QueryRow(ctx,
		"SELECT COUNT(*) FROM attendance WHERE employee_id = $1 AND date = $2", emp.ID, day).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAttendanceRepository_UnknownEmployee(t *testing.T) {
	db := setupTestDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	_, _, err := repo.Upsert(context.Background(), 4242, date(t, "2024-01-15"), "09:00:00")
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotActive)
}

func TestAttendanceRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	john := createEmployee(t, employees, "John Smith", "Software Engineer", 30, "75000.00")
	sarah := createEmployee(t, employees, "Sarah Johnson", "HR Manager", 35, "65000.00")
	gone := createEmployee(t, employees, "Old Timer", "Software Engineer", 60, "90000.00")

	upsert := func(id int64, day, clock string) {
		_, _, err := repo.Upsert(ctx, id, date(t, day), clock)
		require.NoError(t, err)
	}
	upsert(john.ID, "2024-01-16", "09:10:00")
	upsert(sarah.ID, "2024-01-15", "09:30:00")
	upsert(john.ID, "2024-01-15", "08:55:00")
	upsert(gone.ID, "2024-01-15", "08:00:00")
	require.NoError(t, employees.Delete(ctx, gone.ID))

	t.Run("ordered by date then check-in, deleted employees hidden", func(t *testing.T) {
		records, total, err := repo.FindAll(ctx, attendance.NewAttendanceFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, records, 3)
		assert.Equal(t, john.ID, records[0].EmployeeID)
		assert.Equal(t, "08:55:00", records[0].CheckInTime)
		assert.Equal(t, sarah.ID, records[1].EmployeeID)
		assert.Equal(t, "2024-01-16", records[2].Date.Format("2006-01-02"))
	})

	t.Run("date range", func(t *testing.T) {
		filter := attendance.NewAttendanceFilter()
		filter.From = "2024-01-16"
		filter.To = "2024-01-31"

		records, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, "09:10:00", records[0].CheckInTime)
	})

	t.Run("single date", func(t *testing.T) {
		filter := attendance.NewAttendanceFilter()
		filter.Date = "2024-01-15"

		_, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestAttendanceRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, employees, "John Smith", "Software Engineer", 30, "75000.00")
	record, _, err := repo.Upsert(ctx, emp.ID, date(t, "2024-01-15"), "09:00:00")
	require.NoError(t, err)

	updated, err := repo.UpdateCheckInTime(ctx, record.ID, "09:50:00")
	require.NoError(t, err)
	assert.Equal(t, "09:50:00", updated.CheckInTime)
	assert.Equal(t, record.Date, updated.Date)

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:50:00", got.CheckInTime)

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err = repo.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, record.ID), attendance.ErrAttendanceNotFound)

	_, err = repo.UpdateCheckInTime(ctx, record.ID, "10:00:00")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_HardDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	emp := createEmployee(t, employees, "John Smith", "Software Engineer", 30, "75000.00")
	_, _, err := repo.Upsert(ctx, emp.ID, date(t, "2024-01-15"), "09:00:00")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "DELETE FROM employees WHERE id = $1", emp.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM attendance").Scan(&count))
	assert.Zero(t, count)
}
