package main

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

func TestFakeEmployee(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		e := fakeEmployee(faker, now)

		assert.NotEmpty(t, e.Name)
		assert.GreaterOrEqual(t, len(e.Designation), 2)
		assert.GreaterOrEqual(t, e.Age, 18)
		assert.LessOrEqual(t, e.Age, 100)

		// Age matches the date of birth.
		assert.False(t, e.DateOfBirth.AddDate(e.Age, 0, 0).After(today))
		assert.True(t, e.DateOfBirth.AddDate(e.Age+1, 0, 0).After(today))

		assert.False(t, e.HiringDate.Before(e.DateOfBirth.AddDate(18, 0, 0)))
		assert.False(t, e.HiringDate.After(today))

		assert.True(t, e.Salary.IsPositive())
		assert.True(t, validator.HasMaxDecimalPlaces(e.Salary, 2))
		assert.Equal(t, employee.StatusActive, e.Status)
	}
}

func TestFakeMonthOfAttendance(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 0, 0, 0, time.UTC)
	faker := gofakeit.New(7)

	records := fakeMonthOfAttendance(faker, now)

	// June 2024 has 10 weekdays up to the 15th.
	assert.NotEmpty(t, records)
	assert.LessOrEqual(t, len(records), 10)

	seen := make(map[string]bool)
	for _, r := range records {
		assert.Equal(t, time.June, r.Date.Month())
		assert.LessOrEqual(t, r.Date.Day(), 15)
		assert.NotEqual(t, time.Saturday, r.Date.Weekday())
		assert.NotEqual(t, time.Sunday, r.Date.Weekday())
		assert.True(t, validator.IsValidClock(r.Time), r.Time)
		assert.GreaterOrEqual(t, r.Time, "08:30:00")
		assert.Less(t, r.Time, "10:30:00")

		key := r.Date.Format("2006-01-02")
		assert.False(t, seen[key], "one check-in per day")
		seen[key] = true
	}
}

func TestSampleEmployees(t *testing.T) {
	samples := sampleEmployees()

	assert.Len(t, samples, 3)
	assert.Equal(t, "John Smith", samples[0].Name)
	assert.Equal(t, "2023-01-15", samples[0].HiringDate.Format("2006-01-02"))
	assert.Equal(t, "75000.00", samples[0].Salary.StringFixed(2))
}
