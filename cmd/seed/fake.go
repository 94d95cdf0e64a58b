package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// fakeEmployee builds a random employee that satisfies the table constraints:
// age 18..65 consistent with the date of birth, hired after turning 18, and a
// positive salary with two decimal places.
func fakeEmployee(f *gofakeit.Faker, now time.Time) employee.Employee {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	age := f.IntRange(18, 65)
	born := today.AddDate(-age, 0, -f.IntRange(1, 364))
	adult := born.AddDate(18, 0, 0)
	hired := f.DateRange(adult, today)
	hired = time.Date(hired.Year(), hired.Month(), hired.Day(), 0, 0, 0, 0, time.UTC)

	cents := int64(f.IntRange(3_000_000, 20_000_000))

	return employee.Employee{
		Name:        f.Name(),
		Age:         age,
		Designation: f.JobTitle(),
		HiringDate:  hired,
		DateOfBirth: born,
		Salary:      decimal.New(cents, -2),
		Status:      employee.StatusActive,
	}
}

type checkIn struct {
	Date time.Time
	Time string
}

// fakeMonthOfAttendance returns check-ins for the weekdays of the current
// month up to today. Roughly one day in ten is skipped and times fall
// between 08:30 and 10:29 so that some arrivals are late.
func fakeMonthOfAttendance(f *gofakeit.Faker, now time.Time) []checkIn {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []checkIn
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if f.IntRange(1, 10) == 1 {
			continue
		}
		minutes := 8*60 + 30 + f.IntRange(0, 119)
		out = append(out, checkIn{
			Date: day,
			Time: fmt.Sprintf("%02d:%02d:%02d", minutes/60, minutes%60, f.IntRange(0, 59)),
		})
	}
	return out
}
