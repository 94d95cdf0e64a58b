// Command seed provisions the HR accounts and sample employees.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cmlabs-hris/hr-backend-go/internal/config"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const defaultPassword = "admin123"

var hrUsers = []user.HRUser{
	{Email: "admin@hr.com", Name: "HR Admin"},
	{Email: "manager@hr.com", Name: "HR Manager"},
}

func main() {
	fake := flag.Int("fake", 0, "number of random employees to add")
	seed := flag.Uint64("seed", 0, "random seed for -fake; 0 picks one")
	flag.Parse()

	if err := run(context.Background(), *fake, *seed); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, fake int, seed uint64) error {
	dbConfig, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(ctx, dbConfig.URL(), 2)
	if err != nil {
		return err
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	err = postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		if err := seedUsers(ctx, postgresql.NewUserRepository(db)); err != nil {
			return err
		}
		return seedEmployees(ctx, employeeRepo)
	})
	if err != nil {
		return err
	}

	if fake > 0 {
		attendanceRepo := postgresql.NewAttendanceRepository(db)
		faker := gofakeit.New(seed)
		now := time.Now()
		records := 0
		for i := 0; i < fake; i++ {
			e, err := employeeRepo.Create(ctx, fakeEmployee(faker, now))
			if err != nil {
				return fmt.Errorf("create fake employee: %w", err)
			}
			for _, checkIn := range fakeMonthOfAttendance(faker, now) {
				if _, _, err := attendanceRepo.Upsert(ctx, e.ID, checkIn.Date, checkIn.Time); err != nil {
					return fmt.Errorf("record fake attendance: %w", err)
				}
				records++
			}
		}
		slog.Info("Fake employees created", "count", fake, "attendance_records", records)
	}

	return nil
}

// seedUsers refreshes the HR accounts, resetting their password.
func seedUsers(ctx context.Context, repo user.UserRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, u := range hrUsers {
		u.PasswordHash = string(hash)
		if _, err := repo.Upsert(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		slog.Info("HR user ready", "email", u.Email)
	}
	return nil
}

// seedEmployees inserts the sample employees into an empty table only.
func seedEmployees(ctx context.Context, repo employee.EmployeeRepository) error {
	filter := employee.NewEmployeeFilter()
	filter.Limit = 1
	if _, total, err := repo.FindAll(ctx, filter); err != nil {
		return fmt.Errorf("count employees: %w", err)
	} else if total > 0 {
		slog.Info("Employees already present, skipping samples", "count", total)
		return nil
	}

	for _, e := range sampleEmployees() {
		if _, err := repo.Create(ctx, e); err != nil {
			return fmt.Errorf("seed employee %s: %w", e.Name, err)
		}
	}
	slog.Info("Sample employees created", "count", len(sampleEmployees()))
	return nil
}

func sampleEmployees() []employee.Employee {
	return []employee.Employee{
		newEmployee("John Smith", 30, "Software Engineer", "2023-01-15", "1993-05-20", 75000),
		newEmployee("Sarah Johnson", 28, "Product Manager", "2022-08-10", "1995-11-30", 85000),
		newEmployee("Michael Brown", 35, "Senior Developer", "2021-03-22", "1988-07-12", 95000),
	}
}

func newEmployee(name string, age int, designation, hiringDate, dateOfBirth string, salary int64) employee.Employee {
	hired, _ := time.Parse(employee.DateLayout, hiringDate)
	born, _ := time.Parse(employee.DateLayout, dateOfBirth)
	return employee.Employee{
		Name:        name,
		Age:         age,
		Designation: designation,
		HiringDate:  hired,
		DateOfBirth: born,
		Salary:      decimal.NewFromInt(salary),
		Status:      employee.StatusActive,
	}
}
