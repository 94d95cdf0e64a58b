package employee

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var AllowedPhotoExtensions = []string{".jpg", ".jpeg", ".png"}

// PhotoUpload is an uploaded image accompanying a create or update request.
type PhotoUpload struct {
	File     io.Reader
	Filename string
	Size     int64
	MaxSize  int64
}

// Ext returns the lower-cased file extension.
func (p *PhotoUpload) Ext() string {
	return strings.ToLower(filepath.Ext(p.Filename))
}

func (p *PhotoUpload) validate(errs *validator.ValidationErrors) {
	if p == nil {
		return
	}
	if !validator.IsInSlice(p.Ext(), AllowedPhotoExtensions) {
		errs.Add("photo", "Photo must be a JPG, JPEG or PNG image")
	}
	if p.MaxSize > 0 && p.Size > p.MaxSize {
		errs.Add("photo", "Photo cannot exceed "+validator.Itoa(int(p.MaxSize>>20))+" MB")
	}
}

type CreateEmployeeRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=255"`
	Age         *int             `json:"age" validate:"required,gte=18,lte=100"`
	Designation string           `json:"designation" validate:"required,min=2,max=255"`
	HiringDate  string           `json:"hiring_date" validate:"required,date"`
	DateOfBirth string           `json:"date_of_birth" validate:"required,date"`
	Salary      *decimal.Decimal `json:"salary" validate:"required,positive,dp2"`
	Photo       *PhotoUpload     `json:"-" validate:"-"`
}

var employeeMessages = validator.Messages{
	"name.required":          "Name is required",
	"name.min":               "Name must be at least 2 characters long",
	"name.max":               "Name cannot exceed 255 characters",
	"age.required":           "Age is required",
	"age.gte":                "Age must be at least 18",
	"age.lte":                "Age cannot exceed 100",
	"designation.required":   "Designation is required",
	"designation.min":        "Designation must be at least 2 characters long",
	"designation.max":        "Designation cannot exceed 255 characters",
	"hiring_date.required":   "Hiring date is required",
	"hiring_date.date":       "Hiring date must be in YYYY-MM-DD format",
	"date_of_birth.required": "Date of birth is required",
	"date_of_birth.date":     "Date of birth must be in YYYY-MM-DD format",
	"salary.required":        "Salary is required",
	"salary.positive":        "Salary must be a positive number",
	"salary.dp2":             "Salary can have maximum 2 decimal places",
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Designation = strings.TrimSpace(r.Designation)

	var errs validator.ValidationErrors
	if err := validator.Struct(r, employeeMessages); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	r.Photo.validate(&errs)
	return errs.Err()
}

// ToEntity converts a validated request into a new active employee.
func (r *CreateEmployeeRequest) ToEntity() Employee {
	hiringDate, _ := time.Parse(DateLayout, r.HiringDate)
	dateOfBirth, _ := time.Parse(DateLayout, r.DateOfBirth)

	return Employee{
		Name:        r.Name,
		Age:         *r.Age,
		Designation: r.Designation,
		HiringDate:  hiringDate,
		DateOfBirth: dateOfBirth,
		Salary:      r.Salary.Round(2),
		Status:      StatusActive,
	}
}

// UpdateEmployeeRequest carries a partial update; nil fields are left untouched.
type UpdateEmployeeRequest struct {
	Name        *string          `json:"name" validate:"omitnil,min=2,max=255"`
	Age         *int             `json:"age" validate:"omitnil,gte=18,lte=100"`
	Designation *string          `json:"designation" validate:"omitnil,min=2,max=255"`
	HiringDate  *string          `json:"hiring_date" validate:"omitnil,date"`
	DateOfBirth *string          `json:"date_of_birth" validate:"omitnil,date"`
	Salary      *decimal.Decimal `json:"salary" validate:"omitnil,positive,dp2"`
	Photo       *PhotoUpload     `json:"-" validate:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	if r.Designation != nil {
		trimmed := strings.TrimSpace(*r.Designation)
		r.Designation = &trimmed
	}

	var errs validator.ValidationErrors
	if err := validator.Struct(r, employeeMessages); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	r.Photo.validate(&errs)
	return errs.Err()
}

type EmployeeFilter struct {
	Search      string           `query:"search"`
	Designation string           `query:"designation"`
	MinAge      *int             `query:"min_age" validate:"omitnil,gte=18"`
	MaxAge      *int             `query:"max_age" validate:"omitnil,lte=100"`
	MinSalary   *decimal.Decimal `query:"min_salary" validate:"omitnil,positive"`
	MaxSalary   *decimal.Decimal `query:"max_salary" validate:"omitnil,positive"`
	Page        int              `query:"page" validate:"gte=1"`
	Limit       int              `query:"limit" validate:"gte=1,lte=100"`
}

var filterMessages = validator.Messages{
	"min_age.gte":         "Minimum age must be at least 18",
	"max_age.lte":         "Maximum age cannot exceed 100",
	"min_salary.positive": "Minimum salary must be a positive number",
	"max_salary.positive": "Maximum salary must be a positive number",
	"page.gte":            "Page must be at least 1",
	"limit.gte":           "Limit must be at least 1",
	"limit.lte":           "Limit cannot exceed 100",
}

// NewEmployeeFilter returns a filter with the default page and limit.
func NewEmployeeFilter() EmployeeFilter {
	return EmployeeFilter{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
}

func (f *EmployeeFilter) Validate() error {
	f.Search = strings.TrimSpace(f.Search)
	f.Designation = strings.TrimSpace(f.Designation)

	var errs validator.ValidationErrors
	if err := validator.Struct(f, filterMessages); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = fieldErrs
	}
	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		errs.Add("min_age", "Minimum age cannot be greater than maximum age")
	}
	if f.MinSalary != nil && f.MaxSalary != nil && f.MinSalary.GreaterThan(*f.MaxSalary) {
		errs.Add("min_salary", "Minimum salary cannot be greater than maximum salary")
	}
	return errs.Err()
}

type EmployeeResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Age         int        `json:"age"`
	Designation string     `json:"designation"`
	HiringDate  string     `json:"hiring_date"`
	DateOfBirth string     `json:"date_of_birth"`
	Salary      string     `json:"salary"`
	PhotoPath   *string    `json:"photo_path"`
	PhotoURL    *string    `json:"photo_url"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// NewEmployeeResponse renders e; photoURL is resolved by the caller's storage backend.
func NewEmployeeResponse(e Employee, photoURL *string) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Age:         e.Age,
		Designation: e.Designation,
		HiringDate:  e.HiringDate.Format(DateLayout),
		DateOfBirth: e.DateOfBirth.Format(DateLayout),
		Salary:      e.Salary.StringFixed(2),
		PhotoPath:   e.PhotoPath,
		PhotoURL:    photoURL,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		DeletedAt:   e.DeletedAt,
	}
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse    `json:"data"`
	Pagination pagination.Pagination `json:"pagination"`
}
