package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	RestoreEmployee(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	maxPhotoSize    int64
}

func NewEmployeeHandler(employeeService employee.EmployeeService, maxPhotoSize int64) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		maxPhotoSize:    maxPhotoSize,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := newQueryReader(r.URL.Query())

	filter := employee.NewEmployeeFilter()
	filter.Search = q.String("search")
	filter.Designation = q.String("designation")
	filter.MinAge = q.OptionalInt("min_age", "Minimum age")
	filter.MaxAge = q.OptionalInt("max_age", "Maximum age")
	filter.MinSalary = q.OptionalDecimal("min_salary", "Minimum salary")
	filter.MaxSalary = q.OptionalDecimal("max_salary", "Maximum salary")
	q.Int("page", "Page", &filter.Page)
	q.Int("limit", "Limit", &filter.Limit)

	if err := q.merge(filter.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Employees retrieved successfully", result)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Employee retrieved successfully", result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	fields, photo, cleanup, ok := h.readEmployeeBody(w, r)
	if !ok {
		return
	}
	defer cleanup()

	f := &fieldReader{values: fields}
	req := employee.CreateEmployeeRequest{
		Name:        f.String("name"),
		Age:         f.OptionalInt("age", "Age"),
		Designation: f.String("designation"),
		HiringDate:  f.String("hiring_date"),
		DateOfBirth: f.String("date_of_birth"),
		Salary:      f.OptionalDecimal("salary", "Salary"),
		Photo:       photo,
	}

	if err := f.merge(req.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	// A missing or deleted employee is reported before the body is looked at.
	if _, err := h.employeeService.GetEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	fields, photo, cleanup, ok := h.readEmployeeBody(w, r)
	if !ok {
		return
	}
	defer cleanup()

	f := &fieldReader{values: fields}
	req := employee.UpdateEmployeeRequest{
		Name:        f.OptionalString("name"),
		Age:         f.OptionalInt("age", "Age"),
		Designation: f.OptionalString("designation"),
		HiringDate:  f.OptionalString("hiring_date"),
		DateOfBirth: f.OptionalString("date_of_birth"),
		Salary:      f.OptionalDecimal("salary", "Salary"),
		Photo:       photo,
	}

	if err := f.merge(req.Validate()); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("UpdateEmployee service error", "employee_id", id, "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Employee updated successfully", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Employee deleted successfully", nil)
}

// RestoreEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) RestoreEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	result, err := h.employeeService.RestoreEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, "Employee restored successfully", result)
}

// readEmployeeBody reads the employee fields and the optional "photo" file.
// cleanup releases the multipart temp files and must be deferred when ok.
func (h *employeeHandlerImpl) readEmployeeBody(w http.ResponseWriter, r *http.Request) (map[string]string, *employee.PhotoUpload, func(), bool) {
	if isMultipart(r) {
		// Allow the file through so the size rule reports it, but bound the body.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxPhotoSize+multipartMemory)
	}

	fields, err := readFields(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			var errs validator.ValidationErrors
			errs.Add("photo", "Photo cannot exceed "+validator.Itoa(int(h.maxPhotoSize>>20))+" MB")
			response.HandleError(w, errs)
			return nil, nil, nil, false
		}
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, nil, false
	}

	cleanup := func() {}
	if r.MultipartForm == nil {
		return fields, nil, cleanup, true
	}
	cleanup = func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("Failed to remove multipart temp files", "error", err)
		}
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			cleanup()
			response.BadRequest(w, "Invalid request format", nil)
			return nil, nil, nil, false
		}
		return fields, nil, cleanup, true
	}

	photo := &employee.PhotoUpload{
		File:     file,
		Filename: header.Filename,
		Size:     header.Size,
		MaxSize:  h.maxPhotoSize,
	}
	release := cleanup
	cleanup = func() {
		file.Close()
		release()
	}
	return fields, photo, cleanup, true
}
