package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hr-backend-go/internal/service/file"
)

// CleanupRecorder counts the outcome of photo removals.
type CleanupRecorder interface {
	PhotoCleanup(ok bool)
}

type noopRecorder struct{}

func (noopRecorder) PhotoCleanup(bool) {}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
	recorder     CleanupRecorder
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	recorder CleanupRecorder,
) *EmployeeServiceImpl {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		fileService:  fileService,
		recorder:     recorder,
	}
}

func (s *EmployeeServiceImpl) toResponse(ctx context.Context, e employee.Employee) employee.EmployeeResponse {
	var photoURL *string
	if e.PhotoPath != nil {
		url, err := s.fileService.GetFileURL(ctx, *e.PhotoPath)
		if err != nil {
			slog.Warn("Failed to resolve employee photo URL", "employee_id", e.ID, "path", *e.PhotoPath, "error", err)
		} else {
			photoURL = &url
		}
	}
	return employee.NewEmployeeResponse(e, photoURL)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	employees, total, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, s.toResponse(ctx, e))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		Pagination: pagination.New(filter.Page, filter.Limit, total),
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	photo, err := s.stagePhoto(ctx, req.Photo)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	defer photo.release(ctx)

	newEmployee := req.ToEntity()
	newEmployee.PhotoPath = photo.pathOrNil()

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	photo.commit()

	slog.Info("Employee created", "employee_id", created.ID)
	return s.toResponse(ctx, created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	photo, err := s.stagePhoto(ctx, req.Photo)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	defer photo.release(ctx)

	updated, previousPhoto, err := s.employeeRepo.Update(ctx, id, req, photo.pathOrNil())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	photo.commit()

	if photo.path != "" && previousPhoto != nil && *previousPhoto != photo.path {
		s.removePhoto(ctx, *previousPhoto)
	}

	return s.toResponse(ctx, updated), nil
}

// DeleteEmployee implements employee.EmployeeService. The photo is kept so the
// employee can be restored with it.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// RestoreEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RestoreEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	restored, err := s.employeeRepo.Restore(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	slog.Info("Employee restored", "employee_id", id)
	return s.toResponse(ctx, restored), nil
}

// stagedPhoto is an uploaded file that is removed again unless committed.
type stagedPhoto struct {
	svc       *EmployeeServiceImpl
	path      string
	committed bool
}

func (s *EmployeeServiceImpl) stagePhoto(ctx context.Context, upload *employee.PhotoUpload) (*stagedPhoto, error) {
	staged := &stagedPhoto{svc: s}
	if upload == nil {
		return staged, nil
	}

	path, err := s.fileService.UploadEmployeePhoto(ctx, upload.File, upload.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store employee photo: %w", err)
	}
	staged.path = path
	return staged, nil
}

func (p *stagedPhoto) pathOrNil() *string {
	if p.path == "" {
		return nil
	}
	path := p.path
	return &path
}

func (p *stagedPhoto) commit() {
	p.committed = true
}

func (p *stagedPhoto) release(ctx context.Context) {
	if p.path == "" || p.committed {
		return
	}
	p.svc.removePhoto(ctx, p.path)
}

// removePhoto deletes a stored photo. Failures are logged and counted only.
func (s *EmployeeServiceImpl) removePhoto(ctx context.Context, path string) {
	err := s.fileService.DeleteFile(context.WithoutCancel(ctx), path)
	s.recorder.PhotoCleanup(err == nil)
	if err != nil {
		slog.Warn("Failed to remove employee photo", "path", path, "error", err)
	}
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)
