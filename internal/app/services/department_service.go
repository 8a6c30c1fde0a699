package services

import (
	"context"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/repositories"
)

// DepartmentService defines department directory operations
type DepartmentService interface {
	Create(ctx context.Context, name, code string) (*models.Department, error)
	Update(ctx context.Context, id int64, name, code string) (*models.Department, error)
	Toggle(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Department, error)
}

// departmentServiceImpl implements DepartmentService
type departmentServiceImpl struct {
	departmentRepo repositories.IDepartmentRepository
}

// NewDepartmentService creates a new department service
func NewDepartmentService(departmentRepo repositories.IDepartmentRepository) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
	}
}

// Create adds a new department, active by default
func (s *departmentServiceImpl) Create(ctx context.Context, name, code string) (*models.Department, error) {
	name, code, err := validateDirectoryEntry(name, code)
	if err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:     name,
		Code:     code,
		IsActive: true,
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

// Update changes a department's name and code
func (s *departmentServiceImpl) Update(ctx context.Context, id int64, name, code string) (*models.Department, error) {
	name, code, err := validateDirectoryEntry(name, code)
	if err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	department.Name = name
	department.Code = code
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

// Toggle flips a department between active and inactive
func (s *departmentServiceImpl) Toggle(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.departmentRepo.SetActive(ctx, id, !department.IsActive); err != nil {
		return nil, err
	}

	department.IsActive = !department.IsActive
	return department, nil
}

// List returns departments, restricted to active ones for public callers
func (s *departmentServiceImpl) List(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx, activeOnly)
}
