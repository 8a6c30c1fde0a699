package services

import (
	"context"
	"strings"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/repositories"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// AccessCodeService defines staff access code operations
type AccessCodeService interface {
	Generate(ctx context.Context, cityID, departmentID int64, year int, staffPhone string) (*models.StaffAccessCode, error)
	Validate(ctx context.Context, code string, cityID, departmentID int64) (*models.StaffAccessCode, error)
	List(ctx context.Context) ([]*models.StaffAccessCode, error)
	Toggle(ctx context.Context, id int64) (*models.StaffAccessCode, error)
	Delete(ctx context.Context, id int64) error
}

// accessCodeServiceImpl implements AccessCodeService
type accessCodeServiceImpl struct {
	accessCodeRepo repositories.IAccessCodeRepository
	cityRepo       repositories.ICityRepository
	departmentRepo repositories.IDepartmentRepository
}

// NewAccessCodeService creates a new access code service
func NewAccessCodeService(
	accessCodeRepo repositories.IAccessCodeRepository,
	cityRepo repositories.ICityRepository,
	departmentRepo repositories.IDepartmentRepository,
) AccessCodeService {
	return &accessCodeServiceImpl{
		accessCodeRepo: accessCodeRepo,
		cityRepo:       cityRepo,
		departmentRepo: departmentRepo,
	}
}

// Generate issues an access code for a city and department pairing. The code
// value derives from the city and department short codes plus the year, so a
// pairing gets at most one code per year.
func (s *accessCodeServiceImpl) Generate(ctx context.Context, cityID, departmentID int64, year int, staffPhone string) (*models.StaffAccessCode, error) {
	city, err := s.cityRepo.GetByID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	code := &models.StaffAccessCode{
		Code:         models.FormatAccessCode(city.Code, department.Code, year),
		CityID:       city.ID,
		DepartmentID: department.ID,
		Year:         year,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(staffPhone); phone != "" {
		code.StaffPhone = &phone
	}

	if err := s.accessCodeRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	code.City = city
	code.Department = department
	logger.Info().Str("code", code.Code).Msg("Staff access code generated")
	return code, nil
}

// Validate checks that a code exists, is active, and was issued for the
// given city and department. All failure modes collapse into one error so
// registration attempts cannot probe which part was wrong.
func (s *accessCodeServiceImpl) Validate(ctx context.Context, code string, cityID, departmentID int64) (*models.StaffAccessCode, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, apperrors.ErrAccessCodeInvalid
	}

	return s.accessCodeRepo.FindValid(ctx, trimmed, cityID, departmentID)
}

// List returns all access codes with city and department names
func (s *accessCodeServiceImpl) List(ctx context.Context) ([]*models.StaffAccessCode, error) {
	return s.accessCodeRepo.List(ctx)
}

// Toggle flips an access code between active and inactive
func (s *accessCodeServiceImpl) Toggle(ctx context.Context, id int64) (*models.StaffAccessCode, error) {
	code, err := s.accessCodeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.accessCodeRepo.SetActive(ctx, id, !code.IsActive); err != nil {
		return nil, err
	}

	code.IsActive = !code.IsActive
	return code, nil
}

// Delete removes an access code. Staff accounts already registered with it
// keep their scope.
func (s *accessCodeServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.accessCodeRepo.Delete(ctx, id)
}
