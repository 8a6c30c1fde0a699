package services

import (
	"context"
	"strings"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/repositories"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

// CityService defines city directory operations
type CityService interface {
	Create(ctx context.Context, name, code string) (*models.City, error)
	Update(ctx context.Context, id int64, name, code string) (*models.City, error)
	Toggle(ctx context.Context, id int64) (*models.City, error)
	List(ctx context.Context, activeOnly bool) ([]*models.City, error)
}

// cityServiceImpl implements CityService
type cityServiceImpl struct {
	cityRepo repositories.ICityRepository
}

// NewCityService creates a new city service
func NewCityService(cityRepo repositories.ICityRepository) CityService {
	return &cityServiceImpl{
		cityRepo: cityRepo,
	}
}

// validateDirectoryEntry checks a shared name/code pair used by both the
// city and department directories.
func validateDirectoryEntry(name, code string) (string, string, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return "", "", apperrors.NewValidationError("name", "Name cannot be empty")
	}
	if code == "" {
		return "", "", apperrors.NewValidationError("code", "Code cannot be empty")
	}
	if !isValidShortCode(code) {
		return "", "", apperrors.NewValidationError("code", "Code must be uppercase letters and digits")
	}
	return name, code, nil
}

// isValidShortCode checks that a directory short code is uppercase
// alphanumeric
func isValidShortCode(code string) bool {
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return len(code) > 0
}

// Create adds a new city, active by default
func (s *cityServiceImpl) Create(ctx context.Context, name, code string) (*models.City, error) {
	name, code, err := validateDirectoryEntry(name, code)
	if err != nil {
		return nil, err
	}

	city := &models.City{
		Name:     name,
		Code:     code,
		IsActive: true,
	}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, err
	}

	return city, nil
}

// Update changes a city's name and code
func (s *cityServiceImpl) Update(ctx context.Context, id int64, name, code string) (*models.City, error) {
	name, code, err := validateDirectoryEntry(name, code)
	if err != nil {
		return nil, err
	}

	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	city.Name = name
	city.Code = code
	if err := s.cityRepo.Update(ctx, city); err != nil {
		return nil, err
	}

	return city, nil
}

// Toggle flips a city between active and inactive. Cities are never
// hard-deleted because complaints keep referencing them.
func (s *cityServiceImpl) Toggle(ctx context.Context, id int64) (*models.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cityRepo.SetActive(ctx, id, !city.IsActive); err != nil {
		return nil, err
	}

	city.IsActive = !city.IsActive
	return city, nil
}

// List returns cities, restricted to active ones for public callers
func (s *cityServiceImpl) List(ctx context.Context, activeOnly bool) ([]*models.City, error) {
	return s.cityRepo.GetAll(ctx, activeOnly)
}
