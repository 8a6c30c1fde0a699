package seed

import (
	"context"
	"errors"
	"time"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/repositories"
	"github.com/citycare/citycare/internal/db"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/auth"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// DefaultAdminEmail is the seeded administrator account
const DefaultAdminEmail = "admin@citycare.com"

var defaultCities = []models.City{
	{Name: "Kandy", Code: "KDY", IsActive: true},
	{Name: "Badulla", Code: "BDL", IsActive: true},
}

var defaultDepartments = []models.Department{
	{Name: "Water Supply", Code: "WTR", IsActive: true},
	{Name: "Garbage Collection", Code: "GRB", IsActive: true},
}

// CreateDefaultData seeds the admin account, the default cities and
// departments, and a staff access code for every city/department pairing.
// Everything is idempotent: existing rows are kept.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, adminPassword string) error {
	repos := repositories.NewRepositories(database)
	var finalErr error

	logger.Info().Msg("Checking/Creating default data...")

	cities := make([]*models.City, 0, len(defaultCities))
	for _, city := range defaultCities {
		c := city
		err := repos.CityRepository.Create(ctx, &c)
		switch {
		case err == nil:
			cities = append(cities, &c)
		case errors.Is(err, apperrors.ErrCityCodeExists):
			existing, errGet := repos.CityRepository.GetByCode(ctx, c.Code)
			if errGet != nil {
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			cities = append(cities, existing)
		default:
			logger.Error().Err(err).Str("city", c.Name).Msg("Error seeding city")
			finalErr = errors.Join(finalErr, err)
		}
	}

	departments := make([]*models.Department, 0, len(defaultDepartments))
	for _, department := range defaultDepartments {
		d := department
		err := repos.DepartmentRepository.Create(ctx, &d)
		switch {
		case err == nil:
			departments = append(departments, &d)
		case errors.Is(err, apperrors.ErrDepartmentCodeExists):
			all, errGet := repos.DepartmentRepository.GetAll(ctx, false)
			if errGet != nil {
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			for _, existing := range all {
				if existing.Code == d.Code {
					departments = append(departments, existing)
					break
				}
			}
		default:
			logger.Error().Err(err).Str("department", d.Name).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// One access code per city/department pairing for the current year
	year := time.Now().Year()
	for _, city := range cities {
		for _, department := range departments {
			code := &models.StaffAccessCode{
				Code:         models.FormatAccessCode(city.Code, department.Code, year),
				CityID:       city.ID,
				DepartmentID: department.ID,
				Year:         year,
				IsActive:     true,
			}
			if err := repos.AccessCodeRepository.Create(ctx, code); err != nil && !errors.Is(err, apperrors.ErrAccessCodeExists) {
				logger.Error().Err(err).Str("code", code.Code).Msg("Error seeding access code")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if err := seedAdmin(ctx, repos, adminPassword); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdmin(ctx context.Context, repos *repositories.Repositories, adminPassword string) error {
	exists, err := repos.UserRepository.EmailExists(ctx, DefaultAdminEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    DefaultAdminEmail,
		Password: hashed,
		FullName: "System Administrator",
		RoleType: models.RoleAdmin,
		IsActive: true,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("email", DefaultAdminEmail).Msg("Default admin account created")
	return nil
}
