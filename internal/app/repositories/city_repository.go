package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/dberrors"
)

// ICityRepository defines city persistence operations
type ICityRepository interface {
	Create(ctx context.Context, city *models.City) error
	GetByID(ctx context.Context, id int64) (*models.City, error)
	GetByCode(ctx context.Context, code string) (*models.City, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*models.City, error)
	Update(ctx context.Context, city *models.City) error
	SetActive(ctx context.Context, id int64, active bool) error
	Count(ctx context.Context) (int64, error)
}

// CityRepository handles database operations for cities
type CityRepository struct {
	db *pgxpool.Pool
}

// NewCityRepository creates a new city repository
func NewCityRepository(db *pgxpool.Pool) *CityRepository {
	return &CityRepository{
		db: db,
	}
}

// Create creates a new city
func (r *CityRepository) Create(ctx context.Context, city *models.City) error {
	query := `
		INSERT INTO cities (name, code, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, city.Name, city.Code, city.IsActive).Scan(&city.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCityCodeExists
		}
		return fmt.Errorf("error creating city: %w", err)
	}

	return nil
}

// GetByID retrieves a city by ID
func (r *CityRepository) GetByID(ctx context.Context, id int64) (*models.City, error) {
	query := `
		SELECT id, name, code, is_active
		FROM cities
		WHERE id = $1
	`

	var city models.City
	err := r.db.QueryRow(ctx, query, id).Scan(&city.ID, &city.Name, &city.Code, &city.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, fmt.Errorf("error retrieving city: %w", err)
	}

	return &city, nil
}

// GetByCode retrieves a city by its short code
func (r *CityRepository) GetByCode(ctx context.Context, code string) (*models.City, error) {
	query := `
		SELECT id, name, code, is_active
		FROM cities
		WHERE code = $1
	`

	var city models.City
	err := r.db.QueryRow(ctx, query, code).Scan(&city.ID, &city.Name, &city.Code, &city.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, fmt.Errorf("error retrieving city by code: %w", err)
	}

	return &city, nil
}

// GetAll retrieves cities, optionally restricted to active ones
func (r *CityRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.City, error) {
	query := `
		SELECT id, name, code, is_active
		FROM cities
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []*models.City
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name, &city.Code, &city.IsActive); err != nil {
			return nil, err
		}
		cities = append(cities, &city)
	}

	return cities, rows.Err()
}

// Update updates a city's name and code
func (r *CityRepository) Update(ctx context.Context, city *models.City) error {
	query := `
		UPDATE cities
		SET name = $1, code = $2
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, city.Name, city.Code, city.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCityCodeExists
		}
		return fmt.Errorf("error updating city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCityNotFound
	}

	return nil
}

// SetActive toggles a city's active flag
func (r *CityRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE cities SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating city state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCityNotFound
	}
	return nil
}

// Count returns the total number of cities
func (r *CityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cities`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting cities: %w", err)
	}
	return count, nil
}
