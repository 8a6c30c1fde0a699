package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/dberrors"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// IAccessCodeRepository defines staff access code persistence operations
type IAccessCodeRepository interface {
	Create(ctx context.Context, code *models.StaffAccessCode) error
	GetByID(ctx context.Context, id int64) (*models.StaffAccessCode, error)
	FindValid(ctx context.Context, code string, cityID, departmentID int64) (*models.StaffAccessCode, error)
	List(ctx context.Context) ([]*models.StaffAccessCode, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// AccessCodeRepository handles database operations for staff access codes
type AccessCodeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAccessCodeRepository creates a new access code repository
func NewAccessCodeRepository(db *pgxpool.Pool) *AccessCodeRepository {
	return &AccessCodeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new staff access code. A code is unique both by value and
// by its (city, department, year) combination.
func (r *AccessCodeRepository) Create(ctx context.Context, code *models.StaffAccessCode) error {
	sql, args, err := r.sb.Insert("staff_access_codes").
		Columns("code", "city_id", "department_id", "year", "is_active", "staff_phone", "created_at").
		Values(code.Code, code.CityID, code.DepartmentID, code.Year, code.IsActive, code.StaffPhone, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create access code query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAccessCodeExists
		}
		logger.Error().Err(err).Str("code", code.Code).Msg("Error creating access code")
		return fmt.Errorf("error creating access code: %w", err)
	}

	return nil
}

// GetByID retrieves an access code by ID
func (r *AccessCodeRepository) GetByID(ctx context.Context, id int64) (*models.StaffAccessCode, error) {
	query := `
		SELECT id, code, city_id, department_id, year, is_active, staff_phone, created_at
		FROM staff_access_codes
		WHERE id = $1
	`

	var code models.StaffAccessCode
	err := r.db.QueryRow(ctx, query, id).Scan(
		&code.ID,
		&code.Code,
		&code.CityID,
		&code.DepartmentID,
		&code.Year,
		&code.IsActive,
		&code.StaffPhone,
		&code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccessCodeNotFound
		}
		return nil, fmt.Errorf("error retrieving access code: %w", err)
	}

	return &code, nil
}

// FindValid looks up an active access code matching the given value, city and
// department. A code issued for a different scope does not match.
func (r *AccessCodeRepository) FindValid(ctx context.Context, code string, cityID, departmentID int64) (*models.StaffAccessCode, error) {
	sql, args, err := r.sb.Select("id", "code", "city_id", "department_id", "year", "is_active", "staff_phone", "created_at").
		From("staff_access_codes").
		Where(squirrel.Eq{
			"code":          code,
			"city_id":       cityID,
			"department_id": departmentID,
			"is_active":     true,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build access code lookup: %w", err)
	}

	var result models.StaffAccessCode
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&result.ID,
		&result.Code,
		&result.CityID,
		&result.DepartmentID,
		&result.Year,
		&result.IsActive,
		&result.StaffPhone,
		&result.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccessCodeInvalid
		}
		return nil, fmt.Errorf("error looking up access code: %w", err)
	}

	return &result, nil
}

// List retrieves all access codes with their city and department names
func (r *AccessCodeRepository) List(ctx context.Context) ([]*models.StaffAccessCode, error) {
	query := `
		SELECT ac.id, ac.code, ac.city_id, ac.department_id, ac.year, ac.is_active, ac.staff_phone, ac.created_at,
		       c.id, c.name, c.code, c.is_active,
		       d.id, d.name, d.code, d.is_active
		FROM staff_access_codes ac
		JOIN cities c ON c.id = ac.city_id
		JOIN departments d ON d.id = ac.department_id
		ORDER BY ac.created_at DESC, ac.id DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []*models.StaffAccessCode
	for rows.Next() {
		var code models.StaffAccessCode
		var city models.City
		var department models.Department
		if err := rows.Scan(
			&code.ID,
			&code.Code,
			&code.CityID,
			&code.DepartmentID,
			&code.Year,
			&code.IsActive,
			&code.StaffPhone,
			&code.CreatedAt,
			&city.ID, &city.Name, &city.Code, &city.IsActive,
			&department.ID, &department.Name, &department.Code, &department.IsActive,
		); err != nil {
			return nil, err
		}
		code.City = &city
		code.Department = &department
		codes = append(codes, &code)
	}

	return codes, rows.Err()
}

// SetActive toggles an access code's active flag
func (r *AccessCodeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE staff_access_codes SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("error updating access code state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccessCodeNotFound
	}
	return nil
}

// Delete removes an access code
func (r *AccessCodeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM staff_access_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting access code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccessCodeNotFound
	}
	return nil
}

// Count returns the total number of access codes
func (r *AccessCodeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff_access_codes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting access codes: %w", err)
	}
	return count, nil
}
