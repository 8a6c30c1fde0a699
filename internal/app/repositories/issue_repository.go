package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/db"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// IIssueRepository defines complaint persistence operations. Writes that
// touch several tables at once run inside a single transaction.
type IIssueRepository interface {
	CreateWithSideEffects(ctx context.Context, issue *models.Issue, image *models.IssueImage, notifications []*models.Notification) error
	UpdateStatusWithNotifications(ctx context.Context, issueID int64, status models.IssueStatus, assignedStaffID *int64, notifications []*models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Issue, error)
	GetDetail(ctx context.Context, id int64) (*models.Issue, error)
	ListByCitizen(ctx context.Context, citizenID int64) ([]*models.Issue, error)
	ListScoped(ctx context.Context, cityID, departmentID int64, status models.IssueStatus, filtered bool) ([]*models.Issue, error)
	CountsByCitizen(ctx context.Context, citizenID int64) (*models.IssueCounts, error)
	CountsAll(ctx context.Context) (*models.IssueCounts, error)
}

// IssueRepository handles database operations for complaints
type IssueRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(database *db.PostgresDB) *IssueRepository {
	return &IssueRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithSideEffects inserts a complaint together with its optional image
// and the submission notifications in one transaction.
func (r *IssueRepository) CreateWithSideEffects(ctx context.Context, issue *models.Issue, image *models.IssueImage, notifications []*models.Notification) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO issues (title, description, city_id, department_id, location_text, status, citizen_id, assigned_staff_id, contact_phone, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`

		now := time.Now()
		err := tx.QueryRow(ctx, query,
			issue.Title,
			issue.Description,
			issue.CityID,
			issue.DepartmentID,
			issue.LocationText,
			issue.Status,
			issue.CitizenID,
			issue.AssignedStaffID,
			issue.ContactPhone,
			now,
		).Scan(&issue.ID)
		if err != nil {
			return fmt.Errorf("error creating issue: %w", err)
		}
		issue.CreatedAt = now

		if image != nil {
			image.IssueID = issue.ID
			err := tx.QueryRow(ctx,
				`INSERT INTO issue_images (issue_id, image_url, uploaded_at) VALUES ($1, $2, $3) RETURNING id`,
				image.IssueID, image.ImageURL, now,
			).Scan(&image.ID)
			if err != nil {
				return fmt.Errorf("error saving issue image: %w", err)
			}
			image.UploadedAt = now
			issue.Images = append(issue.Images, *image)
		}

		for _, n := range notifications {
			n.IssueID = &issue.ID
		}
		return insertNotificationsTx(ctx, tx, notifications)
	})
}

// UpdateStatusWithNotifications updates a complaint's status, records the
// acting staff member as assignee, and persists the fan-out notifications
// atomically.
func (r *IssueRepository) UpdateStatusWithNotifications(ctx context.Context, issueID int64, status models.IssueStatus, assignedStaffID *int64, notifications []*models.Notification) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE issues SET status = $1, assigned_staff_id = COALESCE($2, assigned_staff_id) WHERE id = $3`,
			status, assignedStaffID, issueID,
		)
		if err != nil {
			return fmt.Errorf("error updating issue status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrIssueNotFound
		}

		return insertNotificationsTx(ctx, tx, notifications)
	})
}

const issueColumns = `i.id, i.title, i.description, i.city_id, i.department_id, i.location_text, i.status, i.citizen_id, i.assigned_staff_id, i.contact_phone, i.created_at`

func scanIssue(row pgx.Row) (*models.Issue, error) {
	var issue models.Issue
	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.CityID,
		&issue.DepartmentID,
		&issue.LocationText,
		&issue.Status,
		&issue.CitizenID,
		&issue.AssignedStaffID,
		&issue.ContactPhone,
		&issue.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetByID retrieves a complaint without its related rows
func (r *IssueRepository) GetByID(ctx context.Context, id int64) (*models.Issue, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues i WHERE i.id = $1`, issueColumns)

	issue, err := scanIssue(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving issue: %w", err)
	}

	return issue, nil
}

// GetDetail retrieves a complaint with its city, department and citizen
// names, attached images and rating.
func (r *IssueRepository) GetDetail(ctx context.Context, id int64) (*models.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.name, d.name, u.full_name
		FROM issues i
		JOIN cities c ON c.id = i.city_id
		JOIN departments d ON d.id = i.department_id
		JOIN users u ON u.id = i.citizen_id
		WHERE i.id = $1
	`, issueColumns)

	var issue models.Issue
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.CityID,
		&issue.DepartmentID,
		&issue.LocationText,
		&issue.Status,
		&issue.CitizenID,
		&issue.AssignedStaffID,
		&issue.ContactPhone,
		&issue.CreatedAt,
		&issue.CityName,
		&issue.DepartmentName,
		&issue.CitizenName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrIssueNotFound
		}
		return nil, fmt.Errorf("error retrieving issue detail: %w", err)
	}

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.Images = images

	rating, err := r.getRating(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.Rating = rating

	return &issue, nil
}

func (r *IssueRepository) listImages(ctx context.Context, issueID int64) ([]models.IssueImage, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, issue_id, image_url, uploaded_at FROM issue_images WHERE issue_id = $1 ORDER BY id ASC`,
		issueID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing issue images: %w", err)
	}
	defer rows.Close()

	var images []models.IssueImage
	for rows.Next() {
		var img models.IssueImage
		if err := rows.Scan(&img.ID, &img.IssueID, &img.ImageURL, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *IssueRepository) getRating(ctx context.Context, issueID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, issue_id, stars, comment, created_at FROM ratings WHERE issue_id = $1`,
		issueID,
	).Scan(&rating.ID, &rating.IssueID, &rating.Stars, &rating.Comment, &rating.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving issue rating: %w", err)
	}
	return &rating, nil
}

// ListByCitizen retrieves all complaints submitted by a citizen, newest first
func (r *IssueRepository) ListByCitizen(ctx context.Context, citizenID int64) ([]*models.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.name, d.name
		FROM issues i
		JOIN cities c ON c.id = i.city_id
		JOIN departments d ON d.id = i.department_id
		WHERE i.citizen_id = $1
		ORDER BY i.created_at DESC, i.id DESC
	`, issueColumns)

	rows, err := r.db.Pool.Query(ctx, query, citizenID)
	if err != nil {
		return nil, fmt.Errorf("error listing citizen issues: %w", err)
	}
	defer rows.Close()

	return collectIssuesWithNames(rows, false)
}

// ListScoped retrieves complaints routed to a city and department, newest
// first, optionally filtered by status.
func (r *IssueRepository) ListScoped(ctx context.Context, cityID, departmentID int64, status models.IssueStatus, filtered bool) ([]*models.Issue, error) {
	builder := r.sb.Select(
		"i.id", "i.title", "i.description", "i.city_id", "i.department_id", "i.location_text",
		"i.status", "i.citizen_id", "i.assigned_staff_id", "i.contact_phone", "i.created_at",
		"c.name", "d.name", "u.full_name",
	).
		From("issues i").
		Join("cities c ON c.id = i.city_id").
		Join("departments d ON d.id = i.department_id").
		Join("users u ON u.id = i.citizen_id").
		Where(squirrel.Eq{"i.city_id": cityID, "i.department_id": departmentID}).
		OrderBy("i.created_at DESC", "i.id DESC")

	if filtered {
		builder = builder.Where(squirrel.Eq{"i.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build scoped issue query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing scoped issues: %w", err)
	}
	defer rows.Close()

	return collectIssuesWithNames(rows, true)
}

func collectIssuesWithNames(rows pgx.Rows, withCitizen bool) ([]*models.Issue, error) {
	var issues []*models.Issue
	for rows.Next() {
		var issue models.Issue
		dest := []interface{}{
			&issue.ID,
			&issue.Title,
			&issue.Description,
			&issue.CityID,
			&issue.DepartmentID,
			&issue.LocationText,
			&issue.Status,
			&issue.CitizenID,
			&issue.AssignedStaffID,
			&issue.ContactPhone,
			&issue.CreatedAt,
			&issue.CityName,
			&issue.DepartmentName,
		}
		if withCitizen {
			dest = append(dest, &issue.CitizenName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		issues = append(issues, &issue)
	}

	return issues, rows.Err()
}

// CountsByCitizen returns per-status complaint counts for one citizen
func (r *IssueRepository) CountsByCitizen(ctx context.Context, citizenID int64) (*models.IssueCounts, error) {
	return r.counts(ctx, `WHERE citizen_id = $1`, citizenID)
}

// CountsAll returns per-status complaint counts across the system
func (r *IssueRepository) CountsAll(ctx context.Context) (*models.IssueCounts, error) {
	return r.counts(ctx, ``)
}

func (r *IssueRepository) counts(ctx context.Context, where string, args ...interface{}) (*models.IssueCounts, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Pending'),
		       COUNT(*) FILTER (WHERE status = 'InProgress'),
		       COUNT(*) FILTER (WHERE status = 'Resolved')
		FROM issues %s
	`, where)

	var counts models.IssueCounts
	err := r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.InProgress,
		&counts.Resolved,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting issues")
		return nil, fmt.Errorf("error counting issues: %w", err)
	}

	return &counts, nil
}
