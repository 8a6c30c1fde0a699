package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/repositories"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// IssueService defines complaint lifecycle operations. Every method takes
// the acting user explicitly; authorization decisions never read ambient
// state.
type IssueService interface {
	Create(ctx context.Context, actor models.Actor, req *dto.CreateIssueRequest, imageURL *string) (*models.Issue, error)
	ListForCitizen(ctx context.Context, actor models.Actor) ([]*models.Issue, error)
	GetForCitizen(ctx context.Context, actor models.Actor, id int64) (*models.Issue, error)
	CountsForCitizen(ctx context.Context, actor models.Actor) (*models.IssueCounts, error)
	ListForStaff(ctx context.Context, actor models.Actor, filter string) ([]*models.Issue, error)
	GetForStaff(ctx context.Context, actor models.Actor, id int64) (*models.Issue, error)
	TransitionStatus(ctx context.Context, actor models.Actor, issueID int64, newStatus string) (*models.Issue, error)
	Rate(ctx context.Context, actor models.Actor, issueID int64, req *dto.RateIssueRequest) (*models.Rating, error)
}

// issueServiceImpl implements IssueService
type issueServiceImpl struct {
	issueRepo      repositories.IIssueRepository
	ratingRepo     repositories.IRatingRepository
	userRepo       repositories.IUserRepository
	cityRepo       repositories.ICityRepository
	departmentRepo repositories.IDepartmentRepository
	forwardOnly    bool
}

// NewIssueService creates a new issue service. forwardOnly controls whether
// status changes may only move Pending -> InProgress -> Resolved.
func NewIssueService(
	issueRepo repositories.IIssueRepository,
	ratingRepo repositories.IRatingRepository,
	userRepo repositories.IUserRepository,
	cityRepo repositories.ICityRepository,
	departmentRepo repositories.IDepartmentRepository,
	forwardOnly bool,
) IssueService {
	return &issueServiceImpl{
		issueRepo:      issueRepo,
		ratingRepo:     ratingRepo,
		userRepo:       userRepo,
		cityRepo:       cityRepo,
		departmentRepo: departmentRepo,
		forwardOnly:    forwardOnly,
	}
}

// Create validates the routing target, snapshots a contact phone from the
// receiving department's staff, and writes the complaint together with its
// image and notifications in one transaction.
func (s *issueServiceImpl) Create(ctx context.Context, actor models.Actor, req *dto.CreateIssueRequest, imageURL *string) (*models.Issue, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.LocationText)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "Title cannot be empty")
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description", "Description cannot be empty")
	}
	if location == "" {
		return nil, apperrors.NewValidationError("locationText", "Location cannot be empty")
	}

	city, err := s.cityRepo.GetByID(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	if !city.IsActive {
		return nil, apperrors.ErrCityInactive
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !department.IsActive {
		return nil, apperrors.ErrDepartmentInactive
	}

	staff, err := s.userRepo.ListStaffByScope(ctx, city.ID, department.ID)
	if err != nil {
		return nil, err
	}

	issue := &models.Issue{
		Title:        title,
		Description:  description,
		CityID:       city.ID,
		DepartmentID: department.ID,
		LocationText: location,
		Status:       models.StatusPending,
		CitizenID:    actor.ID,
		ContactPhone: contactPhoneSnapshot(staff),
	}

	var image *models.IssueImage
	if imageURL != nil {
		image = &models.IssueImage{ImageURL: *imageURL}
	}

	notifications := NotifyScope(staff, nil, NotificationTitleAssigned,
		fmt.Sprintf("A new complaint %q was submitted in your department.", title))
	notifications = append(notifications, NotifyUser(actor.ID, nil, NotificationTitleSubmitted,
		fmt.Sprintf("Your complaint %q has been submitted.", title)))

	if err := s.issueRepo.CreateWithSideEffects(ctx, issue, image, notifications); err != nil {
		return nil, err
	}

	issue.CityName = city.Name
	issue.DepartmentName = department.Name
	logger.Info().Int64("issueID", issue.ID).Int64("citizenID", actor.ID).Msg("Complaint created")
	return issue, nil
}

// contactPhoneSnapshot picks the phone of the earliest registered staff
// member with one set. The input is already ordered by registration time.
func contactPhoneSnapshot(staff []*models.User) *string {
	for _, member := range staff {
		if member.Phone != nil && strings.TrimSpace(*member.Phone) != "" {
			phone := *member.Phone
			return &phone
		}
	}
	return nil
}

// ListForCitizen returns the citizen's own complaints, newest first
func (s *issueServiceImpl) ListForCitizen(ctx context.Context, actor models.Actor) ([]*models.Issue, error) {
	return s.issueRepo.ListByCitizen(ctx, actor.ID)
}

// GetForCitizen returns one of the citizen's own complaints with images and
// rating. Complaints owned by someone else surface as not found.
func (s *issueServiceImpl) GetForCitizen(ctx context.Context, actor models.Actor, id int64) (*models.Issue, error) {
	issue, err := s.issueRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.CitizenID != actor.ID {
		return nil, apperrors.ErrIssueNotFound
	}
	return issue, nil
}

// CountsForCitizen returns the citizen's per-status complaint counts
func (s *issueServiceImpl) CountsForCitizen(ctx context.Context, actor models.Actor) (*models.IssueCounts, error) {
	return s.issueRepo.CountsByCitizen(ctx, actor.ID)
}

// ListForStaff returns complaints routed to the staff member's city and
// department. filter accepts all|pending|inprogress|resolved. Staff without
// an assigned scope see nothing.
func (s *issueServiceImpl) ListForStaff(ctx context.Context, actor models.Actor, filter string) ([]*models.Issue, error) {
	cityID, departmentID, ok := actor.Scope()
	if !ok {
		return []*models.Issue{}, nil
	}

	status, filtered := models.ParseStatusFilter(filter)
	return s.issueRepo.ListScoped(ctx, cityID, departmentID, status, filtered)
}

// GetForStaff returns a complaint inside the staff member's scope.
// Complaints routed elsewhere surface as not found.
func (s *issueServiceImpl) GetForStaff(ctx context.Context, actor models.Actor, id int64) (*models.Issue, error) {
	cityID, departmentID, ok := actor.Scope()
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}

	issue, err := s.issueRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if issue.CityID != cityID || issue.DepartmentID != departmentID {
		return nil, apperrors.ErrIssueNotFound
	}
	return issue, nil
}

// TransitionStatus moves a complaint to a new status on behalf of a staff
// member, records them as assignee, and notifies the citizen. A same-status
// write only updates the assignee.
func (s *issueServiceImpl) TransitionStatus(ctx context.Context, actor models.Actor, issueID int64, newStatus string) (*models.Issue, error) {
	cityID, departmentID, ok := actor.Scope()
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}

	status := models.IssueStatus(newStatus)
	if !models.ValidStatus(status) {
		return nil, apperrors.ErrInvalidIssueStatus
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.CityID != cityID || issue.DepartmentID != departmentID {
		return nil, apperrors.ErrIssueNotFound
	}

	if s.forwardOnly && !models.IsForwardTransition(issue.Status, status) {
		return nil, apperrors.ErrBackwardTransition
	}

	var notifications []*models.Notification
	if issue.Status != status {
		notifications = append(notifications, NotifyUser(issue.CitizenID, &issue.ID, NotificationTitleStatusUpdated,
			fmt.Sprintf("Your complaint %q status changed to %s.", issue.Title, status)))
	}

	staffID := actor.ID
	if err := s.issueRepo.UpdateStatusWithNotifications(ctx, issue.ID, status, &staffID, notifications); err != nil {
		return nil, err
	}

	issue.Status = status
	issue.AssignedStaffID = &staffID
	logger.Info().Int64("issueID", issue.ID).Int64("staffID", staffID).Str("status", string(status)).Msg("Complaint status updated")
	return issue, nil
}

// Rate records a citizen's rating on their own resolved complaint and
// notifies the department's staff. A complaint can be rated once.
func (s *issueServiceImpl) Rate(ctx context.Context, actor models.Actor, issueID int64, req *dto.RateIssueRequest) (*models.Rating, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, apperrors.NewValidationError("stars", "Stars must be between 1 and 5")
	}

	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue.CitizenID != actor.ID {
		return nil, apperrors.ErrIssueNotFound
	}
	if issue.Status != models.StatusResolved {
		return nil, apperrors.ErrIssueNotResolved
	}

	rated, err := s.ratingRepo.ExistsForIssue(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, apperrors.ErrIssueAlreadyRated
	}

	rating := &models.Rating{
		IssueID: issue.ID,
		Stars:   req.Stars,
	}
	if comment := strings.TrimSpace(req.Comment); comment != "" {
		rating.Comment = &comment
	}

	staff, err := s.userRepo.ListStaffByScope(ctx, issue.CityID, issue.DepartmentID)
	if err != nil {
		return nil, err
	}
	notifications := NotifyScope(staff, &issue.ID, NotificationTitleRated,
		fmt.Sprintf("Citizen rated complaint %q %d/5 stars.", issue.Title, req.Stars))

	if err := s.ratingRepo.CreateWithNotifications(ctx, rating, notifications); err != nil {
		return nil, err
	}

	logger.Info().Int64("issueID", issue.ID).Int("stars", req.Stars).Msg("Complaint rated")
	return rating, nil
}
