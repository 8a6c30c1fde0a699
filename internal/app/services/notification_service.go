package services

import (
	"context"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/repositories"
)

// Notification titles used by complaint lifecycle events
const (
	NotificationTitleSubmitted     = "Complaint Submitted"
	NotificationTitleAssigned      = "New Complaint Assigned"
	NotificationTitleStatusUpdated = "Complaint Status Updated"
	NotificationTitleRated         = "Complaint Rated"
)

// NotificationService defines notification operations
type NotificationService interface {
	List(ctx context.Context, userID int64) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteRead(ctx context.Context, userID int64) (int64, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo repositories.INotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.INotificationRepository) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
	}
}

// NotifyUser builds a single notification row
func NotifyUser(recipientID int64, issueID *int64, title, message string) *models.Notification {
	return &models.Notification{
		RecipientID: recipientID,
		IssueID:     issueID,
		Title:       title,
		Message:     message,
	}
}

// NotifyScope builds one notification per recipient. An empty recipient set
// yields an empty slice, which downstream persistence treats as a no-op.
func NotifyScope(recipients []*models.User, issueID *int64, title, message string) []*models.Notification {
	notifications := make([]*models.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, NotifyUser(recipient.ID, issueID, title, message))
	}
	return notifications
}

func (s *notificationServiceImpl) List(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.notificationRepo.List(ctx, userID)
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *notificationServiceImpl) Delete(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.Delete(ctx, id, userID)
}

func (s *notificationServiceImpl) DeleteRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.DeleteRead(ctx, userID)
}
