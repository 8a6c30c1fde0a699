package services

import (
	"context"
	"errors"
	"testing"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

func TestNotifyScope(t *testing.T) {
	issueID := int64(7)
	recipients := []*models.User{{ID: 1}, {ID: 2}, {ID: 3}}

	notifications := NotifyScope(recipients, &issueID, NotificationTitleAssigned, "message")
	if len(notifications) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifications))
	}
	for i, notification := range notifications {
		if notification.RecipientID != recipients[i].ID {
			t.Fatalf("notification %d addressed to %d, want %d", i, notification.RecipientID, recipients[i].ID)
		}
		if notification.IssueID == nil || *notification.IssueID != issueID {
			t.Fatalf("notification %d missing issue reference", i)
		}
	}
}

func TestNotifyScopeEmpty(t *testing.T) {
	notifications := NotifyScope(nil, nil, NotificationTitleAssigned, "message")
	if notifications == nil || len(notifications) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", notifications)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	ctx := context.Background()

	first := repo.add(1, "a", false)
	repo.add(1, "b", false)
	repo.add(2, "c", false)

	count, err := service.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	if err := service.MarkRead(ctx, first.ID, 1); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	count, _ = service.UnreadCount(ctx, 1)
	if count != 1 {
		t.Fatalf("expected 1 unread after mark read, got %d", count)
	}

	if err := service.MarkAllRead(ctx, 1); err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	count, _ = service.UnreadCount(ctx, 1)
	if count != 0 {
		t.Fatalf("expected 0 unread after mark all, got %d", count)
	}

	// user 2 untouched
	count, _ = service.UnreadCount(ctx, 2)
	if count != 1 {
		t.Fatalf("expected user 2 to keep 1 unread, got %d", count)
	}
}

func TestMarkReadForeignNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)

	notification := repo.add(1, "a", false)
	if err := service.MarkRead(context.Background(), notification.ID, 2); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for foreign recipient, got %v", err)
	}
}

func TestDeleteReadNotifications(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)
	ctx := context.Background()

	repo.add(1, "read one", true)
	repo.add(1, "read two", true)
	unread := repo.add(1, "unread", false)
	repo.add(2, "other user read", true)

	deleted, err := service.DeleteRead(ctx, 1)
	if err != nil {
		t.Fatalf("delete read failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	remaining, err := service.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != unread.ID {
		t.Fatalf("expected only the unread notification to remain, got %d", len(remaining))
	}

	// user 2 untouched
	others, _ := service.List(ctx, 2)
	if len(others) != 1 {
		t.Fatalf("expected user 2 notifications untouched, got %d", len(others))
	}
}

func TestDeleteForeignNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewNotificationService(repo)

	notification := repo.add(1, "a", false)
	if err := service.Delete(context.Background(), notification.ID, 2); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for foreign recipient, got %v", err)
	}
	if err := service.Delete(context.Background(), notification.ID, 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
