package dto

import "time"

// NotificationResponse represents a notification delivered to a user
type NotificationResponse struct {
	ID        int64     `json:"id"`
	IssueID   *int64    `json:"issueId,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnreadCountResponse represents the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
