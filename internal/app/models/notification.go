package models

import (
	"time"
)

// Notification is a per-user record appended on issue lifecycle events.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipientId"`
	IssueID     *int64    `json:"issueId,omitempty"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}
