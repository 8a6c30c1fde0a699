package models

import (
	"time"
)

// Rating is the single post-resolution rating a citizen may leave on an issue.
type Rating struct {
	ID        int64     `json:"id"`
	IssueID   int64     `json:"issueId"`
	Stars     int       `json:"stars"` // 1..5
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
