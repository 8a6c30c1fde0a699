package models

import (
	"time"
)

// Issue is a citizen-filed complaint routed to a department within a city.
type Issue struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	CityID          int64       `json:"cityId"`
	DepartmentID    int64       `json:"departmentId"`
	LocationText    string      `json:"locationText"`
	Status          IssueStatus `json:"status"`
	CitizenID       int64       `json:"citizenId"`
	AssignedStaffID *int64      `json:"assignedStaffId,omitempty"`
	ContactPhone    *string     `json:"contactPhone,omitempty"` // snapshot taken at creation, never recomputed
	CreatedAt       time.Time   `json:"createdAt"`

	CityName       string       `json:"cityName,omitempty"`
	DepartmentName string       `json:"departmentName,omitempty"`
	CitizenName    string       `json:"citizenName,omitempty"`
	Images         []IssueImage `json:"images,omitempty"`
	Rating         *Rating      `json:"rating,omitempty"`
}

// IssueImage is a photo attached to an issue at creation time.
type IssueImage struct {
	ID         int64     `json:"id"`
	IssueID    int64     `json:"issueId"`
	ImageURL   string    `json:"imageUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// IssueCounts summarizes a citizen's issues per status for the dashboard.
type IssueCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}
