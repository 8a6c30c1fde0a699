package dto

import "time"

// CreateIssueRequest represents a new complaint submitted by a citizen.
// Bound from a multipart form so an image can be attached alongside the
// fields.
type CreateIssueRequest struct {
	Title        string `form:"title" binding:"required,max=200"`
	Description  string `form:"description" binding:"required"`
	CityID       int64  `form:"cityId" binding:"required,min=1"`
	DepartmentID int64  `form:"departmentId" binding:"required,min=1"`
	LocationText string `form:"locationText" binding:"required,max=300"`
}

// UpdateIssueStatusRequest represents a staff status change
type UpdateIssueStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending InProgress Resolved"`
}

// RateIssueRequest represents a citizen rating a resolved complaint
type RateIssueRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"max=500"`
}

// IssueImageResponse represents an image attached to a complaint
type IssueImageResponse struct {
	ID         int64     `json:"id"`
	ImageURL   string    `json:"imageUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// RatingResponse represents a rating on a resolved complaint
type RatingResponse struct {
	Stars     int       `json:"stars"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IssueResponse represents a complaint in list and detail views
type IssueResponse struct {
	ID             int64                `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Status         string               `json:"status"`
	CityID         int64                `json:"cityId"`
	CityName       string               `json:"cityName,omitempty"`
	DepartmentID   int64                `json:"departmentId"`
	DepartmentName string               `json:"departmentName,omitempty"`
	LocationText   string               `json:"locationText"`
	CitizenName    string               `json:"citizenName,omitempty"`
	ContactPhone   *string              `json:"contactPhone,omitempty"`
	Images         []IssueImageResponse `json:"images,omitempty"`
	Rating         *RatingResponse      `json:"rating,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// IssueCountsResponse represents per-status complaint counts
type IssueCountsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}
