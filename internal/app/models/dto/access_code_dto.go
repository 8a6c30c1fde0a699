package dto

import "time"

// GenerateAccessCodeRequest represents a request to issue a staff access
// code for a city and department pairing
type GenerateAccessCodeRequest struct {
	CityID       int64  `json:"cityId" binding:"required,min=1"`
	DepartmentID int64  `json:"departmentId" binding:"required,min=1"`
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
	StaffPhone   string `json:"staffPhone,omitempty" binding:"max=20"`
}

// AccessCodeResponse represents an issued staff access code
type AccessCodeResponse struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	CityID         int64     `json:"cityId"`
	CityName       string    `json:"cityName,omitempty"`
	DepartmentID   int64     `json:"departmentId"`
	DepartmentName string    `json:"departmentName,omitempty"`
	Year           int       `json:"year"`
	IsActive       bool      `json:"isActive"`
	StaffPhone     *string   `json:"staffPhone,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
