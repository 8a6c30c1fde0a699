package models

// City represents a municipality complaints are filed against
type City struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"` // KDY
	IsActive bool   `json:"isActive"`
}
