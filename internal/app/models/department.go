package models

// Department represents a municipal service department (Water, Garbage, ...)
type Department struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"` // WTR
	IsActive bool   `json:"isActive"`
}
