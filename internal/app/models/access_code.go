package models

import (
	"fmt"
	"time"
)

// AccessCodePrefix is the fixed prefix of generated staff access codes.
const AccessCodePrefix = "CC"

// StaffAccessCode gates staff self-registration for one (city, department, year).
type StaffAccessCode struct {
	ID           int64       `json:"id"`
	Code         string      `json:"code"` // CC-KDY-WTR-2026
	CityID       int64       `json:"cityId"`
	DepartmentID int64       `json:"departmentId"`
	Year         int         `json:"year"`
	IsActive     bool        `json:"isActive"`
	StaffPhone   *string     `json:"staffPhone,omitempty"` // optional contact number for the staff group
	CreatedAt    time.Time   `json:"createdAt"`
	City         *City       `json:"city,omitempty"`
	Department   *Department `json:"department,omitempty"`
}

// FormatAccessCode derives the code string for a (city, department, year) triple.
func FormatAccessCode(cityCode, departmentCode string, year int) string {
	return fmt.Sprintf("%s-%s-%s-%d", AccessCodePrefix, cityCode, departmentCode, year)
}
