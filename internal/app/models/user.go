package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64       `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	Password     string      `json:"-" db:"password"` // hashed, excluded from JSON
	FullName     string      `json:"fullName" db:"full_name"`
	RoleType     RoleType    `json:"roleType" db:"role_type"`
	Phone        *string     `json:"phone,omitempty" db:"phone"`
	Address      *string     `json:"address,omitempty" db:"address"`        // citizens only
	CityID       *int64      `json:"cityId,omitempty" db:"city_id"`         // nil for admins
	DepartmentID *int64      `json:"departmentId,omitempty" db:"department_id"` // staff only
	IsActive     bool        `json:"isActive" db:"is_active"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	City         *City       `json:"city,omitempty"`
	Department   *Department `json:"department,omitempty"`
}

// Actor identifies the authenticated user a core operation runs as.
// Controllers build it from validated token claims; services never read
// ambient request state.
type Actor struct {
	ID           int64
	Role         RoleType
	CityID       *int64
	DepartmentID *int64
}

// Scope returns the (city, department) pair a staff actor is restricted
// to. ok is false when either half is missing, which only happens for
// misconfigured accounts; callers treat that as out-of-scope.
func (a Actor) Scope() (cityID, departmentID int64, ok bool) {
	if a.CityID == nil || a.DepartmentID == nil {
		return 0, 0, false
	}
	return *a.CityID, *a.DepartmentID, true
}
