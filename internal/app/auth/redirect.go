// Package authx maps authenticated roles onto their landing routes.
package authx

import (
	"github.com/citycare/citycare/internal/app/models"
)

// Landing routes per role. Unknown roles land on the citizen view.
const (
	RouteCitizenHome = "/issues"
	RouteStaffHome   = "/staff/issues"
	RouteAdminHome   = "/admin/dashboard"
)

// LandingRoute returns the route a user should land on after login,
// keyed purely on their role.
func LandingRoute(role models.RoleType) string {
	switch role {
	case models.RoleAdmin:
		return RouteAdminHome
	case models.RoleStaff:
		return RouteStaffHome
	default:
		return RouteCitizenHome
	}
}
