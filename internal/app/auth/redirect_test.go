package authx

import (
	"testing"

	"github.com/citycare/citycare/internal/app/models"
)

func TestLandingRoute(t *testing.T) {
	cases := []struct {
		role models.RoleType
		want string
	}{
		{models.RoleCitizen, RouteCitizenHome},
		{models.RoleStaff, RouteStaffHome},
		{models.RoleAdmin, RouteAdminHome},
		{models.RoleType("UNKNOWN"), RouteCitizenHome},
		{models.RoleType(""), RouteCitizenHome},
	}

	for _, tc := range cases {
		if got := LandingRoute(tc.role); got != tc.want {
			t.Fatalf("LandingRoute(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
