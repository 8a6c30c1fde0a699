package services

import (
	"context"
	"testing"
)

func TestDashboardStats(t *testing.T) {
	f := newIssueFixture(t, true)
	admin := NewAdminService(f.issueRepo, f.cityRepo, f.deptRepo, newFakeAccessCodeRepo(), f.userRepo)

	f.createIssue(t, "First")
	second := f.createIssue(t, "Second")
	if _, err := f.service.TransitionStatus(context.Background(), f.staff, second.ID, "Resolved"); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	stats, err := admin.DashboardStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if stats.Issues.Total != 2 || stats.Issues.Pending != 1 || stats.Issues.Resolved != 1 {
		t.Fatalf("unexpected issue counts: %+v", stats.Issues)
	}
	if stats.Cities != 1 || stats.Departments != 1 {
		t.Fatalf("unexpected directory counts: cities=%d departments=%d", stats.Cities, stats.Departments)
	}
	if stats.Citizens != 1 || stats.Staff != 1 {
		t.Fatalf("unexpected user counts: citizens=%d staff=%d", stats.Citizens, stats.Staff)
	}
	if stats.AccessCodes != 0 {
		t.Fatalf("expected no access codes, got %d", stats.AccessCodes)
	}
}
