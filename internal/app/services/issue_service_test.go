package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

type issueFixture struct {
	issueRepo  *fakeIssueRepo
	ratingRepo *fakeRatingRepo
	userRepo   *fakeUserRepo
	cityRepo   *fakeCityRepo
	deptRepo   *fakeDepartmentRepo
	service    IssueService

	city    *models.City
	dept    *models.Department
	citizen models.Actor
	staff   models.Actor
}

func newIssueFixture(t *testing.T, forwardOnly bool) *issueFixture {
	t.Helper()

	f := &issueFixture{
		issueRepo:  newFakeIssueRepo(),
		ratingRepo: newFakeRatingRepo(),
		userRepo:   newFakeUserRepo(),
		cityRepo:   newFakeCityRepo(),
		deptRepo:   newFakeDepartmentRepo(),
	}
	f.service = NewIssueService(f.issueRepo, f.ratingRepo, f.userRepo, f.cityRepo, f.deptRepo, forwardOnly)

	f.city = &models.City{Name: "Kandy", Code: "KDY", IsActive: true}
	if err := f.cityRepo.Create(context.Background(), f.city); err != nil {
		t.Fatalf("failed to create city: %v", err)
	}
	f.dept = &models.Department{Name: "Water Supply", Code: "WTR", IsActive: true}
	if err := f.deptRepo.Create(context.Background(), f.dept); err != nil {
		t.Fatalf("failed to create department: %v", err)
	}

	citizen := &models.User{Email: "citizen@example.com", FullName: "Citizen One", RoleType: models.RoleCitizen, IsActive: true}
	if err := f.userRepo.Create(context.Background(), citizen); err != nil {
		t.Fatalf("failed to create citizen: %v", err)
	}
	f.citizen = models.Actor{ID: citizen.ID, Role: models.RoleCitizen}

	staff := f.addStaff(t, "staff@example.com", "0771234567")
	f.staff = models.Actor{
		ID:           staff.ID,
		Role:         models.RoleStaff,
		CityID:       ptrInt64(f.city.ID),
		DepartmentID: ptrInt64(f.dept.ID),
	}

	return f
}

func (f *issueFixture) addStaff(t *testing.T, email, phone string) *models.User {
	t.Helper()
	staff := &models.User{
		Email:        email,
		FullName:     "Staff " + email,
		RoleType:     models.RoleStaff,
		IsActive:     true,
		CityID:       ptrInt64(f.city.ID),
		DepartmentID: ptrInt64(f.dept.ID),
	}
	if phone != "" {
		staff.Phone = ptrString(phone)
	}
	if err := f.userRepo.Create(context.Background(), staff); err != nil {
		t.Fatalf("failed to create staff: %v", err)
	}
	return staff
}

func (f *issueFixture) createIssue(t *testing.T, title string) *models.Issue {
	t.Helper()
	issue, err := f.service.Create(context.Background(), f.citizen, &dto.CreateIssueRequest{
		Title:        title,
		Description:  "Broken water main near the junction",
		CityID:       f.city.ID,
		DepartmentID: f.dept.ID,
		LocationText: "Main Street",
	}, nil)
	if err != nil {
		t.Fatalf("failed to create issue: %v", err)
	}
	return issue
}

func TestIssueCreate(t *testing.T) {
	f := newIssueFixture(t, true)

	issue := f.createIssue(t, "No water supply")

	if issue.ID == 0 {
		t.Fatal("expected issue to receive an id")
	}
	if issue.Status != models.StatusPending {
		t.Fatalf("expected new issue to be Pending, got %s", issue.Status)
	}
	if issue.CitizenID != f.citizen.ID {
		t.Fatalf("expected citizen %d as owner, got %d", f.citizen.ID, issue.CitizenID)
	}
	if issue.ContactPhone == nil || *issue.ContactPhone != "0771234567" {
		t.Fatalf("expected contact phone snapshot 0771234567, got %v", issue.ContactPhone)
	}

	// one notification for the scoped staff member, one for the citizen
	if len(f.issueRepo.notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(f.issueRepo.notifications))
	}
	staffNote := f.issueRepo.notifications[0]
	if staffNote.RecipientID != f.staff.ID || staffNote.Title != NotificationTitleAssigned {
		t.Fatalf("unexpected staff notification: recipient=%d title=%q", staffNote.RecipientID, staffNote.Title)
	}
	citizenNote := f.issueRepo.notifications[1]
	if citizenNote.RecipientID != f.citizen.ID || citizenNote.Title != NotificationTitleSubmitted {
		t.Fatalf("unexpected citizen notification: recipient=%d title=%q", citizenNote.RecipientID, citizenNote.Title)
	}
}

func TestIssueCreateContactPhonePrefersEarliestStaff(t *testing.T) {
	f := newIssueFixture(t, true)

	// fixture staff registered first but without a phone this time
	f.userRepo.users = nil
	f.addStaff(t, "first@example.com", "")
	f.addStaff(t, "second@example.com", "0711111111")
	f.addStaff(t, "third@example.com", "0722222222")

	issue := f.createIssue(t, "Leaking hydrant")
	if issue.ContactPhone == nil || *issue.ContactPhone != "0711111111" {
		t.Fatalf("expected phone of earliest staff with one set, got %v", issue.ContactPhone)
	}
}

func TestIssueCreateNoStaffInScope(t *testing.T) {
	f := newIssueFixture(t, true)
	f.userRepo.users = nil

	issue := f.createIssue(t, "Overflowing drain")
	if issue.ContactPhone != nil {
		t.Fatalf("expected nil contact phone with no staff, got %v", issue.ContactPhone)
	}
	// only the citizen confirmation remains
	if len(f.issueRepo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.issueRepo.notifications))
	}
	if f.issueRepo.notifications[0].Title != NotificationTitleSubmitted {
		t.Fatalf("expected citizen confirmation, got %q", f.issueRepo.notifications[0].Title)
	}
}

func TestIssueCreateValidation(t *testing.T) {
	f := newIssueFixture(t, true)

	tests := []struct {
		name string
		req  dto.CreateIssueRequest
		want error
	}{
		{
			name: "blank title",
			req:  dto.CreateIssueRequest{Title: "   ", Description: "d", CityID: f.city.ID, DepartmentID: f.dept.ID, LocationText: "l"},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "blank description",
			req:  dto.CreateIssueRequest{Title: "t", Description: "", CityID: f.city.ID, DepartmentID: f.dept.ID, LocationText: "l"},
			want: apperrors.ErrValidationFailed,
		},
		{
			name: "unknown city",
			req:  dto.CreateIssueRequest{Title: "t", Description: "d", CityID: 999, DepartmentID: f.dept.ID, LocationText: "l"},
			want: apperrors.ErrCityNotFound,
		},
		{
			name: "unknown department",
			req:  dto.CreateIssueRequest{Title: "t", Description: "d", CityID: f.city.ID, DepartmentID: 999, LocationText: "l"},
			want: apperrors.ErrDepartmentNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), f.citizen, &tc.req, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIssueCreateInactiveTarget(t *testing.T) {
	f := newIssueFixture(t, true)

	if err := f.cityRepo.SetActive(context.Background(), f.city.ID, false); err != nil {
		t.Fatalf("failed to deactivate city: %v", err)
	}
	_, err := f.service.Create(context.Background(), f.citizen, &dto.CreateIssueRequest{
		Title: "t", Description: "d", CityID: f.city.ID, DepartmentID: f.dept.ID, LocationText: "l",
	}, nil)
	if !errors.Is(err, apperrors.ErrCityInactive) {
		t.Fatalf("expected ErrCityInactive, got %v", err)
	}

	if err := f.cityRepo.SetActive(context.Background(), f.city.ID, true); err != nil {
		t.Fatalf("failed to reactivate city: %v", err)
	}
	if err := f.deptRepo.SetActive(context.Background(), f.dept.ID, false); err != nil {
		t.Fatalf("failed to deactivate department: %v", err)
	}
	_, err = f.service.Create(context.Background(), f.citizen, &dto.CreateIssueRequest{
		Title: "t", Description: "d", CityID: f.city.ID, DepartmentID: f.dept.ID, LocationText: "l",
	}, nil)
	if !errors.Is(err, apperrors.ErrDepartmentInactive) {
		t.Fatalf("expected ErrDepartmentInactive, got %v", err)
	}
}

func TestGetForCitizenHidesForeignIssues(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	other := models.Actor{ID: f.citizen.ID + 100, Role: models.RoleCitizen}
	if _, err := f.service.GetForCitizen(context.Background(), other, issue.ID); !errors.Is(err, apperrors.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound for foreign citizen, got %v", err)
	}

	got, err := f.service.GetForCitizen(context.Background(), f.citizen, issue.ID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.ID != issue.ID {
		t.Fatalf("expected issue %d, got %d", issue.ID, got.ID)
	}
}

func TestStaffScopeIsolation(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	outsider := models.Actor{
		ID:           f.staff.ID,
		Role:         models.RoleStaff,
		CityID:       ptrInt64(f.city.ID + 1),
		DepartmentID: f.staff.DepartmentID,
	}
	if _, err := f.service.GetForStaff(context.Background(), outsider, issue.ID); !errors.Is(err, apperrors.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound for out-of-scope staff, got %v", err)
	}
	if _, err := f.service.TransitionStatus(context.Background(), outsider, issue.ID, "InProgress"); !errors.Is(err, apperrors.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound on cross-scope transition, got %v", err)
	}

	// staff without an assigned scope see nothing
	unscoped := models.Actor{ID: f.staff.ID, Role: models.RoleStaff}
	issues, err := f.service.ListForStaff(context.Background(), unscoped, "all")
	if err != nil {
		t.Fatalf("unscoped list failed: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected empty list for unscoped staff, got %d issues", len(issues))
	}
}

func TestListForStaffFilters(t *testing.T) {
	f := newIssueFixture(t, true)
	f.createIssue(t, "First")
	second := f.createIssue(t, "Second")

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, second.ID, "InProgress"); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	all, err := f.service.ListForStaff(context.Background(), f.staff, "all")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(all))
	}

	pending, err := f.service.ListForStaff(context.Background(), f.staff, "pending")
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "First" {
		t.Fatalf("expected only the pending issue, got %d", len(pending))
	}

	inProgress, err := f.service.ListForStaff(context.Background(), f.staff, "inprogress")
	if err != nil {
		t.Fatalf("list inprogress failed: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].ID != second.ID {
		t.Fatalf("expected only the in-progress issue, got %d", len(inProgress))
	}
}

func TestTransitionStatus(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")
	baseline := len(f.issueRepo.notifications)

	updated, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "InProgress")
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Fatalf("expected InProgress, got %s", updated.Status)
	}
	if updated.AssignedStaffID == nil || *updated.AssignedStaffID != f.staff.ID {
		t.Fatalf("expected staff %d recorded as assignee, got %v", f.staff.ID, updated.AssignedStaffID)
	}

	if len(f.issueRepo.notifications) != baseline+1 {
		t.Fatalf("expected 1 new notification, got %d", len(f.issueRepo.notifications)-baseline)
	}
	note := f.issueRepo.notifications[len(f.issueRepo.notifications)-1]
	if note.RecipientID != f.citizen.ID || note.Title != NotificationTitleStatusUpdated {
		t.Fatalf("unexpected notification: recipient=%d title=%q", note.RecipientID, note.Title)
	}
	wantMessage := fmt.Sprintf("Your complaint %q status changed to %s.", issue.Title, models.StatusInProgress)
	if note.Message != wantMessage {
		t.Fatalf("unexpected message %q, want %q", note.Message, wantMessage)
	}
}

func TestTransitionSameStatusSkipsNotification(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")
	baseline := len(f.issueRepo.notifications)

	second := f.addStaff(t, "colleague@example.com", "")
	colleague := models.Actor{
		ID:           second.ID,
		Role:         models.RoleStaff,
		CityID:       ptrInt64(f.city.ID),
		DepartmentID: ptrInt64(f.dept.ID),
	}

	updated, err := f.service.TransitionStatus(context.Background(), colleague, issue.ID, "Pending")
	if err != nil {
		t.Fatalf("same-status write failed: %v", err)
	}
	if updated.AssignedStaffID == nil || *updated.AssignedStaffID != colleague.ID {
		t.Fatalf("expected assignee to move to %d, got %v", colleague.ID, updated.AssignedStaffID)
	}
	if len(f.issueRepo.notifications) != baseline {
		t.Fatal("same-status write must not notify the citizen")
	}
}

func TestTransitionBackwardRejected(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Resolved"); err != nil {
		t.Fatalf("forward transition failed: %v", err)
	}
	if _, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Pending"); !errors.Is(err, apperrors.ErrBackwardTransition) {
		t.Fatalf("expected ErrBackwardTransition, got %v", err)
	}
}

func TestTransitionBackwardAllowedWhenPolicyOff(t *testing.T) {
	f := newIssueFixture(t, false)
	issue := f.createIssue(t, "No water supply")

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Resolved"); err != nil {
		t.Fatalf("forward transition failed: %v", err)
	}
	updated, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Pending")
	if err != nil {
		t.Fatalf("backward transition should pass with policy off: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Fatalf("expected Pending, got %s", updated.Status)
	}
}

func TestTransitionInvalidStatus(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Closed"); !errors.Is(err, apperrors.ErrInvalidIssueStatus) {
		t.Fatalf("expected ErrInvalidIssueStatus, got %v", err)
	}
}

func TestRateIssue(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	// not resolved yet
	_, err := f.service.Rate(context.Background(), f.citizen, issue.ID, &dto.RateIssueRequest{Stars: 5})
	if !errors.Is(err, apperrors.ErrIssueNotResolved) {
		t.Fatalf("expected ErrIssueNotResolved, got %v", err)
	}

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, issue.ID, "Resolved"); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	// only the owner may rate
	other := models.Actor{ID: f.citizen.ID + 100, Role: models.RoleCitizen}
	_, err = f.service.Rate(context.Background(), other, issue.ID, &dto.RateIssueRequest{Stars: 5})
	if !errors.Is(err, apperrors.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound for foreign rater, got %v", err)
	}

	rating, err := f.service.Rate(context.Background(), f.citizen, issue.ID, &dto.RateIssueRequest{Stars: 4, Comment: "  fixed quickly  "})
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rating.Stars != 4 {
		t.Fatalf("expected 4 stars, got %d", rating.Stars)
	}
	if rating.Comment == nil || *rating.Comment != "fixed quickly" {
		t.Fatalf("expected trimmed comment, got %v", rating.Comment)
	}

	if len(f.ratingRepo.notifications) != 1 {
		t.Fatalf("expected 1 staff notification, got %d", len(f.ratingRepo.notifications))
	}
	note := f.ratingRepo.notifications[0]
	if note.RecipientID != f.staff.ID || note.Title != NotificationTitleRated {
		t.Fatalf("unexpected rating notification: recipient=%d title=%q", note.RecipientID, note.Title)
	}
	wantMessage := fmt.Sprintf("Citizen rated complaint %q 4/5 stars.", issue.Title)
	if note.Message != wantMessage {
		t.Fatalf("unexpected message %q, want %q", note.Message, wantMessage)
	}

	// a complaint can be rated once
	_, err = f.service.Rate(context.Background(), f.citizen, issue.ID, &dto.RateIssueRequest{Stars: 2})
	if !errors.Is(err, apperrors.ErrIssueAlreadyRated) {
		t.Fatalf("expected ErrIssueAlreadyRated, got %v", err)
	}
}

func TestRateStarsOutOfRange(t *testing.T) {
	f := newIssueFixture(t, true)
	issue := f.createIssue(t, "No water supply")

	for _, stars := range []int{0, 6, -1} {
		_, err := f.service.Rate(context.Background(), f.citizen, issue.ID, &dto.RateIssueRequest{Stars: stars})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Fatalf("stars=%d: expected ErrValidationFailed, got %v", stars, err)
		}
	}
}

func TestCountsForCitizen(t *testing.T) {
	f := newIssueFixture(t, true)
	f.createIssue(t, "First")
	second := f.createIssue(t, "Second")
	third := f.createIssue(t, "Third")

	if _, err := f.service.TransitionStatus(context.Background(), f.staff, second.ID, "InProgress"); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if _, err := f.service.TransitionStatus(context.Background(), f.staff, third.ID, "Resolved"); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	counts, err := f.service.CountsForCitizen(context.Background(), f.citizen)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts.Total != 3 || counts.Pending != 1 || counts.InProgress != 1 || counts.Resolved != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
