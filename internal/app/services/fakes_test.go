package services

import (
	"context"
	"time"

	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests.

type fakeIssueRepo struct {
	nextID        int64
	issues        map[int64]*models.Issue
	images        map[int64][]models.IssueImage
	notifications []*models.Notification
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{
		issues: make(map[int64]*models.Issue),
		images: make(map[int64][]models.IssueImage),
	}
}

func (r *fakeIssueRepo) CreateWithSideEffects(ctx context.Context, issue *models.Issue, image *models.IssueImage, notifications []*models.Notification) error {
	r.nextID++
	issue.ID = r.nextID
	issue.CreatedAt = time.Now()
	r.issues[issue.ID] = issue
	if image != nil {
		image.IssueID = issue.ID
		r.images[issue.ID] = append(r.images[issue.ID], *image)
	}
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *fakeIssueRepo) UpdateStatusWithNotifications(ctx context.Context, issueID int64, status models.IssueStatus, assignedStaffID *int64, notifications []*models.Notification) error {
	issue, ok := r.issues[issueID]
	if !ok {
		return apperrors.ErrIssueNotFound
	}
	issue.Status = status
	if assignedStaffID != nil {
		issue.AssignedStaffID = assignedStaffID
	}
	r.notifications = append(r.notifications, notifications...)
	return nil
}

func (r *fakeIssueRepo) GetByID(ctx context.Context, id int64) (*models.Issue, error) {
	issue, ok := r.issues[id]
	if !ok {
		return nil, apperrors.ErrIssueNotFound
	}
	return issue, nil
}

func (r *fakeIssueRepo) GetDetail(ctx context.Context, id int64) (*models.Issue, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeIssueRepo) ListByCitizen(ctx context.Context, citizenID int64) ([]*models.Issue, error) {
	var result []*models.Issue
	for _, issue := range r.issues {
		if issue.CitizenID == citizenID {
			result = append(result, issue)
		}
	}
	return result, nil
}

func (r *fakeIssueRepo) ListScoped(ctx context.Context, cityID, departmentID int64, status models.IssueStatus, filtered bool) ([]*models.Issue, error) {
	var result []*models.Issue
	for _, issue := range r.issues {
		if issue.CityID != cityID || issue.DepartmentID != departmentID {
			continue
		}
		if filtered && issue.Status != status {
			continue
		}
		result = append(result, issue)
	}
	return result, nil
}

func (r *fakeIssueRepo) CountsByCitizen(ctx context.Context, citizenID int64) (*models.IssueCounts, error) {
	counts := &models.IssueCounts{}
	for _, issue := range r.issues {
		if issue.CitizenID != citizenID {
			continue
		}
		counts.Total++
		switch issue.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

func (r *fakeIssueRepo) CountsAll(ctx context.Context) (*models.IssueCounts, error) {
	counts := &models.IssueCounts{}
	for _, issue := range r.issues {
		counts.Total++
		switch issue.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusInProgress:
			counts.InProgress++
		case models.StatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

type fakeRatingRepo struct {
	nextID        int64
	ratings       map[int64]*models.Rating
	notifications []*models.Notification
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[int64]*models.Rating)}
}

func (r *fakeRatingRepo) ExistsForIssue(ctx context.Context, issueID int64) (bool, error) {
	_, ok := r.ratings[issueID]
	return ok, nil
}

func (r *fakeRatingRepo) CreateWithNotifications(ctx context.Context, rating *models.Rating, notifications []*models.Notification) error {
	if _, ok := r.ratings[rating.IssueID]; ok {
		return apperrors.ErrIssueAlreadyRated
	}
	r.nextID++
	rating.ID = r.nextID
	rating.CreatedAt = time.Now()
	r.ratings[rating.IssueID] = rating
	r.notifications = append(r.notifications, notifications...)
	return nil
}

type fakeUserRepo struct {
	nextID int64
	users  []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ListStaffByScope preserves insertion order, mirroring the registration
// time ordering of the real query.
func (r *fakeUserRepo) ListStaffByScope(ctx context.Context, cityID, departmentID int64) ([]*models.User, error) {
	var staff []*models.User
	for _, user := range r.users {
		if user.RoleType != models.RoleStaff || !user.IsActive {
			continue
		}
		if user.CityID == nil || user.DepartmentID == nil {
			continue
		}
		if *user.CityID == cityID && *user.DepartmentID == departmentID {
			staff = append(staff, user)
		}
	}
	return staff, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.RoleType == role {
			count++
		}
	}
	return count, nil
}

type fakeCityRepo struct {
	nextID int64
	cities map[int64]*models.City
}

func newFakeCityRepo() *fakeCityRepo {
	return &fakeCityRepo{cities: make(map[int64]*models.City)}
}

func (r *fakeCityRepo) Create(ctx context.Context, city *models.City) error {
	for _, existing := range r.cities {
		if existing.Code == city.Code {
			return apperrors.ErrCityCodeExists
		}
	}
	r.nextID++
	city.ID = r.nextID
	r.cities[city.ID] = city
	return nil
}

func (r *fakeCityRepo) GetByID(ctx context.Context, id int64) (*models.City, error) {
	city, ok := r.cities[id]
	if !ok {
		return nil, apperrors.ErrCityNotFound
	}
	return city, nil
}

func (r *fakeCityRepo) GetByCode(ctx context.Context, code string) (*models.City, error) {
	for _, city := range r.cities {
		if city.Code == code {
			return city, nil
		}
	}
	return nil, apperrors.ErrCityNotFound
}

func (r *fakeCityRepo) GetAll(ctx context.Context, activeOnly bool) ([]*models.City, error) {
	var result []*models.City
	for _, city := range r.cities {
		if activeOnly && !city.IsActive {
			continue
		}
		result = append(result, city)
	}
	return result, nil
}

func (r *fakeCityRepo) Update(ctx context.Context, city *models.City) error {
	if _, ok := r.cities[city.ID]; !ok {
		return apperrors.ErrCityNotFound
	}
	r.cities[city.ID] = city
	return nil
}

func (r *fakeCityRepo) SetActive(ctx context.Context, id int64, active bool) error {
	city, ok := r.cities[id]
	if !ok {
		return apperrors.ErrCityNotFound
	}
	city.IsActive = active
	return nil
}

func (r *fakeCityRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.cities)), nil
}

type fakeDepartmentRepo struct {
	nextID      int64
	departments map[int64]*models.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[int64]*models.Department)}
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	for _, existing := range r.departments {
		if existing.Code == department.Code {
			return apperrors.ErrDepartmentCodeExists
		}
	}
	r.nextID++
	department.ID = r.nextID
	r.departments[department.ID] = department
	return nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

func (r *fakeDepartmentRepo) GetAll(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	var result []*models.Department
	for _, department := range r.departments {
		if activeOnly && !department.IsActive {
			continue
		}
		result = append(result, department)
	}
	return result, nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, department *models.Department) error {
	if _, ok := r.departments[department.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	r.departments[department.ID] = department
	return nil
}

func (r *fakeDepartmentRepo) SetActive(ctx context.Context, id int64, active bool) error {
	department, ok := r.departments[id]
	if !ok {
		return apperrors.ErrDepartmentNotFound
	}
	department.IsActive = active
	return nil
}

func (r *fakeDepartmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.departments)), nil
}

type fakeAccessCodeRepo struct {
	nextID int64
	codes  map[int64]*models.StaffAccessCode
}

func newFakeAccessCodeRepo() *fakeAccessCodeRepo {
	return &fakeAccessCodeRepo{codes: make(map[int64]*models.StaffAccessCode)}
}

func (r *fakeAccessCodeRepo) Create(ctx context.Context, code *models.StaffAccessCode) error {
	for _, existing := range r.codes {
		if existing.Code == code.Code {
			return apperrors.ErrAccessCodeExists
		}
		if existing.CityID == code.CityID && existing.DepartmentID == code.DepartmentID && existing.Year == code.Year {
			return apperrors.ErrAccessCodeExists
		}
	}
	r.nextID++
	code.ID = r.nextID
	code.CreatedAt = time.Now()
	r.codes[code.ID] = code
	return nil
}

func (r *fakeAccessCodeRepo) GetByID(ctx context.Context, id int64) (*models.StaffAccessCode, error) {
	code, ok := r.codes[id]
	if !ok {
		return nil, apperrors.ErrAccessCodeNotFound
	}
	return code, nil
}

func (r *fakeAccessCodeRepo) FindValid(ctx context.Context, value string, cityID, departmentID int64) (*models.StaffAccessCode, error) {
	for _, code := range r.codes {
		if code.Code == value && code.IsActive && code.CityID == cityID && code.DepartmentID == departmentID {
			return code, nil
		}
	}
	return nil, apperrors.ErrAccessCodeInvalid
}

func (r *fakeAccessCodeRepo) List(ctx context.Context) ([]*models.StaffAccessCode, error) {
	var result []*models.StaffAccessCode
	for _, code := range r.codes {
		result = append(result, code)
	}
	return result, nil
}

func (r *fakeAccessCodeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	code, ok := r.codes[id]
	if !ok {
		return apperrors.ErrAccessCodeNotFound
	}
	code.IsActive = active
	return nil
}

func (r *fakeAccessCodeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.codes[id]; !ok {
		return apperrors.ErrAccessCodeNotFound
	}
	delete(r.codes, id)
	return nil
}

func (r *fakeAccessCodeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.codes)), nil
}

type fakeNotificationRepo struct {
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) add(recipientID int64, title string, read bool) *models.Notification {
	r.nextID++
	notification := &models.Notification{
		ID:          r.nextID,
		RecipientID: recipientID,
		Title:       title,
		IsRead:      read,
		CreatedAt:   time.Now(),
	}
	r.notifications = append(r.notifications, notification)
	return notification
}

func (r *fakeNotificationRepo) List(ctx context.Context, recipientID int64) ([]*models.Notification, error) {
	var result []*models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].RecipientID == recipientID {
			result = append(result, r.notifications[i])
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID int64) error {
	for _, notification := range r.notifications {
		if notification.ID == id && notification.RecipientID == recipientID {
			notification.IsRead = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID int64) error {
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id, recipientID int64) error {
	for i, notification := range r.notifications {
		if notification.ID == id && notification.RecipientID == recipientID {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) DeleteRead(ctx context.Context, recipientID int64) (int64, error) {
	var kept []*models.Notification
	var deleted int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && notification.IsRead {
			deleted++
			continue
		}
		kept = append(kept, notification)
	}
	r.notifications = kept
	return deleted, nil
}

type storedToken struct {
	userID    int64
	expiry    time.Time
	isRevoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	r.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiry, stored.isRevoked, nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.isRevoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, stored := range r.tokens {
		if stored.userID == userID {
			stored.isRevoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	var deleted int64
	for token, stored := range r.tokens {
		if time.Now().After(stored.expiry) {
			delete(r.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

func ptrInt64(v int64) *int64 { return &v }

func ptrString(v string) *string { return &v }
