package repositories

import (
	"github.com/citycare/citycare/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	CityRepository         *CityRepository
	DepartmentRepository   *DepartmentRepository
	AccessCodeRepository   *AccessCodeRepository
	IssueRepository        *IssueRepository
	RatingRepository       *RatingRepository
	NotificationRepository *NotificationRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		CityRepository:         NewCityRepository(database.Pool),
		DepartmentRepository:   NewDepartmentRepository(database.Pool),
		AccessCodeRepository:   NewAccessCodeRepository(database.Pool),
		IssueRepository:        NewIssueRepository(database),
		RatingRepository:       NewRatingRepository(database),
		NotificationRepository: NewNotificationRepository(database.Pool),
		TokenRepository:        NewTokenRepository(database.Pool),
	}
}
