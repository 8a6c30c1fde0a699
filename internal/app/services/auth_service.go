package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	authx "github.com/citycare/citycare/internal/app/auth"
	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/repositories"
	"github.com/citycare/citycare/internal/pkg/apperrors"
	"github.com/citycare/citycare/internal/pkg/auth"
	"github.com/citycare/citycare/internal/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService defines authentication and registration operations
type AuthService interface {
	RegisterCitizen(ctx context.Context, req *dto.RegisterCitizenRequest) (*dto.AuthResponse, error)
	RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo          repositories.IUserRepository
	tokenRepo         repositories.ITokenRepository
	cityRepo          repositories.ICityRepository
	departmentRepo    repositories.IDepartmentRepository
	accessCodeService AccessCodeService
	jwtService        *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	cityRepo repositories.ICityRepository,
	departmentRepo repositories.IDepartmentRepository,
	accessCodeService AccessCodeService,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:          userRepo,
		tokenRepo:         tokenRepo,
		cityRepo:          cityRepo,
		departmentRepo:    departmentRepo,
		accessCodeService: accessCodeService,
		jwtService:        jwtService,
	}
}

// validateEmail validates an email address
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email", "Email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("email", "Email format is invalid")
	}
	return nil
}

// validatePassword enforces the minimum password policy: at least 8
// characters with a letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password", "Password must be at least 8 characters")
	}

	var hasLetter, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password", "Password must contain at least one letter and one digit")
	}

	return nil
}

// RegisterCitizen creates a citizen account and logs it in
func (s *authServiceImpl) RegisterCitizen(ctx context.Context, req *dto.RegisterCitizenRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "Full name cannot be empty")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hashed,
		FullName: fullName,
		RoleType: models.RoleCitizen,
		IsActive: true,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = &phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		user.Address = &address
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("Citizen registered")
	return s.issueTokens(ctx, user)
}

// RegisterStaff creates a staff account bound to the city and department the
// access code was issued for
func (s *authServiceImpl) RegisterStaff(ctx context.Context, req *dto.RegisterStaffRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName", "Full name cannot be empty")
	}

	city, err := s.cityRepo.GetByID(ctx, req.CityID)
	if err != nil {
		return nil, err
	}
	if !city.IsActive {
		return nil, apperrors.ErrCityInactive
	}

	department, err := s.departmentRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !department.IsActive {
		return nil, apperrors.ErrDepartmentInactive
	}

	if _, err := s.accessCodeService.Validate(ctx, req.AccessCode, city.ID, department.ID); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     hashed,
		FullName:     fullName,
		RoleType:     models.RoleStaff,
		CityID:       &city.ID,
		DepartmentID: &department.ID,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = &phone
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.City = city
	user.Department = department
	logger.Info().Int64("userID", user.ID).Int64("cityID", city.ID).Int64("departmentID", department.ID).Msg("Staff registered")
	return s.issueTokens(ctx, user)
}

// Login authenticates a user and returns a token pair with the profile
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return s.issueTokens(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// new pair is issued
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &response.Token, nil
}

// GetProfile returns a user's profile with their landing route
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildProfile(ctx, user), nil
}

func (s *authServiceImpl) buildProfile(ctx context.Context, user *models.User) *dto.UserProfile {
	profile := &dto.UserProfile{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		RoleType:     string(user.RoleType),
		Phone:        user.Phone,
		Address:      user.Address,
		CityID:       user.CityID,
		DepartmentID: user.DepartmentID,
		LandingRoute: authx.LandingRoute(user.RoleType),
	}

	if user.City != nil {
		profile.CityName = user.City.Name
	} else if user.CityID != nil {
		if city, err := s.cityRepo.GetByID(ctx, *user.CityID); err == nil {
			profile.CityName = city.Name
		}
	}
	if user.Department != nil {
		profile.DepartmentName = user.Department.Name
	} else if user.DepartmentID != nil {
		if department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID); err == nil {
			profile.DepartmentName = department.Name
		}
	}

	return profile
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: s.buildProfile(ctx, user),
	}, nil
}
