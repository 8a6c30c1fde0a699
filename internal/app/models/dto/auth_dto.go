package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterCitizenRequest represents a citizen registration request
type RegisterCitizenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// RegisterStaffRequest represents a staff registration request. The access
// code must match an active code issued for the selected city and department.
type RegisterStaffRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName" binding:"required"`
	Phone        string `json:"phone,omitempty"`
	CityID       int64  `json:"cityId" binding:"required,min=1"`
	DepartmentID int64  `json:"departmentId" binding:"required,min=1"`
	AccessCode   string `json:"accessCode" binding:"required"`
}

// UserProfile represents a user's profile information
type UserProfile struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"fullName"`
	RoleType       string  `json:"roleType"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	CityID         *int64  `json:"cityId,omitempty"`
	CityName       string  `json:"cityName,omitempty"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
	DepartmentName string  `json:"departmentName,omitempty"`
	LandingRoute   string  `json:"landingRoute"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserProfile  `json:"user"`
}
