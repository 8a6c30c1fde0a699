package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// City errors
var (
	ErrCityNotFound   = errors.New("city not found")
	ErrCityInactive   = errors.New("city is not active")
	ErrCityCodeExists = errors.New("city code already exists")
)

// Department errors
var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentInactive   = errors.New("department is not active")
	ErrDepartmentCodeExists = errors.New("department code already exists")
)

// Staff access code errors
var (
	ErrAccessCodeNotFound = errors.New("staff access code not found")
	ErrAccessCodeExists   = errors.New("a code already exists for this city/department/year combination")
	// ErrAccessCodeInvalid covers every validation failure (unknown code,
	// inactive, scope mismatch) with one message so a caller cannot probe
	// which part was wrong.
	ErrAccessCodeInvalid = errors.New("invalid staff access code for selected city and department")
)

// Issue errors
var (
	ErrIssueNotFound      = errors.New("issue not found")
	ErrInvalidIssueStatus = errors.New("invalid issue status")
	ErrBackwardTransition = errors.New("status cannot move backward")
	ErrIssueNotResolved   = errors.New("issue is not resolved yet")
	ErrIssueAlreadyRated  = errors.New("issue has already been rated")
	ErrInvalidImageUpload = errors.New("invalid image upload")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a field-scoped validation error.
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
