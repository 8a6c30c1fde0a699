package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIResponse is the standard envelope for API responses
type APIResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse creates a success response wrapping the given payload
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a success response carrying only a message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// HandleValidationError writes a 400 response describing binding failures.
// validator.ValidationErrors are expanded per field, anything else is
// reported as a single generic validation error.
func HandleValidationError(ctx *gin.Context, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		errs := NewValidationErrors()
		for _, fieldErr := range validationErrs {
			errs.AddError(fieldErr.Field(), validationMessage(fieldErr))
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(errs.Errors)
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(detail))
		return
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, err.Error())
	ctx.JSON(http.StatusBadRequest, NewErrorResponse(detail))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("Failed validation on '%s'", fe.Tag())
	}
}
