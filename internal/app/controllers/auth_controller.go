package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterCitizen handles citizen registration
func (c *AuthController) RegisterCitizen(ctx *gin.Context) {
	var req dto.RegisterCitizenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	response, err := c.authService.RegisterCitizen(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(response))
}

// RegisterStaff handles staff registration with an access code
func (c *AuthController) RegisterStaff(ctx *gin.Context) {
	var req dto.RegisterStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	response, err := c.authService.RegisterStaff(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(response))
}

// Login handles user login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	response, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// RefreshToken rotates a refresh token
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	token, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(token))
}

// GetProfile returns the authenticated user's profile
func (c *AuthController) GetProfile(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := c.authService.GetProfile(ctx, actor.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
