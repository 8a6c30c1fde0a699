package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
)

// AdminController handles administration of the directory, access codes and
// the dashboard
type AdminController struct {
	cityService       services.CityService
	departmentService services.DepartmentService
	accessCodeService services.AccessCodeService
	adminService      services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	cityService services.CityService,
	departmentService services.DepartmentService,
	accessCodeService services.AccessCodeService,
	adminService services.AdminService,
) *AdminController {
	return &AdminController{
		cityService:       cityService,
		departmentService: departmentService,
		accessCodeService: accessCodeService,
		adminService:      adminService,
	}
}

// Dashboard returns the admin dashboard counts
func (c *AdminController) Dashboard(ctx *gin.Context) {
	stats, err := c.adminService.DashboardStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// ListCities returns all cities including inactive ones
func (c *AdminController) ListCities(ctx *gin.Context) {
	cities, err := c.cityService.List(ctx, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCityResponses(cities)))
}

// CreateCity adds a new city
func (c *AdminController) CreateCity(ctx *gin.Context) {
	var req dto.CreateCityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	city, err := c.cityService.Create(ctx, req.Name, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toCityResponse(city)))
}

// UpdateCity changes a city's name and code
func (c *AdminController) UpdateCity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	city, err := c.cityService.Update(ctx, id, req.Name, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCityResponse(city)))
}

// ToggleCity flips a city between active and inactive
func (c *AdminController) ToggleCity(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	city, err := c.cityService.Toggle(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCityResponse(city)))
}

// ListDepartments returns all departments including inactive ones
func (c *AdminController) ListDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.List(ctx, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toDepartmentResponses(departments)))
}

// CreateDepartment adds a new department
func (c *AdminController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	department, err := c.departmentService.Create(ctx, req.Name, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toDepartmentResponse(department)))
}

// UpdateDepartment changes a department's name and code
func (c *AdminController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	department, err := c.departmentService.Update(ctx, id, req.Name, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toDepartmentResponse(department)))
}

// ToggleDepartment flips a department between active and inactive
func (c *AdminController) ToggleDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	department, err := c.departmentService.Toggle(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toDepartmentResponse(department)))
}

// ListAccessCodes returns all staff access codes
func (c *AdminController) ListAccessCodes(ctx *gin.Context) {
	codes, err := c.accessCodeService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AccessCodeResponse, 0, len(codes))
	for _, code := range codes {
		responses = append(responses, toAccessCodeResponse(code))
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// GenerateAccessCode issues a staff access code
func (c *AdminController) GenerateAccessCode(ctx *gin.Context) {
	var req dto.GenerateAccessCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	code, err := c.accessCodeService.Generate(ctx, req.CityID, req.DepartmentID, req.Year, req.StaffPhone)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toAccessCodeResponse(code)))
}

// ToggleAccessCode flips an access code between active and inactive
func (c *AdminController) ToggleAccessCode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	code, err := c.accessCodeService.Toggle(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toAccessCodeResponse(code)))
}

// DeleteAccessCode removes an access code
func (c *AdminController) DeleteAccessCode(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.accessCodeService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Access code deleted"))
}
