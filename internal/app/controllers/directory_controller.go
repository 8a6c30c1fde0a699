package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
)

// DirectoryController serves the public city and department listings used by
// registration and complaint forms
type DirectoryController struct {
	cityService       services.CityService
	departmentService services.DepartmentService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(cityService services.CityService, departmentService services.DepartmentService) *DirectoryController {
	return &DirectoryController{
		cityService:       cityService,
		departmentService: departmentService,
	}
}

// ListCities returns active cities
func (c *DirectoryController) ListCities(ctx *gin.Context) {
	cities, err := c.cityService.List(ctx, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toCityResponses(cities)))
}

// ListDepartments returns active departments
func (c *DirectoryController) ListDepartments(ctx *gin.Context) {
	departments, err := c.departmentService.List(ctx, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toDepartmentResponses(departments)))
}
