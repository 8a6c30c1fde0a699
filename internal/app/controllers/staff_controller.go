package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
)

// StaffController handles the staff side of the complaint lifecycle
type StaffController struct {
	issueService services.IssueService
}

// NewStaffController creates a new StaffController
func NewStaffController(issueService services.IssueService) *StaffController {
	return &StaffController{
		issueService: issueService,
	}
}

// ListIssues returns complaints routed to the staff member's city and
// department. The filter query accepts all, pending, inprogress or resolved.
func (c *StaffController) ListIssues(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	filter := ctx.DefaultQuery("filter", "all")
	issues, err := c.issueService.ListForStaff(ctx, actor, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueResponses(issues)))
}

// GetIssue returns one complaint inside the staff member's scope
func (c *StaffController) GetIssue(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	issue, err := c.issueService.GetForStaff(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueResponse(issue)))
}

// UpdateStatus moves a complaint to a new status
func (c *StaffController) UpdateStatus(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateIssueStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	issue, err := c.issueService.TransitionStatus(ctx, actor, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueResponse(issue)))
}
