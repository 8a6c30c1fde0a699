package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
	"github.com/citycare/citycare/internal/pkg/filestorage"
	"github.com/citycare/citycare/internal/pkg/logger"
)

// issueImageDirectory is where complaint images are stored
const issueImageDirectory = "issues"

// IssueController handles the citizen side of the complaint lifecycle
type IssueController struct {
	issueService       services.IssueService
	storage            filestorage.FileStorage
	rejectInvalidImage bool
}

// NewIssueController creates a new IssueController. rejectInvalidImage
// controls whether a bad attachment fails the submission or is skipped.
func NewIssueController(issueService services.IssueService, storage filestorage.FileStorage, rejectInvalidImage bool) *IssueController {
	return &IssueController{
		issueService:       issueService,
		storage:            storage,
		rejectInvalidImage: rejectInvalidImage,
	}
}

// CreateIssue handles complaint submission as a multipart form with an
// optional image attachment
func (c *IssueController) CreateIssue(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateIssueRequest
	if err := ctx.ShouldBind(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	var imageURL *string
	if file, err := ctx.FormFile("image"); err == nil && file != nil {
		if err := filestorage.CheckImage(file); err != nil {
			if c.rejectInvalidImage {
				middleware.HandleAPIError(ctx, err)
				return
			}
			logger.Warn().Str("filename", file.Filename).Int64("size", file.Size).Msg("Skipping invalid complaint image")
		} else {
			url, err := c.storage.SaveFile(file, issueImageDirectory)
			if err != nil {
				middleware.HandleAPIError(ctx, err)
				return
			}
			imageURL = &url
		}
	}

	issue, err := c.issueService.Create(ctx, actor, &req, imageURL)
	if err != nil {
		if imageURL != nil {
			if cleanupErr := c.storage.DeleteFile(*imageURL); cleanupErr != nil {
				logger.Warn().Err(cleanupErr).Str("url", *imageURL).Msg("Failed to clean up orphaned image")
			}
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(toIssueResponse(issue)))
}

// ListIssues returns the citizen's own complaints
func (c *IssueController) ListIssues(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	issues, err := c.issueService.ListForCitizen(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueResponses(issues)))
}

// GetIssue returns one of the citizen's complaints with images and rating
func (c *IssueController) GetIssue(ctx *gin.Context) {
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

	issue, err := c.issueService.GetForCitizen(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueResponse(issue)))
}

// GetSummary returns the citizen's per-status complaint counts
func (c *IssueController) GetSummary(ctx *gin.Context) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	counts, err := c.issueService.CountsForCitizen(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toIssueCountsResponse(counts)))
}

// RateIssue records a rating on a resolved complaint
func (c *IssueController) RateIssue(ctx *gin.Context) {
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

	var req dto.RateIssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.HandleValidationError(ctx, err)
		return
	}

	rating, err := c.issueService.Rate(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.RatingResponse{
		Stars:     rating.Stars,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}))
}

// parseIDParam parses a numeric path parameter, writing the error response
// itself on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
