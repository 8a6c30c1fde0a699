package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/citycare/citycare/internal/app/models/dto"
	"github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/middleware"
)

// NotificationController handles notification operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

func (c *NotificationController) requireActor(ctx *gin.Context) (int64, bool) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return actor.ID, true
}

// List returns the user's most recent notifications
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	notifications, err := c.notificationService.List(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(toNotificationResponses(notifications)))
}

// UnreadCount returns how many unread notifications the user has
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.UnreadCount(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UnreadCountResponse{Count: count}))
}

// MarkRead marks one notification read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification marked as read"))
}

// MarkAllRead marks all of the user's notifications read
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("All notifications marked as read"))
}

// Delete removes one notification
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.Delete(ctx, id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification deleted"))
}

// DeleteRead removes all of the user's read notifications
func (c *NotificationController) DeleteRead(ctx *gin.Context) {
	userID, ok := c.requireActor(ctx)
	if !ok {
		return
	}

	deleted, err := c.notificationService.DeleteRead(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"deleted": deleted}))
}
