package handlers

import (
	"net/http"

	"fleet-admin/internal/services"
	"fleet-admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// GetNotifications retrieves all notifications, newest first
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetAllNotifications()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve notifications", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// GetUnreadCount retrieves the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.notificationService.GetUnreadCount()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to count unread notifications", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", gin.H{"count": count})
}

// CreateNotification creates a manual notification
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req services.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	notification, err := h.notificationService.CreateNotification(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to create notification", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Notification created successfully", notification)
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := c.Param("id")
	if notificationID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.MarkRead(notificationID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to mark notification as read", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead marks every notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications as read", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteNotification deletes a notification
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID := c.Param("id")
	if notificationID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Notification ID is required", nil)
		return
	}

	if err := h.notificationService.DeleteNotification(notificationID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to delete notification", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification deleted successfully", nil)
}
