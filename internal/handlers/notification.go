package handlers

import (
	"net/http"
	"time"

	"carecircle/internal/database"
	"carecircle/internal/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's in-app notifications, newest first
func GetNotifications(c *gin.Context) {
	query := database.GetDB().Where("caregiver_id = ?", c.GetString("caregiver_id"))
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&notifications).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead stamps a notification's read timestamp
func MarkNotificationRead(c *gin.Context) {
	db := database.GetDB()

	var notification models.Notification
	err := db.Where("id = ? AND caregiver_id = ?", c.Param("id"), c.GetString("caregiver_id")).
		First(&notification).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.ReadAt == nil {
		now := time.Now()
		notification.ReadAt = &now
		if err := db.Save(&notification).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to mark notification read", err)
			return
		}
	}

	c.JSON(http.StatusOK, notification)
}
