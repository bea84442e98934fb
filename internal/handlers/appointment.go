package handlers

import (
	"fmt"
	"net/http"
	"time"

	"carecircle/internal/database"
	"carecircle/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateAppointment schedules an appointment for one of the caller's
// care subjects
func CreateAppointment(c *gin.Context) {
	var request models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	if request.StartTime.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointment time must be in the future"})
		return
	}

	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	var subject models.CareSubject
	if err := db.Where("id = ? AND caregiver_id = ?", request.SubjectID, caregiverID).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care subject not found"})
		return
	}

	appointment := models.Appointment{
		CaregiverID: caregiverID,
		SubjectID:   subject.ID,
		Title:       request.Title,
		Location:    request.Location,
		Notes:       request.Notes,
		StartTime:   request.StartTime,
	}

	if err := db.Create(&appointment).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create appointment", err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists the caller's appointments with optional
// subject/date filtering
func GetAppointments(c *gin.Context) {
	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	query := db.Preload("Subject").Where("caregiver_id = ?", caregiverID)

	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("start_time >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_time <= ?", to)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("start_time asc").Find(&appointments).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list appointments", err)
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// CancelAppointment marks an appointment cancelled; cancelled rows are
// never picked up by the reminder scan
func CancelAppointment(c *gin.Context) {
	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	var appointment models.Appointment
	if err := db.Where("id = ? AND caregiver_id = ?", c.Param("id"), caregiverID).First(&appointment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	if appointment.Status == models.AppointmentCancelled {
		c.JSON(http.StatusOK, appointment)
		return
	}

	appointment.Status = models.AppointmentCancelled
	appointment.UpdatedAt = time.Now()
	if err := db.Save(&appointment).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to cancel appointment", err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}
