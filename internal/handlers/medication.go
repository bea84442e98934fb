package handlers

import (
	"fmt"
	"net/http"
	"time"

	"carecircle/internal/database"
	"carecircle/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateMedication adds a tracked medication for one of the caller's
// care subjects
func CreateMedication(c *gin.Context) {
	var request models.CreateMedicationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	var subject models.CareSubject
	if err := db.Where("id = ? AND caregiver_id = ?", request.SubjectID, caregiverID).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care subject not found"})
		return
	}

	medication := models.Medication{
		CaregiverID:      caregiverID,
		SubjectID:        subject.ID,
		Name:             request.Name,
		Dosage:           request.Dosage,
		Frequency:        request.Frequency,
		RefillsRemaining: request.RefillsRemaining,
		IsActive:         true,
	}

	if err := db.Create(&medication).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create medication", err)
		return
	}

	c.JSON(http.StatusCreated, medication)
}

// GetMedications lists the caller's medications
func GetMedications(c *gin.Context) {
	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	query := db.Preload("Subject").Where("caregiver_id = ?", caregiverID)
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var medications []models.Medication
	if err := query.Order("name asc").Find(&medications).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list medications", err)
		return
	}

	c.JSON(http.StatusOK, medications)
}

// UpdateMedicationRefills sets the remaining refill count after a
// pharmacy visit. Topping back up above one refill clears the refill
// reminder marker so the next shortage triggers a fresh reminder.
func UpdateMedicationRefills(c *gin.Context) {
	var request models.UpdateRefillsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	var medication models.Medication
	if err := db.Where("id = ? AND caregiver_id = ?", c.Param("id"), caregiverID).First(&medication).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	medication.RefillsRemaining = request.RefillsRemaining
	if request.RefillsRemaining > 1 {
		medication.RefillReminderSentAt = nil
	}
	medication.UpdatedAt = time.Now()

	if err := db.Save(&medication).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update medication", err)
		return
	}

	c.JSON(http.StatusOK, medication)
}
