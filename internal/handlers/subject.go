package handlers

import (
	"fmt"
	"net/http"

	"carecircle/internal/database"
	"carecircle/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateSubject adds a care subject to the caller's account
func CreateSubject(c *gin.Context) {
	var request models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	subject := models.CareSubject{
		CaregiverID: c.GetString("caregiver_id"),
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		Email:       request.Email,
		DateOfBirth: request.DateOfBirth,
	}

	if err := database.GetDB().Create(&subject).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create care subject", err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// GetSubjects lists the caller's care subjects
func GetSubjects(c *gin.Context) {
	var subjects []models.CareSubject
	err := database.GetDB().
		Where("caregiver_id = ?", c.GetString("caregiver_id")).
		Order("created_at asc").
		Find(&subjects).Error
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list care subjects", err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}
