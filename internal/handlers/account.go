package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"carecircle/internal/database"
	"carecircle/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignUp creates a caregiver account and returns its API token. The
// token is only ever returned here; clients must store it.
func SignUp(c *gin.Context) {
	var request models.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	db := database.GetDB()

	var existing models.CaregiverProfile
	err := db.Where("email = ?", request.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to check existing account", err)
		return
	}

	profile := models.CaregiverProfile{
		Email:    request.Email,
		FullName: request.FullName,
		Phone:    request.Phone,
		APIToken: uuid.NewString(),
	}

	// New accounts start a free trial; its milestone reminders come from
	// the trial reminder class.
	trialDays := 14
	if v := os.Getenv("TRIAL_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			trialDays = parsed
		}
	}
	trialEnd := time.Now().UTC().Add(time.Duration(trialDays) * 24 * time.Hour)
	profile.TrialEndsAt = &trialEnd

	if err := db.Create(&profile).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":            profile.ID,
		"email":         profile.Email,
		"full_name":     profile.FullName,
		"trial_ends_at": profile.TrialEndsAt,
		"api_token":     profile.APIToken,
	})
}

// GetProfile returns the authenticated caregiver's profile
func GetProfile(c *gin.Context) {
	caregiverID := c.GetString("caregiver_id")

	var profile models.CaregiverProfile
	if err := database.GetDB().First(&profile, "id = ?", caregiverID).Error; err != nil {
		handleError(c, http.StatusNotFound, "Profile not found", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates caregiver settings, including the SMS opt-in
func UpdateProfile(c *gin.Context) {
	var request models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	var profile models.CaregiverProfile
	if err := db.First(&profile, "id = ?", caregiverID).Error; err != nil {
		handleError(c, http.StatusNotFound, "Profile not found", err)
		return
	}

	if request.FullName != nil {
		profile.FullName = *request.FullName
	}
	if request.Phone != nil {
		profile.Phone = request.Phone
	}
	if request.SMSRemindersEnabled != nil {
		profile.SMSRemindersEnabled = *request.SMSRemindersEnabled
	}

	if err := db.Save(&profile).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
