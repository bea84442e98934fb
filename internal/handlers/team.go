package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"carecircle/internal/database"
	"carecircle/internal/models"
	"carecircle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InviteTeamMember creates a pending membership scoped to a set of care
// subjects and emails the invitee an accept link
func InviteTeamMember(c *gin.Context) {
	var request models.InviteTeamMemberRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	caregiverID := c.GetString("caregiver_id")
	db := database.GetDB()

	// Every referenced subject must belong to the inviter
	var count int64
	db.Model(&models.CareSubject{}).
		Where("caregiver_id = ? AND id IN ?", caregiverID, request.CareSubjectIDs).
		Count(&count)
	if count != int64(len(request.CareSubjectIDs)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more care subjects not found"})
		return
	}

	membership := models.TeamMembership{
		CaregiverID:    caregiverID,
		Email:          request.Email,
		Name:           request.Name,
		CareSubjectIDs: request.CareSubjectIDs,
	}

	if err := db.Create(&membership).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create invitation", err)
		return
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	acceptURL := fmt.Sprintf("%s/team/accept?token=%s", baseURL, membership.InviteToken)

	result := services.NewEmailService().SendInvitation(
		membership.Email, membership.Name, c.GetString("caregiver_name"), acceptURL)
	if !result.Success {
		// The invite row exists either way; the inviter can re-share the link
		log.Warn().Err(result.Err).Str("to", membership.Email).Msg("invitation email not delivered")
	}

	c.JSON(http.StatusCreated, membership)
}

// AcceptInvite marks a membership accepted via the emailed token link.
// No authentication: the token is the credential.
func AcceptInvite(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	db := database.GetDB()

	var membership models.TeamMembership
	if err := db.Where("invite_token = ?", token).First(&membership).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
		return
	}

	if membership.Status == models.MembershipAccepted {
		c.String(http.StatusOK, "You have already joined this care team.")
		return
	}

	now := time.Now()
	membership.Status = models.MembershipAccepted
	membership.RespondedAt = &now

	if err := db.Save(&membership).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to accept invitation", err)
		return
	}

	c.String(http.StatusOK, "Welcome aboard! You'll now receive care reminders for your assigned subjects.")
}

// GetTeamMembers lists the caller's team memberships
func GetTeamMembers(c *gin.Context) {
	var memberships []models.TeamMembership
	err := database.GetDB().
		Where("caregiver_id = ?", c.GetString("caregiver_id")).
		Order("invited_at asc").
		Find(&memberships).Error
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list team members", err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}
