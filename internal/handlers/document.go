package handlers

import (
	"net/http"

	"carecircle/internal/database"
	"carecircle/internal/models"
	"carecircle/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDocumentSize = 10 << 20 // 10 MB

// UploadDocument stores a care document (multipart field "file") against
// a care subject
func UploadDocument(c *gin.Context) {
	caregiverID := c.GetString("caregiver_id")
	subjectID := c.PostForm("subject_id")
	title := c.PostForm("title")

	if subjectID == "" || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject_id and title are required"})
		return
	}

	db := database.GetDB()

	var subject models.CareSubject
	if err := db.Where("id = ? AND caregiver_id = ?", subjectID, caregiverID).First(&subject).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care subject not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 10 MB)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer file.Close()

	documentService, err := services.NewDocumentService()
	if err != nil {
		handleError(c, http.StatusServiceUnavailable, "Document storage not configured", err)
		return
	}

	documentID := uuid.NewString()
	fileURL, err := documentService.UploadDocument(c.Request.Context(), file, fileHeader.Filename, documentID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to store document", err)
		return
	}

	document := models.CareDocument{
		ID:          documentID,
		CaregiverID: caregiverID,
		SubjectID:   subject.ID,
		Title:       title,
		FileURL:     fileURL,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	if err := db.Create(&document).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to save document", err)
		return
	}

	c.JSON(http.StatusCreated, document)
}

// GetDocuments lists care documents, optionally scoped to one subject
func GetDocuments(c *gin.Context) {
	query := database.GetDB().Where("caregiver_id = ?", c.GetString("caregiver_id"))
	if subjectID := c.Query("subject_id"); subjectID != "" {
		query = query.Where("subject_id = ?", subjectID)
	}

	var documents []models.CareDocument
	if err := query.Order("created_at desc").Find(&documents).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}

	c.JSON(http.StatusOK, documents)
}
