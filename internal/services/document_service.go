package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DocumentService stores uploaded care documents (care plans, lab
// results, insurance cards) in Cloudinary.
type DocumentService struct {
	cld *cloudinary.Cloudinary
}

func NewDocumentService() (*DocumentService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &DocumentService{cld: cld}, nil
}

var allowedDocumentTypes = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
}

// UploadDocument uploads a care document and returns its secure URL.
func (s *DocumentService) UploadDocument(ctx context.Context, file multipart.File, filename, documentID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedDocumentTypes[ext] {
		return "", fmt.Errorf("invalid file type: %s. Allowed types: pdf, jpg, jpeg, png, heic", ext)
	}

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("doc_%s", documentID),
		Folder:       "carecircle/documents",
		ResourceType: "auto",
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return result.SecureURL, nil
}

// DeleteDocument removes a previously uploaded document from Cloudinary.
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: fmt.Sprintf("carecircle/documents/doc_%s", documentID),
	})
	return err
}
