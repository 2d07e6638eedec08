package controllers

import (
	"log"
	"net/http"

	"pingly_server/services"
	"pingly_server/utils"
)

// ImageController hands out presigned S3 URLs for profile images.
type ImageController struct {
	Images *services.ImageService
}

func NewImageController(images *services.ImageService) *ImageController {
	return &ImageController{Images: images}
}

// GeneratePresignedURL generates a presigned URL for S3 uploads
func (c *ImageController) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		log.Printf("Error decoding request body: %v", err)
		badRequest(w, "Invalid request payload")
		return
	}

	url, key, err := c.Images.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating pre-signed URL: %v", err)
		writeServiceError(w, err)
		return
	}

	log.Printf("GeneratePresignedURL: generated upload URL for %s", key)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url, "fileName": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (c *ImageController) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := utils.DecodeJSONBody(r, &payload); err != nil {
		badRequest(w, "Invalid request payload")
		return
	}

	url, err := c.Images.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"url": url})
}
