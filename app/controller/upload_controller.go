package controller

import (
	"net/http"

	"go.uber.org/zap"

	"mugix-storefront/imageset"
	"mugix-storefront/models"
	"mugix-storefront/utils"
)

// UploadController stores single images for forms that manage URLs themselves
type UploadController struct {
	uploader imageset.Uploader
	logger   *zap.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploader imageset.Uploader, logger *zap.Logger) *UploadController {
	return &UploadController{uploader: uploader, logger: logger}
}

// Upload handles POST /api/upload
// Multipart form with a single file under "image"; returns {"url": ...}
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imageset.MaxFileSize+(1<<20))
	if err := r.ParseMultipartForm(imageset.MaxFileSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	url, err := c.uploader.Upload(r.Context(), imageset.FromMultipart(files[0]))
	if err != nil {
		writeServiceError(w, c.logger, "upload image", err, "")
		return
	}
	_ = utils.WriteJSON(w, http.StatusOK, models.UploadResponse{URL: url})
}
