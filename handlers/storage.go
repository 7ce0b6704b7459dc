package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"citylinker/services/storage"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 5 << 20 // 5MB per file
)

// StorageHandler serves the provider image upload endpoint.
type StorageHandler struct {
	Service storage.StorageService
}

// NewStorageHandler creates a StorageHandler.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: svc}
}

// UploadProviderImagesHandler handles POST /api/providers/multiple. It accepts
// up to five image files under the "images" multipart field and returns their
// public URLs.
func (h *StorageHandler) UploadProviderImagesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "No files uploaded", "")
		return
	}
	if len(files) > maxUploadFiles {
		utils.JSONError(c, http.StatusBadRequest,
			fmt.Sprintf("Too many files: at most %d images per upload", maxUploadFiles), "")
		return
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxUploadFileSize {
			utils.JSONError(c, http.StatusBadRequest,
				fmt.Sprintf("File %s exceeds the 5MB limit", fh.Filename), "")
			return
		}
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			utils.JSONError(c, http.StatusBadRequest, "Only image files are allowed", fh.Filename)
			return
		}

		src, err := fh.Open()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read uploaded file", "")
			return
		}
		name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
		url, err := h.Service.Save("providers", name, src)
		src.Close()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Failed to store uploaded file", "")
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
