package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/models"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
	"github.com/campusdesk/campusdesk-api/pkg/storage"
)

// UploadHandler stores and serves file attachments. The returned relative
// path is what callers put in the file_path field of submissions and
// certificates.
type UploadHandler struct {
	store *storage.UploadStore
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store *storage.UploadStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload godoc
// @Summary Upload file
// @Description Store a multipart file under the caller's identity
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	src, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	rel, err := h.store.Save(claims.Email, header.Filename, src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store upload"))
		return
	}
	response.Created(c, gin.H{"file_path": rel}, "File uploaded successfully")
}

// Download godoc
// @Summary Download file
// @Description Serve a stored file; students can only fetch their own uploads
// @Tags Uploads
// @Produce octet-stream
// @Param path query string true "Stored file path"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /uploads [get]
func (h *UploadHandler) Download(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rel := c.Query("path")
	if rel == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "path is required"))
		return
	}

	path, err := h.store.Resolve(rel)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid path"))
		return
	}

	if claims.Role == models.RoleStudent && !ownsUpload(claims.Email, rel) {
		response.Error(c, appErrors.ErrForbidden)
		return
	}

	c.FileAttachment(path, filepath.Base(rel))
}

// ownsUpload reports whether the stored path sits under the owner's sanitized
// directory, mirroring how UploadStore keys files. The check runs on the
// cleaned path so dot segments cannot smuggle a foreign file behind the
// owner's prefix.
func ownsUpload(email, rel string) bool {
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	prefix := storage.OwnerDir(email) + "/"
	return len(clean) > len(prefix) && strings.HasPrefix(clean, prefix)
}
