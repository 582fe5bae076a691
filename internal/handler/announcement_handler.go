package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// AnnouncementHandler handles announcement publishing and audience-filtered
// listing.
type AnnouncementHandler struct {
	repo *repository.AnnouncementRepository
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(repo *repository.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo}
}

// List godoc
// @Summary List visible announcements
// @Description Announcements filtered to the caller's role, department and email; admins see everything
// @Tags Announcements
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if claims.Role == models.RoleAdmin {
		announcements, err := h.repo.All(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, announcements, "")
		return
	}

	announcements, err := h.repo.FilterFor(c.Request.Context(), string(claims.Role), claims.Department, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, announcements, "")
}

// Create godoc
// @Summary Create announcement
// @Description Publish an announcement; empty target lists mean no restriction on that dimension
// @Tags Announcements
// @Accept json
// @Produce json
// @Param payload body repository.CreateAnnouncementRequest true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req repository.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.AuthorEmail = claims.Email

	id, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"announcement_id": id}, "Announcement created successfully")
}

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "announcement id must be an integer"))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Announcement deleted successfully")
}
