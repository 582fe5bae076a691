package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// ProjectHandler handles per-course project endpoints.
type ProjectHandler struct {
	repo *repository.ProjectRepository
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

// List godoc
// @Summary List course projects
// @Tags Projects
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{course_id}/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.repo.CourseProjects(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, projects, "")
}

// Create godoc
// @Summary Create project
// @Description Append a project to a course; the ID is generated
// @Tags Projects
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param payload body repository.CreateProjectRequest true "Create project payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{course_id}/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req repository.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	projectID, err := h.repo.Create(c.Request.Context(), c.Param("course_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"project_id": projectID}, "Project created successfully")
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param project_id path string true "Project ID"
// @Param payload body repository.UpdateProjectRequest true "Update project payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id}/projects/{project_id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var req repository.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("course_id"), c.Param("project_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Project updated successfully")
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param course_id path string true "Course ID"
// @Param project_id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{course_id}/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("course_id"), c.Param("project_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Project deleted successfully")
}
