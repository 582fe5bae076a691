package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// DepartmentHandler handles department CRUD endpoints.
type DepartmentHandler struct {
	repo *repository.DepartmentRepository
}

// NewDepartmentHandler creates a new department handler.
func NewDepartmentHandler(repo *repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{repo: repo}
}

// List godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.repo.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, departments, "")
}

// Get godoc
// @Summary Get department
// @Tags Departments
// @Produce json
// @Param dept_id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /departments/{dept_id} [get]
func (h *DepartmentHandler) Get(c *gin.Context) {
	dept, err := h.repo.Get(c.Request.Context(), c.Param("dept_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dept, "")
}

// Create godoc
// @Summary Add department
// @Tags Departments
// @Accept json
// @Produce json
// @Param payload body repository.CreateDepartmentRequest true "Create department payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /departments [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req repository.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Add(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"dept_id": req.DeptID}, "Department added successfully")
}

// Update godoc
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Param dept_id path string true "Department ID"
// @Param payload body repository.UpdateDepartmentRequest true "Update department payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /departments/{dept_id} [put]
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req repository.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.Update(c.Request.Context(), c.Param("dept_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Department updated successfully")
}

// Delete godoc
// @Summary Delete department
// @Description Remove a department unless a course still references its name
// @Tags Departments
// @Produce json
// @Param dept_id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /departments/{dept_id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("dept_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Department deleted successfully")
}
