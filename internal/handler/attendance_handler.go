package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// AttendanceHandler handles attendance marking and views.
type AttendanceHandler struct {
	repo *repository.AttendanceRepository
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(repo *repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo}
}

// Mark godoc
// @Summary Mark attendance
// @Description Record one student's status for a course on a date; re-marking overwrites
// @Tags Attendance
// @Accept json
// @Produce json
// @Param course_id path string true "Course ID"
// @Param payload body repository.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{course_id}/attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req repository.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.CourseID = c.Param("course_id")

	if err := h.repo.Mark(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Attendance marked successfully")
}

// Course godoc
// @Summary Course attendance
// @Description Full attendance map for one course, date to student to entry
// @Tags Attendance
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{course_id}/attendance [get]
func (h *AttendanceHandler) Course(c *gin.Context) {
	records, err := h.repo.CourseAttendance(c.Request.Context(), c.Param("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records, "")
}

// Student godoc
// @Summary Student attendance
// @Description One student's attendance reshaped as course to date to entry
// @Tags Attendance
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /students/{email}/attendance [get]
func (h *AttendanceHandler) Student(c *gin.Context) {
	records, err := h.repo.StudentAttendance(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records, "")
}
