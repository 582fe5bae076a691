package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// ExamHandler handles exams, subjects and exam results.
type ExamHandler struct {
	repo *repository.ExamRepository
}

// NewExamHandler creates a new exam handler.
func NewExamHandler(repo *repository.ExamRepository) *ExamHandler {
	return &ExamHandler{repo: repo}
}

// ListExams godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *gin.Context) {
	exams, err := h.repo.AllExams(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exams, "")
}

// GetExam godoc
// @Summary Get exam
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{exam_id} [get]
func (h *ExamHandler) GetExam(c *gin.Context) {
	exam, err := h.repo.GetExam(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, exam, "")
}

// CreateExam godoc
// @Summary Schedule exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body repository.CreateExamRequest true "Create exam payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exams [post]
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req repository.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	examID, err := h.repo.AddExam(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"exam_id": examID}, "Exam scheduled successfully")
}

// UpdateExam godoc
// @Summary Update exam
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param payload body repository.UpdateExamRequest true "Update exam payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{exam_id} [put]
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	var req repository.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.UpdateExam(c.Request.Context(), c.Param("exam_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Exam updated successfully")
}

// DeleteExam godoc
// @Summary Delete exam
// @Description Remove an exam and every result recorded for it
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{exam_id} [delete]
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	if err := h.repo.DeleteExam(c.Request.Context(), c.Param("exam_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Exam deleted successfully")
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *ExamHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.repo.AllSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects, "")
}

// CreateSubject godoc
// @Summary Register subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body repository.CreateSubjectRequest true "Create subject payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects [post]
func (h *ExamHandler) CreateSubject(c *gin.Context) {
	var req repository.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	subjectID, err := h.repo.AddSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"subject_id": subjectID}, "Subject added successfully")
}

// UpdateSubject godoc
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param subject_id path string true "Subject ID"
// @Param payload body repository.UpdateSubjectRequest true "Update subject payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{subject_id} [put]
func (h *ExamHandler) UpdateSubject(c *gin.Context) {
	var req repository.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.UpdateSubject(c.Request.Context(), c.Param("subject_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Subject updated successfully")
}

// DeleteSubject godoc
// @Summary Delete subject
// @Tags Subjects
// @Produce json
// @Param subject_id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{subject_id} [delete]
func (h *ExamHandler) DeleteSubject(c *gin.Context) {
	if err := h.repo.DeleteSubject(c.Request.Context(), c.Param("subject_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Subject deleted successfully")
}

// AddResult godoc
// @Summary Record exam result
// @Description Upsert one (exam, student, subject) result
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param payload body repository.AddResultRequest true "Result payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{exam_id}/results [post]
func (h *ExamHandler) AddResult(c *gin.Context) {
	var req repository.AddResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.repo.AddResult(c.Request.Context(), c.Param("exam_id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Result added successfully")
}

// ExamResults godoc
// @Summary List results for an exam
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /exams/{exam_id}/results [get]
func (h *ExamHandler) ExamResults(c *gin.Context) {
	results, err := h.repo.ExamResults(c.Request.Context(), c.Param("exam_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results, "")
}

// StudentResults godoc
// @Summary List a student's exam results
// @Tags Exams
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /students/{email}/results [get]
func (h *ExamHandler) StudentResults(c *gin.Context) {
	results, err := h.repo.StudentResults(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, results, "")
}

// DeleteResult godoc
// @Summary Delete one exam result
// @Tags Exams
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param email path string true "Student email"
// @Param subject_id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{exam_id}/results/{email}/{subject_id} [delete]
func (h *ExamHandler) DeleteResult(c *gin.Context) {
	if err := h.repo.DeleteResult(c.Request.Context(), c.Param("exam_id"), c.Param("email"), c.Param("subject_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Result deleted successfully")
}
