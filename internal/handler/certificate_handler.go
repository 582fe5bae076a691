package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
	"github.com/campusdesk/campusdesk-api/pkg/response"
)

// CertificateHandler handles certificate submission, listing and verification.
type CertificateHandler struct {
	repo *repository.CertificateRepository
}

// NewCertificateHandler creates a new certificate handler.
func NewCertificateHandler(repo *repository.CertificateRepository) *CertificateHandler {
	return &CertificateHandler{repo: repo}
}

// Submit godoc
// @Summary Submit certificate
// @Description Add an unverified certificate to the caller's list
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body repository.SubmitCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /certificates [post]
func (h *CertificateHandler) Submit(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req repository.SubmitCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	certificateID, err := h.repo.Submit(c.Request.Context(), claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"certificate_id": certificateID}, "Certificate submitted successfully")
}

// Verify godoc
// @Summary Verify certificate
// @Description Mark a student's certificate verified; re-verifying is harmless
// @Tags Certificates
// @Produce json
// @Param email path string true "Student email"
// @Param certificate_id path string true "Certificate ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{email}/certificates/{certificate_id}/verify [post]
func (h *CertificateHandler) Verify(c *gin.Context) {
	if err := h.repo.Verify(c.Request.Context(), c.Param("email"), c.Param("certificate_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, nil, "Certificate verified successfully")
}

// Student godoc
// @Summary List a student's certificates
// @Tags Certificates
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {object} response.Envelope
// @Router /students/{email}/certificates [get]
func (h *CertificateHandler) Student(c *gin.Context) {
	certificates, err := h.repo.StudentCertificates(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, certificates, "")
}

// All godoc
// @Summary List all certificates
// @Description The whole certificate document keyed by student email
// @Tags Certificates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /certificates [get]
func (h *CertificateHandler) All(c *gin.Context) {
	certificates, err := h.repo.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, certificates, "")
}
