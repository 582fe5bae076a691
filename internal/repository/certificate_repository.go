package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// CertificateRepository manages the per-student certificate lists.
type CertificateRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCertificateRepository creates a new instance of CertificateRepository.
func NewCertificateRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *CertificateRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateRepository{store: st, validator: validate, logger: logger}
}

// SubmitCertificateRequest is the payload for submitting a certificate.
type SubmitCertificateRequest struct {
	Title               string  `json:"title" validate:"required"`
	IssuingOrganization string  `json:"issuing_organization" validate:"required"`
	IssueDate           string  `json:"issue_date" validate:"required"`
	FilePath            *string `json:"file_path"`
}

// Submit appends a certificate to a student's list, unverified, and returns
// the generated ID of the form {email}_{n}.
func (r *CertificateRepository) Submit(ctx context.Context, studentEmail string, req SubmitCertificateRequest) (string, error) {
	if err := r.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certificate payload")
	}

	defer r.store.Lock(store.EntityCertificates)()

	var certificates models.CertificateDocument
	if err := r.store.Load(store.EntityCertificates, &certificates); err != nil {
		return "", err
	}

	prefix := studentEmail + "_"
	ids := make([]string, 0, len(certificates[studentEmail]))
	for _, c := range certificates[studentEmail] {
		ids = append(ids, c.CertificateID)
	}
	certificateID := fmt.Sprintf("%s%d", prefix, nextSuffix(ids, prefix))

	certificates[studentEmail] = append(certificates[studentEmail], models.Certificate{
		CertificateID:       certificateID,
		Title:               req.Title,
		IssuingOrganization: req.IssuingOrganization,
		IssueDate:           req.IssueDate,
		FilePath:            req.FilePath,
		SubmittedAt:         time.Now().UTC(),
		Verified:            false,
	})

	if err := r.store.Save(store.EntityCertificates, certificates); err != nil {
		return "", err
	}
	return certificateID, nil
}

// Verify marks a certificate verified, stamping verified_at. Re-verifying is
// harmless.
func (r *CertificateRepository) Verify(ctx context.Context, studentEmail, certificateID string) error {
	defer r.store.Lock(store.EntityCertificates)()

	var certificates models.CertificateDocument
	if err := r.store.Load(store.EntityCertificates, &certificates); err != nil {
		return err
	}
	entries, ok := certificates[studentEmail]
	if !ok {
		return appErrors.NotFound("Student not found")
	}

	for i := range entries {
		if entries[i].CertificateID != certificateID {
			continue
		}
		now := time.Now().UTC()
		entries[i].Verified = true
		entries[i].VerifiedAt = &now
		certificates[studentEmail] = entries
		return r.store.Save(store.EntityCertificates, certificates)
	}
	return appErrors.NotFound("Certificate not found")
}

// StudentCertificates returns one student's certificates, empty when none.
func (r *CertificateRepository) StudentCertificates(ctx context.Context, studentEmail string) ([]models.Certificate, error) {
	var certificates models.CertificateDocument
	if err := r.store.Load(store.EntityCertificates, &certificates); err != nil {
		return nil, err
	}
	entries, ok := certificates[studentEmail]
	if !ok {
		return []models.Certificate{}, nil
	}
	return entries, nil
}

// All returns the whole certificate document, for admin review.
func (r *CertificateRepository) All(ctx context.Context) (models.CertificateDocument, error) {
	var certificates models.CertificateDocument
	if err := r.store.Load(store.EntityCertificates, &certificates); err != nil {
		return nil, err
	}
	return certificates, nil
}
