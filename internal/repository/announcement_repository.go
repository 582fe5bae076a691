package repository

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// AnnouncementRepository manages the flat announcements list and its audience
// filtering.
type AnnouncementRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementRepository creates a new instance of AnnouncementRepository.
func NewAnnouncementRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *AnnouncementRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementRepository{store: st, validator: validate, logger: logger}
}

// CreateAnnouncementRequest is the payload for publishing an announcement.
// Target lists are stored as given; nothing checks that the named roles,
// departments or emails exist.
type CreateAnnouncementRequest struct {
	Title             string   `json:"title" validate:"required"`
	Content           string   `json:"content" validate:"required"`
	AuthorEmail       string   `json:"author_email" validate:"required,email"`
	TargetRoles       []string `json:"target_roles"`
	TargetDepartments []string `json:"target_departments"`
	TargetEmails      []string `json:"target_emails"`
}

// All returns every announcement in insertion order.
func (r *AnnouncementRepository) All(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := r.store.Load(store.EntityAnnouncements, &announcements); err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return announcements, nil
}

// Create appends an announcement and returns its integer ID. IDs derive from
// the maximum surviving ID rather than the list length, so they stay stable
// under deletion.
func (r *AnnouncementRepository) Create(ctx context.Context, req CreateAnnouncementRequest) (int, error) {
	if err := r.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	defer r.store.Lock(store.EntityAnnouncements)()

	var announcements []models.Announcement
	if err := r.store.Load(store.EntityAnnouncements, &announcements); err != nil {
		return 0, err
	}

	id := 1
	for _, a := range announcements {
		if a.AnnouncementID >= id {
			id = a.AnnouncementID + 1
		}
	}

	announcements = append(announcements, models.Announcement{
		AnnouncementID:    id,
		Title:             req.Title,
		Content:           req.Content,
		AuthorEmail:       req.AuthorEmail,
		TargetRoles:       req.TargetRoles,
		TargetDepartments: req.TargetDepartments,
		TargetEmails:      req.TargetEmails,
		CreatedAt:         time.Now().UTC(),
	})

	if err := r.store.Save(store.EntityAnnouncements, announcements); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes one announcement by ID.
func (r *AnnouncementRepository) Delete(ctx context.Context, announcementID int) error {
	defer r.store.Lock(store.EntityAnnouncements)()

	var announcements []models.Announcement
	if err := r.store.Load(store.EntityAnnouncements, &announcements); err != nil {
		return err
	}

	for i := range announcements {
		if announcements[i].AnnouncementID == announcementID {
			announcements = append(announcements[:i], announcements[i+1:]...)
			return r.store.Save(store.EntityAnnouncements, announcements)
		}
	}
	return appErrors.NotFound("Announcement not found")
}

// FilterFor returns the announcements visible to a viewer identified by
// role, department and email. See models.Announcement.VisibleTo for the
// OR-across-dimensions semantics.
func (r *AnnouncementRepository) FilterFor(ctx context.Context, role, department, email string) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := r.store.Load(store.EntityAnnouncements, &announcements); err != nil {
		return nil, err
	}

	filtered := make([]models.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if a.VisibleTo(role, department, email) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}
