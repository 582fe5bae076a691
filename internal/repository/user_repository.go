package repository

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// UserRepository provides CRUD over the users document. Email uniqueness is
// enforced at creation only; deleting a user does not cascade, so dangling
// references in attendance, submissions and courses persist by design.
type UserRepository struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(st *store.Store, validate *validator.Validate, logger *zap.Logger) *UserRepository {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{store: st, validator: validate, logger: logger}
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Email      string          `json:"email" validate:"required,email"`
	Password   string          `json:"password" validate:"required,min=6"`
	Role       models.UserRole `json:"role" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Department string          `json:"department"`
	StudentID  string          `json:"student_id"`
	Year       *int            `json:"year"`
	Semester   *int            `json:"semester"`
	Section    string          `json:"section"`
}

// UpdateUserRequest carries partial fields for a user update. Nil fields are
// left untouched; an empty or missing password preserves the stored digest.
type UpdateUserRequest struct {
	Password   *string          `json:"password"`
	Role       *models.UserRole `json:"role"`
	Name       *string          `json:"name"`
	Department *string          `json:"department"`
	StudentID  *string          `json:"student_id"`
	Year       *int             `json:"year"`
	Semester   *int             `json:"semester"`
	Section    *string          `json:"section"`
}

// All returns every user profile, sorted by email.
func (r *UserRepository) All(ctx context.Context) ([]models.UserProfile, error) {
	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for email, u := range users {
		profiles = append(profiles, u.Profile(email))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Email < profiles[j].Email })
	return profiles, nil
}

// Get returns a user by exact email match.
func (r *UserRepository) Get(ctx context.Context, email string) (*models.User, error) {
	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok {
		return nil, appErrors.NotFound("User not found")
	}
	return &user, nil
}

// Create adds a new user, failing when the email already exists.
func (r *UserRepository) Create(ctx context.Context, req CreateUserRequest) error {
	if err := r.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if !req.Role.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}

	defer r.store.Lock(store.EntityUsers)()

	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return err
	}
	if _, exists := users[req.Email]; exists {
		return appErrors.Conflict("Email already exists")
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	users[req.Email] = models.User{
		Password:   digest,
		Role:       req.Role,
		Name:       req.Name,
		CreatedAt:  time.Now().UTC(),
		Department: req.Department,
		StudentID:  req.StudentID,
		Year:       req.Year,
		Semester:   req.Semester,
		Section:    req.Section,
	}
	return r.store.Save(store.EntityUsers, users)
}

// Update applies partial fields to an existing user. The password digest is
// replaced only when a non-empty password is supplied.
func (r *UserRepository) Update(ctx context.Context, email string, req UpdateUserRequest) error {
	defer r.store.Lock(store.EntityUsers)()

	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return err
	}
	user, ok := users[email]
	if !ok {
		return appErrors.NotFound("User not found")
	}

	if req.Password != nil && *req.Password != "" {
		digest, err := HashPassword(*req.Password)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		user.Password = digest
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "invalid role")
		}
		user.Role = *req.Role
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.StudentID != nil {
		user.StudentID = *req.StudentID
	}
	if req.Year != nil {
		user.Year = req.Year
	}
	if req.Semester != nil {
		user.Semester = req.Semester
	}
	if req.Section != nil {
		user.Section = *req.Section
	}

	users[email] = user
	return r.store.Save(store.EntityUsers, users)
}

// Delete removes a user. No cascade runs against other documents.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	defer r.store.Lock(store.EntityUsers)()

	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return err
	}
	if _, ok := users[email]; !ok {
		return appErrors.NotFound("User not found")
	}
	delete(users, email)
	return r.store.Save(store.EntityUsers, users)
}

// Authenticate returns the user's profile when the email exists and the
// password matches its digest; a lookup miss and a digest mismatch are
// indistinguishable to the caller.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok || !CheckPassword(user.Password, password) {
		return nil, appErrors.ErrInvalidCredentials
	}
	profile := user.Profile(email)
	return &profile, nil
}

// CountByRole returns user counts per role for the dashboard.
func (r *UserRepository) CountByRole(ctx context.Context) (map[models.UserRole]int, error) {
	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return nil, err
	}
	counts := make(map[models.UserRole]int)
	for _, u := range users {
		counts[u.Role]++
	}
	return counts, nil
}

// Seed creates the default admin, teacher and student accounts when the user
// store is empty. A deployment convenience for first runs, not a security
// boundary.
func (r *UserRepository) Seed(ctx context.Context) error {
	defer r.store.Lock(store.EntityUsers)()

	var users map[string]models.User
	if err := r.store.Load(store.EntityUsers, &users); err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	year := 2
	defaults := []CreateUserRequest{
		{Email: "admin@college.edu", Password: "admin123", Role: models.RoleAdmin, Name: "Admin User"},
		{Email: "teacher@college.edu", Password: "teacher123", Role: models.RoleTeacher, Name: "Demo Teacher", Department: "Computer Science"},
		{Email: "student@college.edu", Password: "student123", Role: models.RoleStudent, Name: "Demo Student", Department: "Computer Science", StudentID: "S12345", Year: &year},
	}
	for _, d := range defaults {
		digest, err := HashPassword(d.Password)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		users[d.Email] = models.User{
			Password:   digest,
			Role:       d.Role,
			Name:       d.Name,
			CreatedAt:  time.Now().UTC(),
			Department: d.Department,
			StudentID:  d.StudentID,
			Year:       d.Year,
		}
	}
	r.logger.Info("seeded default accounts", zap.Int("count", len(defaults)))
	return r.store.Save(store.EntityUsers, users)
}
