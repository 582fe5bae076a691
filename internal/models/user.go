package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// Valid reports whether the role is one of the three known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is the value stored in the users document, keyed by email. The email
// itself lives only in the map key, so it is not serialized here. Role-specific
// fields stay optional; documents written before a field existed simply omit it.
type User struct {
	Password  string    `json:"password"`
	Role      UserRole  `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Year       *int   `json:"year,omitempty"`
	Semester   *int   `json:"semester,omitempty"`
	Section    string `json:"section,omitempty"`
}

// UserProfile is the API-facing shape of a user: the map key joined back in
// and the password digest stripped.
type UserProfile struct {
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	Department string    `json:"department,omitempty"`
	StudentID  string    `json:"student_id,omitempty"`
	Year       *int      `json:"year,omitempty"`
	Semester   *int      `json:"semester,omitempty"`
	Section    string    `json:"section,omitempty"`
}

// Profile joins the map key back onto the stored value, dropping the digest.
func (u User) Profile(email string) UserProfile {
	return UserProfile{
		Email:      email,
		Role:       u.Role,
		Name:       u.Name,
		CreatedAt:  u.CreatedAt,
		Department: u.Department,
		StudentID:  u.StudentID,
		Year:       u.Year,
		Semester:   u.Semester,
		Section:    u.Section,
	}
}
