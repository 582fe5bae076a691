package models

import "time"

// Assignment is one entry in the per-course assignment list. IDs take the
// form {course_id}_{n}.
type Assignment struct {
	AssignmentID string    `json:"assignment_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      string    `json:"due_date"`
	MaxPoints    int       `json:"max_points"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssignmentDocument maps course ID to that course's assignments.
type AssignmentDocument map[string][]Assignment
