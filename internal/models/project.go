package models

import "time"

// Project is one entry in the per-course project list. IDs take the form
// {course_id}_project_{n}.
type Project struct {
	ProjectID    string    `json:"project_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      string    `json:"due_date"`
	MaxPoints    int       `json:"max_points"`
	GroupProject bool      `json:"group_project"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProjectDocument maps course ID to that course's projects.
type ProjectDocument map[string][]Project
