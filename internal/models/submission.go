package models

import "time"

// Submission is one student's submission for an assignment or project.
// Grade, Feedback and GradedAt stay null until the submission is graded;
// re-grading overwrites all three.
type Submission struct {
	StudentEmail   string     `json:"student_email"`
	SubmissionText string     `json:"submission_text"`
	FilePath       *string    `json:"file_path"`
	GroupMembers   []string   `json:"group_members,omitempty"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	Grade          *float64   `json:"grade"`
	Feedback       *string    `json:"feedback"`
	GradedAt       *time.Time `json:"graded_at,omitempty"`
}

// SubmissionDocument maps an assignment or project ID to its submissions,
// at most one per student.
type SubmissionDocument map[string][]Submission

// StudentSubmission is a submission joined with the work-item ID it belongs
// to, as returned by per-student queries.
type StudentSubmission struct {
	AssignmentID string `json:"assignment_id"`
	Submission
}
