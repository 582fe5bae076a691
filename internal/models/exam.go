package models

import "time"

// Exam is the value stored in the exams document, keyed by exam ID of the
// form exam_{n}_{timestamp}. The ID is mirrored inside the value, matching
// the stored layout.
type Exam struct {
	ExamID    string    `json:"exam_id"`
	ExamName  string    `json:"exam_name"`
	ExamType  string    `json:"exam_type"`
	Semester  int       `json:"semester"`
	Date      string    `json:"date"`
	MaxMarks  int       `json:"max_marks"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject is the value stored in the subjects document, keyed by subject ID
// of the form subject_{n}_{timestamp}.
type Subject struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Semester    int    `json:"semester"`
	Department  string `json:"department,omitempty"`
}

// ExamResultEntry is a single (exam, student, subject) result. Re-adding the
// same triple overwrites the entry (upsert semantics).
type ExamResultEntry struct {
	Marks     float64   `json:"marks"`
	Remarks   *string   `json:"remarks"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentExamResults maps subject ID to the student's result for it.
type StudentExamResults map[string]ExamResultEntry

// ExamResultDocument is the whole exam-results document:
// exam ID -> student email -> subject ID -> entry.
type ExamResultDocument map[string]map[string]StudentExamResults
