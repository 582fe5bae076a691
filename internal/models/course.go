package models

import "time"

// Course is the value stored in the courses document, keyed by course ID.
// Department is free text, not a foreign key; TeacherEmail is a soft reference
// to a user. Neither is enforced on write.
type Course struct {
	CourseName   string    `json:"course_name"`
	Department   string    `json:"department"`
	TeacherEmail string    `json:"teacher_email"`
	Description  string    `json:"description"`
	Credits      int       `json:"credits"`
	CreatedAt    time.Time `json:"created_at"`
}

// CourseInfo joins the map key back onto the stored value for API responses.
type CourseInfo struct {
	CourseID string `json:"course_id"`
	Course
}
