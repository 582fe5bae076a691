package models

// StudentSummary aggregates a student's full history as a plain nested
// structure. The page layer forwards it verbatim to the external narrative
// report generator; nothing here depends on that service.
type StudentSummary struct {
	Profile      UserProfile                   `json:"profile"`
	Attendance   StudentAttendance             `json:"attendance"`
	Submissions  []StudentSubmission           `json:"submissions"`
	Certificates []Certificate                 `json:"certificates"`
	ExamResults  map[string]StudentExamResults `json:"exam_results"`
}

// ResumeData is the structured object consumed by the resume/PDF collaborator.
// It is assembled read-only from the requesting user's profile and records.
type ResumeData struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Department   string        `json:"department,omitempty"`
	StudentID    string        `json:"student_id,omitempty"`
	Year         *int          `json:"year,omitempty"`
	Education    []string      `json:"education"`
	Projects     []ResumeEntry `json:"projects"`
	Certificates []ResumeEntry `json:"certificates"`
	Skills       []string      `json:"skills"`
}

// ResumeEntry is a single titled line item on a resume.
type ResumeEntry struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// DashboardStats backs the admin dashboard counters.
type DashboardStats struct {
	Users         int `json:"users"`
	Students      int `json:"students"`
	Teachers      int `json:"teachers"`
	Courses       int `json:"courses"`
	Departments   int `json:"departments"`
	Announcements int `json:"announcements"`
	Exams         int `json:"exams"`
}
