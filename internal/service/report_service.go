package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/campusdesk/campusdesk-api/internal/models"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

type reportUserRepository interface {
	Get(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context) (map[models.UserRole]int, error)
}

type reportCourseRepository interface {
	All(ctx context.Context) ([]models.CourseInfo, error)
}

type reportAttendanceRepository interface {
	StudentAttendance(ctx context.Context, studentEmail string) (models.StudentAttendance, error)
}

type reportSubmissionRepository interface {
	StudentSubmissions(ctx context.Context, studentEmail string) ([]models.StudentSubmission, error)
}

type reportCertificateRepository interface {
	StudentCertificates(ctx context.Context, studentEmail string) ([]models.Certificate, error)
}

type reportExamRepository interface {
	StudentResults(ctx context.Context, studentEmail string) (map[string]models.StudentExamResults, error)
	AllExams(ctx context.Context) (map[string]models.Exam, error)
}

type reportProjectRepository interface {
	CourseProjects(ctx context.Context, courseID string) ([]models.Project, error)
}

type reportDepartmentRepository interface {
	All(ctx context.Context) ([]models.DepartmentInfo, error)
}

type reportAnnouncementRepository interface {
	All(ctx context.Context) ([]models.Announcement, error)
}

// ReportService assembles read-only aggregates over the documents: the
// per-student summary, resume data and the admin dashboard counters.
type ReportService struct {
	users         reportUserRepository
	courses       reportCourseRepository
	departments   reportDepartmentRepository
	attendance    reportAttendanceRepository
	submissions   reportSubmissionRepository
	certificates  reportCertificateRepository
	exams         reportExamRepository
	projects      reportProjectRepository
	announcements reportAnnouncementRepository
	logger        *zap.Logger
}

// ReportServiceDeps bundles the repositories the report service reads from.
type ReportServiceDeps struct {
	Users         reportUserRepository
	Courses       reportCourseRepository
	Departments   reportDepartmentRepository
	Attendance    reportAttendanceRepository
	Submissions   reportSubmissionRepository
	Certificates  reportCertificateRepository
	Exams         reportExamRepository
	Projects      reportProjectRepository
	Announcements reportAnnouncementRepository
}

// NewReportService constructs a ReportService instance.
func NewReportService(deps ReportServiceDeps, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		users:         deps.Users,
		courses:       deps.Courses,
		departments:   deps.Departments,
		attendance:    deps.Attendance,
		submissions:   deps.Submissions,
		certificates:  deps.Certificates,
		exams:         deps.Exams,
		projects:      deps.Projects,
		announcements: deps.Announcements,
		logger:        logger,
	}
}

// StudentSummary gathers one student's profile, attendance, submissions,
// certificates and exam results into a single structure.
func (s *ReportService) StudentSummary(ctx context.Context, studentEmail string) (*models.StudentSummary, error) {
	user, err := s.users.Get(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user is not a student")
	}

	attendance, err := s.attendance.StudentAttendance(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissions.StudentSubmissions(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	certificates, err := s.certificates.StudentCertificates(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	results, err := s.exams.StudentResults(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	return &models.StudentSummary{
		Profile:      user.Profile(studentEmail),
		Attendance:   attendance,
		Submissions:  submissions,
		Certificates: certificates,
		ExamResults:  results,
	}, nil
}

// ResumeData assembles the structured resume for a student: education lines
// from the profile, project entries from their project submissions, and
// verified certificates only.
func (s *ReportService) ResumeData(ctx context.Context, studentEmail string) (*models.ResumeData, error) {
	user, err := s.users.Get(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	profile := user.Profile(studentEmail)

	data := &models.ResumeData{
		Name:         profile.Name,
		Email:        profile.Email,
		Department:   profile.Department,
		StudentID:    profile.StudentID,
		Year:         profile.Year,
		Education:    []string{},
		Projects:     []models.ResumeEntry{},
		Certificates: []models.ResumeEntry{},
		Skills:       []string{},
	}

	if profile.Department != "" {
		line := profile.Department
		if profile.Year != nil {
			line = fmt.Sprintf("%s, Year %d", line, *profile.Year)
		}
		data.Education = append(data.Education, line)
	}

	projects, err := s.studentProjects(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	data.Projects = projects

	certificates, err := s.certificates.StudentCertificates(ctx, studentEmail)
	if err != nil {
		return nil, err
	}
	for _, cert := range certificates {
		if !cert.Verified {
			continue
		}
		data.Certificates = append(data.Certificates, models.ResumeEntry{
			Title:    cert.Title,
			Subtitle: cert.IssuingOrganization,
			Date:     cert.IssueDate,
		})
	}

	return data, nil
}

// DashboardStats counts users by role plus courses, departments,
// announcements and exams for the admin dashboard.
func (s *ReportService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.All(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.departments.All(ctx)
	if err != nil {
		return nil, err
	}
	announcements, err := s.announcements.All(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := s.exams.AllExams(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &models.DashboardStats{
		Users:         total,
		Students:      counts[models.RoleStudent],
		Teachers:      counts[models.RoleTeacher],
		Courses:       len(courses),
		Departments:   len(departments),
		Announcements: len(announcements),
		Exams:         len(exams),
	}, nil
}

// studentProjects joins the student's project submissions back onto project
// metadata. Project IDs embed their course ID, so each submission resolves
// through one course's project list.
func (s *ReportService) studentProjects(ctx context.Context, studentEmail string) ([]models.ResumeEntry, error) {
	submissions, err := s.submissions.StudentSubmissions(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	entries := []models.ResumeEntry{}
	for _, sub := range submissions {
		idx := strings.Index(sub.AssignmentID, "_project_")
		if idx < 0 {
			continue
		}
		courseID := sub.AssignmentID[:idx]

		projects, err := s.projects.CourseProjects(ctx, courseID)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			if p.ProjectID != sub.AssignmentID {
				continue
			}
			entries = append(entries, models.ResumeEntry{
				Title:       p.Title,
				Subtitle:    courseID,
				Date:        p.DueDate,
				Description: p.Description,
			})
		}
	}
	return entries, nil
}
