package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	"github.com/campusdesk/campusdesk-api/internal/store"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

type reportFixture struct {
	users         *repository.UserRepository
	courses       *repository.CourseRepository
	departments   *repository.DepartmentRepository
	attendance    *repository.AttendanceRepository
	assignments   *repository.AssignmentRepository
	projects      *repository.ProjectRepository
	submissions   *repository.SubmissionRepository
	certificates  *repository.CertificateRepository
	announcements *repository.AnnouncementRepository
	exams         *repository.ExamRepository
	service       *ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	st, err := store.New(t.TempDir(), nil, nil)
	require.NoError(t, err)

	f := &reportFixture{
		users:         repository.NewUserRepository(st, nil, nil),
		courses:       repository.NewCourseRepository(st, nil, nil),
		departments:   repository.NewDepartmentRepository(st, nil, nil),
		attendance:    repository.NewAttendanceRepository(st, nil, nil),
		assignments:   repository.NewAssignmentRepository(st, nil, nil),
		projects:      repository.NewProjectRepository(st, nil, nil),
		submissions:   repository.NewSubmissionRepository(st, nil, nil),
		certificates:  repository.NewCertificateRepository(st, nil, nil),
		announcements: repository.NewAnnouncementRepository(st, nil, nil),
		exams:         repository.NewExamRepository(st, nil, nil),
	}
	f.service = NewReportService(ReportServiceDeps{
		Users:         f.users,
		Courses:       f.courses,
		Departments:   f.departments,
		Attendance:    f.attendance,
		Submissions:   f.submissions,
		Certificates:  f.certificates,
		Exams:         f.exams,
		Projects:      f.projects,
		Announcements: f.announcements,
	}, nil)
	return f
}

func TestStudentSummaryAggregates(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	year := 2
	require.NoError(t, f.users.Create(ctx, repository.CreateUserRequest{
		Email: "a@college.edu", Password: "secret123", Role: models.RoleStudent,
		Name: "Alice", Department: "Computer Science", StudentID: "S1", Year: &year,
	}))

	require.NoError(t, f.attendance.Mark(ctx, repository.MarkAttendanceRequest{
		CourseID: "CS101", Date: "2026-08-25", StudentEmail: "a@college.edu", Status: models.AttendancePresent,
	}))
	require.NoError(t, f.submissions.SubmitAssignment(ctx, "CS101_1", repository.SubmitRequest{
		StudentEmail: "a@college.edu", SubmissionText: "done",
	}))
	_, err := f.certificates.Submit(ctx, "a@college.edu", repository.SubmitCertificateRequest{
		Title: "Go Bootcamp", IssuingOrganization: "Acme", IssueDate: "2026-01-15",
	})
	require.NoError(t, err)

	summary, err := f.service.StudentSummary(ctx, "a@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alice", summary.Profile.Name)
	assert.Len(t, summary.Attendance["CS101"], 1)
	assert.Len(t, summary.Submissions, 1)
	assert.Len(t, summary.Certificates, 1)
	assert.Empty(t, summary.ExamResults)
}

func TestStudentSummaryRejectsNonStudents(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, repository.CreateUserRequest{
		Email: "t@college.edu", Password: "secret123", Role: models.RoleTeacher, Name: "Teach",
	}))

	_, err := f.service.StudentSummary(ctx, "t@college.edu")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestResumeDataIncludesOnlyVerifiedCertificates(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Create(ctx, repository.CreateUserRequest{
		Email: "a@college.edu", Password: "secret123", Role: models.RoleStudent,
		Name: "Alice", Department: "Computer Science",
	}))

	verified, err := f.certificates.Submit(ctx, "a@college.edu", repository.SubmitCertificateRequest{
		Title: "Go Bootcamp", IssuingOrganization: "Acme", IssueDate: "2026-01-15",
	})
	require.NoError(t, err)
	_, err = f.certificates.Submit(ctx, "a@college.edu", repository.SubmitCertificateRequest{
		Title: "Unverified Course", IssuingOrganization: "Acme", IssueDate: "2026-02-15",
	})
	require.NoError(t, err)
	require.NoError(t, f.certificates.Verify(ctx, "a@college.edu", verified))

	projectID, err := f.projects.Create(ctx, "CS101", repository.CreateProjectRequest{
		Title: "Compiler", Description: "A tiny compiler", DueDate: "2026-11-01",
	})
	require.NoError(t, err)
	require.NoError(t, f.submissions.SubmitProject(ctx, projectID, repository.SubmitRequest{
		StudentEmail: "a@college.edu", SubmissionText: "repo",
	}))

	data, err := f.service.ResumeData(ctx, "a@college.edu")
	require.NoError(t, err)
	require.Len(t, data.Certificates, 1)
	assert.Equal(t, "Go Bootcamp", data.Certificates[0].Title)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "Compiler", data.Projects[0].Title)
	assert.Equal(t, "CS101", data.Projects[0].Subtitle)
	assert.Equal(t, []string{"Computer Science"}, data.Education)
}

func TestDashboardStatsCounts(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Seed(ctx))
	require.NoError(t, f.departments.Seed(ctx))
	require.NoError(t, f.courses.Add(ctx, repository.CreateCourseRequest{
		CourseID: "CS101", CourseName: "Intro", TeacherEmail: "teacher@college.edu",
	}))
	_, err := f.announcements.Create(ctx, repository.CreateAnnouncementRequest{
		Title: "Welcome", Content: "hello", AuthorEmail: "admin@college.edu",
	})
	require.NoError(t, err)

	stats, err := f.service.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 1, stats.Teachers)
	assert.Equal(t, 1, stats.Courses)
	assert.Equal(t, 3, stats.Departments)
	assert.Equal(t, 1, stats.Announcements)
	assert.Equal(t, 0, stats.Exams)
}
