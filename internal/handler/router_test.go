package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/repository"
	"github.com/campusdesk/campusdesk-api/internal/service"
	"github.com/campusdesk/campusdesk-api/internal/store"
	"github.com/campusdesk/campusdesk-api/pkg/storage"
)

type envelope struct {
	Data    map[string]any `json:"data"`
	Message string         `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	uploads, err := storage.NewUploadStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(st, nil, nil)
	courseRepo := repository.NewCourseRepository(st, nil, nil)
	departmentRepo := repository.NewDepartmentRepository(st, nil, nil)
	attendanceRepo := repository.NewAttendanceRepository(st, nil, nil)
	assignmentRepo := repository.NewAssignmentRepository(st, nil, nil)
	projectRepo := repository.NewProjectRepository(st, nil, nil)
	submissionRepo := repository.NewSubmissionRepository(st, nil, nil)
	certificateRepo := repository.NewCertificateRepository(st, nil, nil)
	announcementRepo := repository.NewAnnouncementRepository(st, nil, nil)
	examRepo := repository.NewExamRepository(st, nil, nil)

	require.NoError(t, userRepo.Seed(context.Background()))
	require.NoError(t, departmentRepo.Seed(context.Background()))

	authService := service.NewAuthService(userRepo, nil, nil, service.AuthConfig{
		Secret: "test_secret", Expiration: time.Hour, Issuer: "campusdesk-api",
	})
	reportService := service.NewReportService(service.ReportServiceDeps{
		Users:         userRepo,
		Courses:       courseRepo,
		Departments:   departmentRepo,
		Attendance:    attendanceRepo,
		Submissions:   submissionRepo,
		Certificates:  certificateRepo,
		Exams:         examRepo,
		Projects:      projectRepo,
		Announcements: announcementRepo,
	}, nil)

	router := gin.New()
	RegisterRoutes(router, "/api/v1", authService, Handlers{
		Auth:         NewAuthHandler(authService),
		User:         NewUserHandler(userRepo),
		Course:       NewCourseHandler(courseRepo, attendanceRepo),
		Attendance:   NewAttendanceHandler(attendanceRepo),
		Assignment:   NewAssignmentHandler(assignmentRepo),
		Project:      NewProjectHandler(projectRepo),
		Submission:   NewSubmissionHandler(submissionRepo),
		Certificate:  NewCertificateHandler(certificateRepo),
		Announcement: NewAnnouncementHandler(announcementRepo),
		Department:   NewDepartmentHandler(departmentRepo),
		Exam:         NewExamHandler(examRepo),
		Report:       NewReportHandler(reportService),
		Upload:       NewUploadHandler(uploads),
	})
	return router
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	token, _ := env.Data["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRoutesRequireToken(t *testing.T) {
	router := buildRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/courses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGates(t *testing.T) {
	router := buildRouter(t)
	student := login(t, router, "student@college.edu", "student123")
	teacher := login(t, router, "teacher@college.edu", "teacher123")
	admin := login(t, router, "admin@college.edu", "admin123")

	course := gin.H{"course_id": "CS101", "course_name": "Intro", "teacher_email": "teacher@college.edu"}

	w := doJSON(router, http.MethodPost, "/api/v1/courses", student, course)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/courses", teacher, course)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/courses", admin, course)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Course added successfully", decode(t, w).Message)

	// Students may read the catalog but not user accounts.
	w = doJSON(router, http.MethodGet, "/api/v1/courses", student, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/v1/users", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSelfAccessOnStudentRecords(t *testing.T) {
	router := buildRouter(t)
	student := login(t, router, "student@college.edu", "student123")
	teacher := login(t, router, "teacher@college.edu", "teacher123")

	w := doJSON(router, http.MethodGet, "/api/v1/students/student@college.edu/attendance", student, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/students/other@college.edu/attendance", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/students/other@college.edu/attendance", teacher, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCourseworkFlow(t *testing.T) {
	router := buildRouter(t)
	admin := login(t, router, "admin@college.edu", "admin123")
	teacher := login(t, router, "teacher@college.edu", "teacher123")
	student := login(t, router, "student@college.edu", "student123")

	w := doJSON(router, http.MethodPost, "/api/v1/courses", admin, gin.H{
		"course_id": "CS101", "course_name": "Intro", "teacher_email": "teacher@college.edu",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/courses/CS101/attendance", teacher, gin.H{
		"date": "2026-08-25", "student_email": "student@college.edu", "status": "Present",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Attendance marked successfully", decode(t, w).Message)

	w = doJSON(router, http.MethodPost, "/api/v1/courses/CS101/assignments", teacher, gin.H{
		"title": "HW1", "due_date": "2026-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assignmentID, _ := decode(t, w).Data["assignment_id"].(string)
	require.Equal(t, "CS101_1", assignmentID)

	path := fmt.Sprintf("/api/v1/assignments/%s/submissions", assignmentID)
	w = doJSON(router, http.MethodPost, path, student, gin.H{"submission_text": "my answer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second submit for the same assignment is rejected.
	w = doJSON(router, http.MethodPost, path, student, gin.H{"submission_text": "again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/v1/assignments/%s/grade", assignmentID), teacher, gin.H{
		"student_email": "student@college.edu", "grade": 92.5, "feedback": "good work",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Grade submitted successfully", decode(t, w).Message)

	w = doJSON(router, http.MethodGet, "/api/v1/students/student@college.edu/submissions", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "92.5")

	// Removing the student drops attendance and submissions for the course.
	w = doJSON(router, http.MethodDelete, "/api/v1/courses/CS101/students/student@college.edu", teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Student removed from course successfully", decode(t, w).Message)

	w = doJSON(router, http.MethodGet, "/api/v1/students/student@college.edu/submissions", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "92.5")
}

func TestAnnouncementFiltering(t *testing.T) {
	router := buildRouter(t)
	admin := login(t, router, "admin@college.edu", "admin123")
	teacher := login(t, router, "teacher@college.edu", "teacher123")
	student := login(t, router, "student@college.edu", "student123")

	w := doJSON(router, http.MethodPost, "/api/v1/announcements", teacher, gin.H{
		"title": "students only", "content": "hi", "target_roles": []string{"student"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/announcements", admin, gin.H{
		"title": "broadcast", "content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/announcements", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "students only")
	assert.Contains(t, w.Body.String(), "broadcast")

	// The teacher is outside the student-targeted audience; admins see all.
	w = doJSON(router, http.MethodGet, "/api/v1/announcements", teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "students only")

	w = doJSON(router, http.MethodGet, "/api/v1/announcements", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "students only")

	// Students cannot publish or delete.
	w = doJSON(router, http.MethodPost, "/api/v1/announcements", student, gin.H{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(router, http.MethodDelete, "/api/v1/announcements/1", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardAdminOnly(t *testing.T) {
	router := buildRouter(t)
	admin := login(t, router, "admin@college.edu", "admin123")
	student := login(t, router, "student@college.edu", "student123")

	w := doJSON(router, http.MethodGet, "/api/v1/reports/dashboard", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/reports/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, float64(3), env.Data["users"])
	assert.Equal(t, float64(3), env.Data["departments"])
}
