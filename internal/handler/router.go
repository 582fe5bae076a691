package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campusdesk/campusdesk-api/internal/middleware"
	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/service"
)

// Handlers bundles every endpoint handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Attendance   *AttendanceHandler
	Assignment   *AssignmentHandler
	Project      *ProjectHandler
	Submission   *SubmissionHandler
	Certificate  *CertificateHandler
	Announcement *AnnouncementHandler
	Department   *DepartmentHandler
	Exam         *ExamHandler
	Report       *ReportHandler
	Upload       *UploadHandler
}

// RegisterRoutes mounts the API under the given prefix. Role gates follow the
// original page permissions: admins manage accounts, courses, departments and
// verification; teachers run attendance, work items and grading for their
// courses; students act on their own records only.
func RegisterRoutes(r *gin.Engine, prefix string, authService *service.AuthService, h Handlers) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	student := middleware.RequireRoles(models.RoleStudent)
	selfOrStaff := middleware.RBAC(string(models.RoleAdmin), string(models.RoleTeacher), "SELF")

	api := r.Group(prefix)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(authService))

	secured.GET("/auth/me", h.Auth.Me)
	secured.POST("/auth/change-password", h.Auth.ChangePassword)

	secured.GET("/users", admin, h.User.List)
	secured.POST("/users", admin, h.User.Create)
	secured.GET("/users/:email", middleware.RBAC(string(models.RoleAdmin), "SELF"), h.User.Get)
	secured.PUT("/users/:email", admin, h.User.Update)
	secured.DELETE("/users/:email", admin, h.User.Delete)

	secured.GET("/courses", h.Course.List)
	secured.POST("/courses", admin, h.Course.Create)
	secured.GET("/courses/teaching", staff, h.Course.Teaching)
	secured.GET("/courses/:course_id", h.Course.Get)
	secured.PUT("/courses/:course_id", admin, h.Course.Update)
	secured.DELETE("/courses/:course_id", admin, h.Course.Delete)
	secured.DELETE("/courses/:course_id/students/:email", staff, h.Course.RemoveStudent)

	secured.POST("/courses/:course_id/attendance", staff, h.Attendance.Mark)
	secured.GET("/courses/:course_id/attendance", staff, h.Attendance.Course)
	secured.GET("/students/:email/attendance", selfOrStaff, h.Attendance.Student)

	secured.GET("/courses/:course_id/assignments", h.Assignment.List)
	secured.POST("/courses/:course_id/assignments", staff, h.Assignment.Create)
	secured.PUT("/courses/:course_id/assignments/:assignment_id", staff, h.Assignment.Update)
	secured.DELETE("/courses/:course_id/assignments/:assignment_id", staff, h.Assignment.Delete)

	secured.GET("/courses/:course_id/projects", h.Project.List)
	secured.POST("/courses/:course_id/projects", staff, h.Project.Create)
	secured.PUT("/courses/:course_id/projects/:project_id", staff, h.Project.Update)
	secured.DELETE("/courses/:course_id/projects/:project_id", staff, h.Project.Delete)

	secured.POST("/assignments/:assignment_id/submissions", student, h.Submission.SubmitAssignment)
	secured.GET("/assignments/:assignment_id/submissions", staff, h.Submission.ListWork)
	secured.POST("/assignments/:assignment_id/grade", staff, h.Submission.Grade)
	secured.POST("/projects/:project_id/submissions", student, h.Submission.SubmitProject)
	secured.GET("/students/:email/submissions", selfOrStaff, h.Submission.Student)

	secured.POST("/certificates", student, h.Certificate.Submit)
	secured.GET("/certificates", admin, h.Certificate.All)
	secured.GET("/students/:email/certificates", selfOrStaff, h.Certificate.Student)
	secured.POST("/students/:email/certificates/:certificate_id/verify", admin, h.Certificate.Verify)

	secured.GET("/announcements", h.Announcement.List)
	secured.POST("/announcements", staff, h.Announcement.Create)
	secured.DELETE("/announcements/:id", admin, h.Announcement.Delete)

	secured.GET("/departments", h.Department.List)
	secured.POST("/departments", admin, h.Department.Create)
	secured.GET("/departments/:dept_id", h.Department.Get)
	secured.PUT("/departments/:dept_id", admin, h.Department.Update)
	secured.DELETE("/departments/:dept_id", admin, h.Department.Delete)

	secured.GET("/exams", h.Exam.ListExams)
	secured.POST("/exams", admin, h.Exam.CreateExam)
	secured.GET("/exams/:exam_id", h.Exam.GetExam)
	secured.PUT("/exams/:exam_id", admin, h.Exam.UpdateExam)
	secured.DELETE("/exams/:exam_id", admin, h.Exam.DeleteExam)
	secured.POST("/exams/:exam_id/results", staff, h.Exam.AddResult)
	secured.GET("/exams/:exam_id/results", staff, h.Exam.ExamResults)
	secured.DELETE("/exams/:exam_id/results/:email/:subject_id", staff, h.Exam.DeleteResult)
	secured.GET("/students/:email/results", selfOrStaff, h.Exam.StudentResults)

	secured.GET("/subjects", h.Exam.ListSubjects)
	secured.POST("/subjects", admin, h.Exam.CreateSubject)
	secured.PUT("/subjects/:subject_id", admin, h.Exam.UpdateSubject)
	secured.DELETE("/subjects/:subject_id", admin, h.Exam.DeleteSubject)

	secured.GET("/reports/students/:email/summary", staff, h.Report.StudentSummary)
	secured.GET("/reports/resume", student, h.Report.Resume)
	secured.GET("/reports/dashboard", admin, h.Report.Dashboard)

	secured.POST("/uploads", h.Upload.Upload)
	secured.GET("/uploads", h.Upload.Download)
}
