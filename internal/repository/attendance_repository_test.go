package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/models"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

func TestAttendanceMarkAndRemark(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	req := MarkAttendanceRequest{
		CourseID:     "CS101",
		Date:         "2026-08-25",
		StudentEmail: "student@college.edu",
		Status:       models.AttendancePresent,
	}
	require.NoError(t, repo.Mark(ctx, req))

	req.Status = models.AttendanceLate
	require.NoError(t, repo.Mark(ctx, req))

	records, err := repo.CourseAttendance(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, records["2026-08-25"], 1)
	assert.Equal(t, models.AttendanceLate, records["2026-08-25"]["student@college.edu"].Status)
}

func TestAttendanceMarkRejectsBadInput(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	err := repo.Mark(ctx, MarkAttendanceRequest{
		CourseID: "CS101", Date: "2026-08-25", StudentEmail: "student@college.edu", Status: "Sleeping",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	err = repo.Mark(ctx, MarkAttendanceRequest{
		CourseID: "CS101", Date: "25/08/2026", StudentEmail: "student@college.edu", Status: models.AttendancePresent,
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStudentAttendanceReshapesOnlyTouchedCourses(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	mark := func(course, date, email string, status models.AttendanceStatus) {
		require.NoError(t, repo.Mark(ctx, MarkAttendanceRequest{
			CourseID: course, Date: date, StudentEmail: email, Status: status,
		}))
	}
	mark("CS101", "2026-08-24", "a@college.edu", models.AttendancePresent)
	mark("CS101", "2026-08-25", "a@college.edu", models.AttendanceAbsent)
	mark("MA201", "2026-08-25", "b@college.edu", models.AttendancePresent)

	result, err := repo.StudentAttendance(ctx, "a@college.edu")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Len(t, result["CS101"], 2)
	assert.NotContains(t, result, "MA201")
}

func TestRemoveStudentCascadesToSubmissions(t *testing.T) {
	st := newTestStore(t)
	attendance := NewAttendanceRepository(st, nil, nil)
	assignments := NewAssignmentRepository(st, nil, nil)
	submissions := NewSubmissionRepository(st, nil, nil)
	ctx := context.Background()

	require.NoError(t, attendance.Mark(ctx, MarkAttendanceRequest{
		CourseID: "CS101", Date: "2026-08-25", StudentEmail: "a@college.edu", Status: models.AttendancePresent,
	}))
	require.NoError(t, attendance.Mark(ctx, MarkAttendanceRequest{
		CourseID: "CS101", Date: "2026-08-25", StudentEmail: "b@college.edu", Status: models.AttendancePresent,
	}))

	assignmentID, err := assignments.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW1", DueDate: "2026-09-01"})
	require.NoError(t, err)
	require.NoError(t, submissions.SubmitAssignment(ctx, assignmentID, SubmitRequest{StudentEmail: "a@college.edu", SubmissionText: "done"}))
	require.NoError(t, submissions.SubmitAssignment(ctx, assignmentID, SubmitRequest{StudentEmail: "b@college.edu", SubmissionText: "done"}))

	require.NoError(t, attendance.RemoveStudent(ctx, "CS101", "a@college.edu"))

	records, err := attendance.CourseAttendance(ctx, "CS101")
	require.NoError(t, err)
	assert.NotContains(t, records["2026-08-25"], "a@college.edu")
	assert.Contains(t, records["2026-08-25"], "b@college.edu")

	remaining, err := submissions.WorkSubmissions(ctx, assignmentID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b@college.edu", remaining[0].StudentEmail)
}

func TestRemoveStudentErrors(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	err := repo.RemoveStudent(ctx, "CS101", "a@college.edu")
	require.Error(t, err)
	assert.Equal(t, "Course not found", appErrors.FromError(err).Message)

	require.NoError(t, repo.Mark(ctx, MarkAttendanceRequest{
		CourseID: "CS101", Date: "2026-08-25", StudentEmail: "b@college.edu", Status: models.AttendancePresent,
	}))

	err = repo.RemoveStudent(ctx, "CS101", "a@college.edu")
	require.Error(t, err)
	assert.Equal(t, "Student not found in course", appErrors.FromError(err).Message)
}
