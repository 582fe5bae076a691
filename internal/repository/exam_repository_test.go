package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

func TestExamAddGetUpdate(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	examID, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Midterm", ExamType: "Internal", Semester: 3, Date: "2026-10-10", MaxMarks: 100,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(examID, "exam_1_"))

	exam, err := repo.GetExam(ctx, examID)
	require.NoError(t, err)
	assert.Equal(t, "Midterm", exam.ExamName)
	assert.Equal(t, examID, exam.ExamID)

	require.NoError(t, repo.UpdateExam(ctx, examID, UpdateExamRequest{MaxMarks: intPtr(50)}))
	exam, err = repo.GetExam(ctx, examID)
	require.NoError(t, err)
	assert.Equal(t, 50, exam.MaxMarks)

	_, err = repo.GetExam(ctx, "exam_99_0")
	require.Error(t, err)
	assert.Equal(t, "Exam not found", appErrors.FromError(err).Message)
}

func TestSubjectLifecycle(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	subjectID, err := repo.AddSubject(ctx, CreateSubjectRequest{
		SubjectName: "Algorithms", Semester: 3, Department: "Computer Science",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(subjectID, "subject_1_"))

	require.NoError(t, repo.UpdateSubject(ctx, subjectID, UpdateSubjectRequest{Semester: intPtr(4)}))
	subject, err := repo.GetSubject(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 4, subject.Semester)

	require.NoError(t, repo.DeleteSubject(ctx, subjectID))
	_, err = repo.GetSubject(ctx, subjectID)
	require.Error(t, err)
	assert.Equal(t, "Subject not found", appErrors.FromError(err).Message)
}

func TestAddResultUpserts(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	examID, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Midterm", ExamType: "Internal", Semester: 3, Date: "2026-10-10", MaxMarks: 100,
	})
	require.NoError(t, err)

	req := AddResultRequest{StudentEmail: "a@college.edu", SubjectID: "subject_1_0", Marks: 60}
	require.NoError(t, repo.AddResult(ctx, examID, req))

	req.Marks = 75
	require.NoError(t, repo.AddResult(ctx, examID, req))

	results, err := repo.ExamResults(ctx, examID)
	require.NoError(t, err)
	require.Len(t, results["a@college.edu"], 1)
	assert.Equal(t, 75.0, results["a@college.edu"]["subject_1_0"].Marks)
}

func TestAddResultRequiresExam(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)

	err := repo.AddResult(context.Background(), "exam_1_0", AddResultRequest{
		StudentEmail: "a@college.edu", SubjectID: "subject_1_0", Marks: 60,
	})
	require.Error(t, err)
	assert.Equal(t, "Exam not found", appErrors.FromError(err).Message)
}

func TestDeleteExamCascadesResults(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	examID, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Midterm", ExamType: "Internal", Semester: 3, Date: "2026-10-10", MaxMarks: 100,
	})
	require.NoError(t, err)
	require.NoError(t, repo.AddResult(ctx, examID, AddResultRequest{
		StudentEmail: "a@college.edu", SubjectID: "subject_1_0", Marks: 60,
	}))

	require.NoError(t, repo.DeleteExam(ctx, examID))

	_, err = repo.GetExam(ctx, examID)
	assert.Error(t, err)

	results, err := repo.StudentResults(ctx, "a@college.edu")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDeleteResultPrunesEmptyLevels(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	examID, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Midterm", ExamType: "Internal", Semester: 3, Date: "2026-10-10", MaxMarks: 100,
	})
	require.NoError(t, err)
	require.NoError(t, repo.AddResult(ctx, examID, AddResultRequest{
		StudentEmail: "a@college.edu", SubjectID: "subject_1_0", Marks: 60,
	}))

	require.NoError(t, repo.DeleteResult(ctx, examID, "a@college.edu", "subject_1_0"))

	results, err := repo.ExamResults(ctx, examID)
	require.NoError(t, err)
	assert.Empty(t, results)

	err = repo.DeleteResult(ctx, examID, "a@college.edu", "subject_1_0")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStudentResultsAcrossExams(t *testing.T) {
	repo := NewExamRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	midterm, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Midterm", ExamType: "Internal", Semester: 3, Date: "2026-10-10", MaxMarks: 100,
	})
	require.NoError(t, err)
	final, err := repo.AddExam(ctx, CreateExamRequest{
		ExamName: "Final", ExamType: "External", Semester: 3, Date: "2026-12-10", MaxMarks: 100,
	})
	require.NoError(t, err)

	require.NoError(t, repo.AddResult(ctx, midterm, AddResultRequest{StudentEmail: "a@college.edu", SubjectID: "s1", Marks: 60}))
	require.NoError(t, repo.AddResult(ctx, final, AddResultRequest{StudentEmail: "a@college.edu", SubjectID: "s1", Marks: 80}))
	require.NoError(t, repo.AddResult(ctx, final, AddResultRequest{StudentEmail: "b@college.edu", SubjectID: "s1", Marks: 70}))

	results, err := repo.StudentResults(ctx, "a@college.edu")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 60.0, results[midterm]["s1"].Marks)
	assert.Equal(t, 80.0, results[final]["s1"].Marks)
}
