package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

func TestAssignmentIDsNeverCollideAfterDelete(t *testing.T) {
	repo := NewAssignmentRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	first, err := repo.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW1", DueDate: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, "CS101_1", first)

	second, err := repo.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW2", DueDate: "2026-09-08"})
	require.NoError(t, err)
	assert.Equal(t, "CS101_2", second)

	require.NoError(t, repo.Delete(ctx, "CS101", first))

	third, err := repo.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW3", DueDate: "2026-09-15"})
	require.NoError(t, err)
	assert.Equal(t, "CS101_3", third)
}

func TestAssignmentDefaultMaxPoints(t *testing.T) {
	repo := NewAssignmentRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	id, err := repo.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW1", DueDate: "2026-09-01"})
	require.NoError(t, err)

	list, err := repo.CourseAssignments(ctx, "CS101")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].AssignmentID)
	assert.Equal(t, defaultMaxPoints, list[0].MaxPoints)
}

func TestAssignmentUpdateAndDeleteErrors(t *testing.T) {
	repo := NewAssignmentRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	err := repo.Update(ctx, "CS101", "CS101_1", UpdateAssignmentRequest{})
	require.Error(t, err)
	assert.Equal(t, "Course not found", appErrors.FromError(err).Message)

	_, err = repo.Create(ctx, "CS101", CreateAssignmentRequest{Title: "HW1", DueDate: "2026-09-01"})
	require.NoError(t, err)

	err = repo.Update(ctx, "CS101", "CS101_99", UpdateAssignmentRequest{})
	require.Error(t, err)
	assert.Equal(t, "Assignment not found", appErrors.FromError(err).Message)

	require.NoError(t, repo.Update(ctx, "CS101", "CS101_1", UpdateAssignmentRequest{MaxPoints: intPtr(50)}))
	list, err := repo.CourseAssignments(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, 50, list[0].MaxPoints)
}

func TestCourseAssignmentsEmptyWhenNone(t *testing.T) {
	repo := NewAssignmentRepository(newTestStore(t), nil, nil)

	list, err := repo.CourseAssignments(context.Background(), "CS999")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
