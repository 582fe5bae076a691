package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

func TestDepartmentAddAndDuplicate(t *testing.T) {
	repo := NewDepartmentRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	req := CreateDepartmentRequest{DeptID: "CS", Name: "Computer Science", HODEmail: "hod@college.edu"}
	require.NoError(t, repo.Add(ctx, req))

	err := repo.Add(ctx, req)
	require.Error(t, err)
	assert.Equal(t, "Department ID already exists", appErrors.FromError(err).Message)
}

func TestDepartmentDeleteGuardedByCourses(t *testing.T) {
	st := newTestStore(t)
	departments := NewDepartmentRepository(st, nil, nil)
	courses := NewCourseRepository(st, nil, nil)
	ctx := context.Background()

	require.NoError(t, departments.Add(ctx, CreateDepartmentRequest{
		DeptID: "CS", Name: "Computer Science", HODEmail: "hod@college.edu",
	}))
	require.NoError(t, courses.Add(ctx, CreateCourseRequest{
		CourseID: "CS101", CourseName: "Intro", Department: "Computer Science", TeacherEmail: "t@college.edu",
	}))

	err := departments.Delete(ctx, "CS")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, "Cannot delete department that is in use by courses", appErrors.FromError(err).Message)

	require.NoError(t, courses.Delete(ctx, "CS101"))
	require.NoError(t, departments.Delete(ctx, "CS"))
}

func TestDepartmentSeedDefaults(t *testing.T) {
	repo := NewDepartmentRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))

	list, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "CS", list[0].DeptID)
	assert.Equal(t, "MATH", list[1].DeptID)
	assert.Equal(t, "PHY", list[2].DeptID)

	// Seeding again leaves existing documents alone.
	require.NoError(t, repo.Seed(ctx))
	list, err = repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
