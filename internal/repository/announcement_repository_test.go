package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

func TestAnnouncementIDsStableUnderDeletion(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	first, err := repo.Create(ctx, CreateAnnouncementRequest{
		Title: "Welcome", Content: "Term starts Monday", AuthorEmail: "admin@college.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := repo.Create(ctx, CreateAnnouncementRequest{
		Title: "Holiday", Content: "Campus closed Friday", AuthorEmail: "admin@college.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second)

	require.NoError(t, repo.Delete(ctx, first))

	third, err := repo.Create(ctx, CreateAnnouncementRequest{
		Title: "Exams", Content: "Schedule posted", AuthorEmail: "admin@college.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, third)
}

func TestAnnouncementDeleteNotFound(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t), nil, nil)

	err := repo.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "Announcement not found", appErrors.FromError(err).Message)
}

func TestAnnouncementFilterOrSemantics(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t), nil, nil)
	ctx := context.Background()

	create := func(title string, roles, depts, emails []string) {
		_, err := repo.Create(ctx, CreateAnnouncementRequest{
			Title: title, Content: "body", AuthorEmail: "admin@college.edu",
			TargetRoles: roles, TargetDepartments: depts, TargetEmails: emails,
		})
		require.NoError(t, err)
	}

	create("broadcast", nil, nil, nil)
	create("students only", []string{"student"}, nil, nil)
	create("cs dept", nil, []string{"Computer Science"}, nil)
	create("direct", nil, nil, []string{"a@college.edu"})
	create("teachers in math", []string{"teacher"}, []string{"Mathematics"}, nil)

	titles := func(role, dept, email string) []string {
		visible, err := repo.FilterFor(ctx, role, dept, email)
		require.NoError(t, err)
		out := make([]string, 0, len(visible))
		for _, a := range visible {
			out = append(out, a.Title)
		}
		return out
	}

	// Student in CS sees broadcast, role match, department match and direct mention.
	assert.ElementsMatch(t,
		[]string{"broadcast", "students only", "cs dept", "direct"},
		titles("student", "Computer Science", "a@college.edu"))

	// Teacher in Physics matches the role half of the teachers-in-math OR.
	assert.ElementsMatch(t,
		[]string{"broadcast", "teachers in math"},
		titles("teacher", "Physics", "t@college.edu"))

	// Student in Mathematics matches the department half of the same OR.
	assert.ElementsMatch(t,
		[]string{"broadcast", "students only", "teachers in math"},
		titles("student", "Mathematics", "m@college.edu"))
}
