package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (o *recordingObserver) ObserveStoreOp(entity, op string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, entity+":"+op)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	return st
}

func TestLoadMaterializesDefaults(t *testing.T) {
	st := newTestStore(t)

	var users map[string]any
	require.NoError(t, st.Load(EntityUsers, &users))
	assert.Empty(t, users)

	raw, err := os.ReadFile(filepath.Join(st.dir, "users.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	var announcements []any
	require.NoError(t, st.Load(EntityAnnouncements, &announcements))
	assert.Empty(t, announcements)

	raw, err = os.ReadFile(filepath.Join(st.dir, "announcements.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)

	doc := map[string]map[string]string{
		"CS101": {"course_name": "Intro to Programming"},
	}
	require.NoError(t, st.Save(EntityCourses, doc))

	var loaded map[string]map[string]string
	require.NoError(t, st.Load(EntityCourses, &loaded))
	assert.Equal(t, doc, loaded)

	raw, err := os.ReadFile(filepath.Join(st.dir, "courses.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "    \"CS101\"")
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}

func TestLoadMalformedIsStorageError(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(st.dir, "courses.json"), []byte("{not json"), 0o644))

	var out map[string]any
	err := st.Load(EntityCourses, &out)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrStorage))
}

func TestInitCreatesEveryDocument(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Init())

	for _, e := range Entities {
		_, err := os.Stat(filepath.Join(st.dir, string(e)+".json"))
		assert.NoError(t, err, string(e))
	}
}

func TestInitPreservesExistingDocuments(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Save(EntityCourses, map[string]string{"CS101": "kept"}))
	require.NoError(t, st.Init())

	var courses map[string]string
	require.NoError(t, st.Load(EntityCourses, &courses))
	assert.Equal(t, "kept", courses["CS101"])
}

func TestObserverReceivesTimings(t *testing.T) {
	obs := &recordingObserver{}
	st, err := New(t.TempDir(), nil, obs)
	require.NoError(t, err)

	require.NoError(t, st.Save(EntityUsers, map[string]string{}))
	var users map[string]string
	require.NoError(t, st.Load(EntityUsers, &users))

	assert.Contains(t, obs.ops, "users:save")
	assert.Contains(t, obs.ops, "users:load")
}

func TestLockSerializesAccess(t *testing.T) {
	st := newTestStore(t)

	unlock := st.Lock(EntityUsers)
	done := make(chan struct{})
	go func() {
		defer close(done)
		inner := st.Lock(EntityUsers)
		inner()
	}()

	select {
	case <-done:
		t.Fatal("second lock acquired while first held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}
