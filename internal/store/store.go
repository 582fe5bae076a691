package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

// Entity names one JSON document. Each entity is persisted wholesale as
// <entity>.json inside the data directory; there is no partial-write path.
type Entity string

const (
	EntityUsers         Entity = "users"
	EntityCourses       Entity = "courses"
	EntityAttendance    Entity = "attendance"
	EntityAssignments   Entity = "assignments"
	EntitySubmissions   Entity = "submissions"
	EntityProjects      Entity = "projects"
	EntityCertificates  Entity = "certificates"
	EntityAnnouncements Entity = "announcements"
	EntityExams         Entity = "exams"
	EntitySubjects      Entity = "subjects"
	EntityExamResults   Entity = "exam_results"
	EntityDepartments   Entity = "departments"
)

// Entities lists every document the store manages.
var Entities = []Entity{
	EntityUsers, EntityCourses, EntityAttendance, EntityAssignments,
	EntitySubmissions, EntityProjects, EntityCertificates, EntityAnnouncements,
	EntityExams, EntitySubjects, EntityExamResults, EntityDepartments,
}

// Observer receives document I/O timings.
type Observer interface {
	ObserveStoreOp(entity, op string, duration time.Duration)
}

// Store reads and writes whole JSON documents, one file per entity type.
// A per-entity mutex serializes load-mutate-save cycles within this process;
// concurrent processes sharing a data directory still race at file
// granularity (last save wins), which is accepted at this deployment scale.
type Store struct {
	dir      string
	logger   *zap.Logger
	observer Observer
	locks    map[Entity]*sync.Mutex
}

// New prepares the data directory and returns a store handle.
func New(dir string, logger *zap.Logger, observer Observer) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	locks := make(map[Entity]*sync.Mutex, len(Entities))
	for _, e := range Entities {
		locks[e] = &sync.Mutex{}
	}
	return &Store{dir: dir, logger: logger, observer: observer, locks: locks}, nil
}

// Lock acquires the advisory lock for an entity and returns the unlock
// function. Mutating repository operations hold it across their whole
// load-mutate-save cycle:
//
//	defer s.Lock(store.EntityCourses)()
func (s *Store) Lock(e Entity) func() {
	mu := s.locks[e]
	mu.Lock()
	return mu.Unlock
}

// Load reads the entire document for an entity into out. A missing file is
// materialized with the type-appropriate empty default (an array for
// announcements, an object otherwise) and persisted before returning.
// Malformed content is a storage error, never a domain miss.
func (s *Store) Load(e Entity, out interface{}) error {
	start := time.Now()
	defer s.observe(e, "load", start)

	path := s.path(e)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		raw = defaultDoc(e)
		if werr := s.write(path, raw); werr != nil {
			return appErrors.Wrap(werr, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to initialize "+string(e))
		}
	} else if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to read "+string(e))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "malformed document: "+string(e))
	}
	return nil
}

// Save rewrites the entire document for an entity. The document is written to
// a temp file and renamed into place so a crash mid-write cannot leave a
// truncated document behind.
func (s *Store) Save(e Entity, doc interface{}) error {
	start := time.Now()
	defer s.observe(e, "save", start)

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to encode "+string(e))
	}
	if err := s.write(s.path(e), raw); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to write "+string(e))
	}
	return nil
}

// Init materializes every missing document with its empty default, matching
// the original first-run behavior.
func (s *Store) Init() error {
	for _, e := range Entities {
		path := s.path(e)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to stat "+string(e))
		}
		if err := s.write(path, defaultDoc(e)); err != nil {
			return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to initialize "+string(e))
		}
		s.logger.Info("document initialized", zap.String("entity", string(e)))
	}
	return nil
}

func (s *Store) path(e Entity) string {
	return filepath.Join(s.dir, string(e)+".json")
}

func (s *Store) write(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()           //nolint:errcheck
		os.Remove(tmpName)    //nolint:errcheck
		return err
	}
	if _, err := tmp.Write([]byte("\n")); err != nil {
		tmp.Close()        //nolint:errcheck
		os.Remove(tmpName) //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *Store) observe(e Entity, op string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveStoreOp(string(e), op, time.Since(start))
	}
}

func defaultDoc(e Entity) []byte {
	if e == EntityAnnouncements {
		return []byte("[]")
	}
	return []byte("{}")
}
