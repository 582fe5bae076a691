package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UploadStore persists uploaded files (submission attachments, certificate
// scans, resumes) on disk under a base directory. Files are never cleaned up
// or quota-checked; the stored relative path is what callers persist as
// file_path on the owning record.
type UploadStore struct {
	baseDir string
}

// NewUploadStore ensures the base directory exists and returns a handle.
func NewUploadStore(baseDir string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &UploadStore{baseDir: baseDir}, nil
}

// Save stores the reader's content keyed by the owner's identity and the
// current timestamp, returning the relative path of the stored file.
func (s *UploadStore) Save(ownerEmail, filename string, r io.Reader) (string, error) {
	rel := filepath.Join(OwnerDir(ownerEmail), fmt.Sprintf("%s_%s_%s",
		time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8], sanitize(filename)))
	path := filepath.Join(s.baseDir, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Open returns a read-only handle for a stored file.
func (s *UploadStore) Open(rel string) (*os.File, error) {
	path, err := s.Resolve(rel)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *UploadStore) Delete(rel string) error {
	path, err := s.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Resolve maps a stored relative path to its on-disk location. Paths that are
// absolute or climb out of the base directory are rejected; Save never
// produces such a path, so any arriving here came from an untrusted caller.
func (s *UploadStore) Resolve(rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid upload path %q", rel)
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid upload path %q", rel)
	}
	return filepath.Join(s.baseDir, clean), nil
}

// OwnerDir is the per-owner subdirectory a file lands in. Exposed so access
// checks can test ownership against a stored relative path.
func OwnerDir(email string) string {
	return sanitize(email)
}

func sanitize(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer("@", "_at_", " ", "_", "..", "_")
	return replacer.Replace(name)
}
