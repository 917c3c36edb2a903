// Package lockfile implements the LockfileStore port on the local filesystem.
package lockfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.LockfileStore with atomic writes.
type Store struct{}

// NewStore creates a new LockfileStore.
func NewStore() *Store {
	return &Store{}
}

// Load reads and validates the lockfile at path. Parse and validation
// failures leave the file untouched.
func (s *Store) Load(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrLockfileReadFailed.Error())
		return nil, zerr.With(readErr, "path", path)
	}

	var lf domain.Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if lf.Schema != domain.SchemaURL {
		schemaErr := zerr.With(domain.ErrUnsupportedSchema, "schema", lf.Schema)
		return nil, zerr.With(schemaErr, "path", path)
	}

	return &lf, nil
}

// Save serializes the lockfile as pretty-printed JSON with a trailing
// newline and replaces the file at path atomically.
func (s *Store) Save(path string, lf *domain.Lockfile) error {
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockfileMarshalFailed.Error())
	}
	data = append(data, '\n')

	if err := atomicWriteFile(path, data); err != nil {
		writeErr := zerr.Wrap(err, domain.ErrLockfileWriteFailed.Error())
		return zerr.With(writeErr, "path", path)
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "multitool-lock-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
