package ports

import "go.trai.ch/multitool/internal/core/domain"

// LockfileStore defines the interface for reading and writing the lockfile.
//
//go:generate mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Load reads and validates the lockfile at path. A document that does
	// not parse, fails entry validation, or declares an unsupported
	// schema is an error; nothing is mutated on disk.
	Load(path string) (*domain.Lockfile, error)

	// Save serializes the lockfile canonically and replaces the file at
	// path atomically.
	Save(path string, lf *domain.Lockfile) error
}
