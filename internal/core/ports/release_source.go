package ports

import "context"

// ReleaseSource defines the interface for looking up published releases.
//
//go:generate mockgen -source=release_source.go -destination=mocks/mock_release_source.go -package=mocks
type ReleaseSource interface {
	// LatestTag returns the tag of the latest published release for the
	// given repository. Implementations memoize per run: any number of
	// lookups for the same (org, repo) pair issue at most one query.
	LatestTag(ctx context.Context, org, repo string) (string, error)
}
