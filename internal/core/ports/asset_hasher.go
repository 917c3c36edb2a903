package ports

import "context"

// AssetHasher defines the interface for computing content digests of
// downloadable assets.
//
//go:generate mockgen -source=asset_hasher.go -destination=mocks/mock_asset_hasher.go -package=mocks
type AssetHasher interface {
	// Digest fetches the bytes at url and returns their SHA-256 digest as
	// lowercase hex. The opaque headers from the lockfile entry are sent
	// with the request. An error is returned on any transport or HTTP
	// failure; a stale or empty digest is never returned.
	Digest(ctx context.Context, url string, headers map[string]string) (string, error)
}
