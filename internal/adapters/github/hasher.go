package github

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher implements ports.AssetHasher by streaming release assets over HTTP.
type Hasher struct {
	httpClient *http.Client
}

// NewHasher creates a new AssetHasher. Asset downloads are not given a
// client timeout: large archives on slow links can legitimately take longer
// than any fixed deadline, and cancellation flows through the context.
func NewHasher() *Hasher {
	return newHasherWithClient(&http.Client{})
}

// newHasherWithClient creates a Hasher with a custom http client (used for testing).
func newHasherWithClient(client *http.Client) *Hasher {
	return &Hasher{httpClient: client}
}

// Digest fetches the asset at url and returns the SHA-256 digest of its
// bytes as lowercase hex. The headers from the lockfile entry are forwarded
// verbatim; any non-200 response is an error.
func (h *Hasher) Digest(ctx context.Context, url string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrAssetFetchFailed.Error())
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		fetchErr := zerr.Wrap(err, domain.ErrAssetFetchFailed.Error())
		return "", zerr.With(fetchErr, "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		fetchErr := zerr.With(domain.ErrAssetFetchFailed, "status_code", resp.StatusCode)
		return "", zerr.With(fetchErr, "url", url)
	}

	digest := sha256.New()
	if _, err := io.Copy(digest, resp.Body); err != nil {
		fetchErr := zerr.Wrap(err, domain.ErrAssetFetchFailed.Error())
		return "", zerr.With(fetchErr, "url", url)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
