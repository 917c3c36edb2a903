// Package github implements the ReleaseSource and AssetHasher ports against
// the GitHub releases API and release-download CDN.
package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	githubAPIBase     = "https://api.github.com"
	httpClientTimeout = 30 * time.Second
	userAgent         = "multitool"
)

// tagResult is a memoized lookup outcome. Failures are cached alongside
// successes so a repository is queried at most once per run.
type tagResult struct {
	tag string
	err error
}

// Client implements ports.ReleaseSource using the GitHub releases API.
// Lookups for the same repository are coalesced and memoized for the
// lifetime of the client.
type Client struct {
	apiBase    string
	token      string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]tagResult
	group singleflight.Group
}

// NewClient creates a new ReleaseSource backed by the GitHub API.
// An API token is read from MULTITOOL_GITHUB_TOKEN or GITHUB_TOKEN when set;
// unauthenticated requests work but are rate-limited more aggressively.
func NewClient() *Client {
	return newClientWithBase(githubAPIBase, &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWithBase creates a Client with a custom API base and http client
// (used for testing).
func newClientWithBase(apiBase string, client *http.Client) *Client {
	return &Client{
		apiBase:    apiBase,
		token:      tokenFromEnv(),
		httpClient: client,
		cache:      make(map[string]tagResult),
	}
}

// tokenFromEnv returns the GitHub API token from the environment, preferring
// the tool-specific variable over the generic one.
func tokenFromEnv() string {
	if token := os.Getenv("MULTITOOL_GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// LatestTag returns the tag name of the latest published release for the
// given repository. The first lookup for a repository hits the API; every
// later lookup in the same run returns the memoized result, including
// memoized failures. Concurrent lookups for the same repository share a
// single in-flight request.
func (c *Client) LatestTag(ctx context.Context, org, repo string) (string, error) {
	key := org + "/" + repo

	c.mu.Lock()
	if res, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return res.tag, res.err
	}
	c.mu.Unlock()

	tag, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a lookup that raced past the first
		// cache check must not trigger a second query.
		c.mu.Lock()
		if res, ok := c.cache[key]; ok {
			c.mu.Unlock()
			return res.tag, res.err
		}
		c.mu.Unlock()

		tag, err := c.fetchLatestTag(ctx, org, repo)

		c.mu.Lock()
		c.cache[key] = tagResult{tag: tag, err: err}
		c.mu.Unlock()

		return tag, err
	})

	if err != nil {
		return "", err
	}
	return tag.(string), nil
}

// releaseResponse is the subset of the GitHub release payload we consume.
type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// fetchLatestTag queries GET /repos/{org}/{repo}/releases/latest.
func (c *Client) fetchLatestTag(ctx context.Context, org, repo string) (string, error) {
	url := c.apiBase + "/repos/" + org + "/" + repo + "/releases/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrReleaseRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestErr := zerr.Wrap(err, domain.ErrReleaseRequestFailed.Error())
		return "", zerr.With(requestErr, "repository", org+"/"+repo)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrReleaseRequestFailed, "status_code", resp.StatusCode)
		return "", zerr.With(apiErr, "repository", org+"/"+repo)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrReleaseRequestFailed.Error())
	}

	var release releaseResponse
	if err := json.Unmarshal(body, &release); err != nil {
		parseErr := zerr.Wrap(err, domain.ErrReleaseParseFailed.Error())
		return "", zerr.With(parseErr, "repository", org+"/"+repo)
	}

	if release.TagName == "" {
		return "", zerr.With(domain.ErrMissingReleaseTag, "repository", org+"/"+repo)
	}

	return release.TagName, nil
}
