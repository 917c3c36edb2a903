package domain

import (
	"regexp"
	"strings"
)

// githubReleasePattern matches the fixed GitHub release-download URL shape
// https://github.com/{org}/{repo}/releases/download/{version}/{path}.
var githubReleasePattern = regexp.MustCompile(
	`https://github\.com/([A-Za-z0-9_-]+)/([A-Za-z0-9_-]+)/releases/download/(v?[^/]+)/(.+)`,
)

// GitHubRelease holds the components extracted from a release-download URL.
// It is transient: recomputed per resolution attempt, never persisted.
type GitHubRelease struct {
	Org     string
	Repo    string
	Version string
	Path    string
}

// ParseGitHubReleaseURL extracts the release components from a URL.
// A non-matching URL is a normal outcome (the entry is simply not managed
// by this tool), reported through the second return value.
func ParseGitHubReleaseURL(url string) (GitHubRelease, bool) {
	m := githubReleasePattern.FindStringSubmatch(url)
	if m == nil {
		return GitHubRelease{}, false
	}
	return GitHubRelease{
		Org:     m[1],
		Repo:    m[2],
		Version: m[3],
		Path:    m[4],
	}, true
}

// BareVersion returns the version tag without its optional leading "v".
func (r GitHubRelease) BareVersion() string {
	return strings.TrimPrefix(r.Version, "v")
}

// DownloadURL builds the release-download URL for the given tag and asset path.
func DownloadURL(org, repo, tag, path string) string {
	return "https://github.com/" + org + "/" + repo + "/releases/download/" + tag + "/" + path
}
