// Package reconcile implements the update pass over a lockfile: every pinned
// binary is compared against the latest published release of its repository
// and rewritten in place when a newer one exists.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/multitool/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Reconciler walks a lockfile and refreshes stale binary entries.
type Reconciler struct {
	releases ports.ReleaseSource
	hasher   ports.AssetHasher
	logger   ports.Logger
}

// NewReconciler creates a new Reconciler with the given dependencies.
func NewReconciler(releases ports.ReleaseSource, hasher ports.AssetHasher, logger ports.Logger) *Reconciler {
	return &Reconciler{
		releases: releases,
		hasher:   hasher,
		logger:   logger,
	}
}

// Reconcile updates the lockfile in place. Binaries are resolved
// concurrently, bounded by parallelism. A binary that cannot be resolved is
// logged and kept at its pinned version; only context cancellation aborts
// the pass.
func (r *Reconciler) Reconcile(ctx context.Context, lf *domain.Lockfile, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for name, def := range lf.Tools {
		// Each goroutine writes a distinct index of the shared backing
		// array, so no further synchronization is needed.
		for i := range def.Binaries {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				def.Binaries[i] = r.resolveBinary(ctx, name, def.Binaries[i])
				return nil
			})
		}
	}

	return g.Wait()
}

// resolveBinary returns the refreshed entry for one binary, or the original
// when it is already current, not managed by this tool, or fails to resolve.
func (r *Reconciler) resolveBinary(ctx context.Context, tool string, bin domain.Binary) domain.Binary {
	release, ok := domain.ParseGitHubReleaseURL(bin.SourceURL())
	if !ok {
		r.logger.Warn(fmt.Sprintf("skipping %s (%s): url is not a github release download", tool, platform(bin)))
		return bin
	}

	latest, err := r.releases.LatestTag(ctx, release.Org, release.Repo)
	if err != nil {
		r.logger.Error(zerr.With(err, "tool", tool))
		return bin
	}

	if latest == release.Version {
		return bin
	}

	updated, err := r.updateRelease(ctx, bin, release, latest)
	if err != nil {
		r.logger.Error(zerr.With(err, "tool", tool))
		return bin
	}

	r.logger.Info(fmt.Sprintf(
		"Updating %s (%s) from %s to %s",
		tool, platform(bin), release.BareVersion(), strings.TrimPrefix(latest, "v"),
	))
	return updated
}

// updateRelease rewrites a binary entry for the latest release tag. The url
// is rebuilt from the new tag with the bare version substituted literally in
// the asset path and file fields, mirroring how release assets embed their
// version, and the sha256 is recomputed from the new asset.
func (r *Reconciler) updateRelease(ctx context.Context, bin domain.Binary, release domain.GitHubRelease, latest string) (domain.Binary, error) {
	oldVersion := release.BareVersion()
	newVersion := strings.TrimPrefix(latest, "v")
	newPath := strings.ReplaceAll(release.Path, oldVersion, newVersion)
	newURL := domain.DownloadURL(release.Org, release.Repo, latest, newPath)

	digest, err := r.hasher.Digest(ctx, newURL, bin.RequestHeaders())
	if err != nil {
		return nil, err
	}

	switch b := bin.(type) {
	case domain.File:
		b.URL = newURL
		b.SHA256 = digest
		return b, nil
	case domain.Archive:
		b.URL = newURL
		b.File = strings.ReplaceAll(b.File, oldVersion, newVersion)
		b.SHA256 = digest
		return b, nil
	case domain.Pkg:
		b.URL = newURL
		b.File = strings.ReplaceAll(b.File, oldVersion, newVersion)
		b.SHA256 = digest
		return b, nil
	default:
		return nil, zerr.With(domain.ErrUnknownBinaryKind, "kind", string(bin.Kind()))
	}
}

// platform renders a binary's "<os>/<cpu>" pair for log messages.
func platform(bin domain.Binary) string {
	return strings.Replace(bin.SortKey(), "_", "/", 1)
}
