package reconcile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/multitool/internal/core/ports/mocks"
	"go.trai.ch/multitool/internal/engine/reconcile"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type reconcilerTestMocks struct {
	releases *mocks.MockReleaseSource
	hasher   *mocks.MockAssetHasher
	logger   *mocks.MockLogger
}

// setupReconcilerTest creates a reconciler and common mocks. Log output is
// accepted without expectations so tests only assert on the calls they care
// about.
func setupReconcilerTest(t *testing.T) (*reconcile.Reconciler, reconcilerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := reconcilerTestMocks{
		releases: mocks.NewMockReleaseSource(ctrl),
		hasher:   mocks.NewMockAssetHasher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	r := reconcile.NewReconciler(m.releases, m.hasher, m.logger)
	return r, m
}

func fileBinary(url string, os domain.OS, cpu domain.CPU) domain.File {
	return domain.File{
		URL:    url,
		SHA256: "0000000000000000000000000000000000000000000000000000000000000000",
		OS:     os,
		CPU:    cpu,
	}
}

func singleToolLockfile(name string, binaries ...domain.Binary) *domain.Lockfile {
	return &domain.Lockfile{
		Schema: domain.SchemaURL,
		Tools: map[string]domain.ToolDefinition{
			name: {Binaries: binaries},
		},
	}
}

func TestReconciler_Reconcile(t *testing.T) {
	t.Run("UpdatesStaleBinary", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		lf := singleToolLockfile("gofumpt",
			fileBinary("https://github.com/mvdan/gofumpt/releases/download/v0.6.0/gofumpt_v0.6.0_linux_amd64", domain.OSLinux, domain.CPUX86_64),
		)

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "mvdan", "gofumpt").
			Return("v0.7.0", nil)
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/mvdan/gofumpt/releases/download/v0.7.0/gofumpt_v0.7.0_linux_amd64", gomock.Nil()).
			Return("1111111111111111111111111111111111111111111111111111111111111111", nil)

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))

		updated, ok := lf.Tools["gofumpt"].Binaries[0].(domain.File)
		require.True(t, ok)
		assert.Equal(t, "https://github.com/mvdan/gofumpt/releases/download/v0.7.0/gofumpt_v0.7.0_linux_amd64", updated.URL)
		assert.Equal(t, "1111111111111111111111111111111111111111111111111111111111111111", updated.SHA256)
		assert.Equal(t, domain.OSLinux, updated.OS)
		assert.Equal(t, domain.CPUX86_64, updated.CPU)
	})

	t.Run("RewritesArchiveFileField", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		lf := singleToolLockfile("shellcheck", domain.Archive{
			URL:    "https://github.com/koalaman/shellcheck/releases/download/v0.9.0/shellcheck-v0.9.0.linux.x86_64.tar.xz",
			File:   "shellcheck-v0.9.0/shellcheck",
			SHA256: "0000000000000000000000000000000000000000000000000000000000000000",
			OS:     domain.OSLinux,
			CPU:    domain.CPUX86_64,
			Type:   domain.ArchiveTarXz,
		})

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "koalaman", "shellcheck").
			Return("v0.10.0", nil)
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/koalaman/shellcheck/releases/download/v0.10.0/shellcheck-v0.10.0.linux.x86_64.tar.xz", gomock.Nil()).
			Return("2222222222222222222222222222222222222222222222222222222222222222", nil)

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))

		updated, ok := lf.Tools["shellcheck"].Binaries[0].(domain.Archive)
		require.True(t, ok)
		assert.Equal(t, "shellcheck-v0.10.0/shellcheck", updated.File)
		assert.Equal(t, domain.ArchiveTarXz, updated.Type)
	})

	t.Run("LatestTagWithoutVPrefix", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		lf := singleToolLockfile("tool",
			fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool-1.0.0.tar.gz", domain.OSLinux, domain.CPUX86_64),
		)

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "repo").
			Return("2.0.0", nil)
		// The new tag is used verbatim in the url; only the bare version is
		// substituted in the asset path.
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/org/repo/releases/download/2.0.0/tool-2.0.0.tar.gz", gomock.Nil()).
			Return("6666666666666666666666666666666666666666666666666666666666666666", nil)

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))

		updated, ok := lf.Tools["tool"].Binaries[0].(domain.File)
		require.True(t, ok)
		assert.Equal(t, "https://github.com/org/repo/releases/download/2.0.0/tool-2.0.0.tar.gz", updated.URL)
	})

	t.Run("KeepsCurrentBinaryUntouched", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		bin := fileBinary("https://github.com/mvdan/gofumpt/releases/download/v0.7.0/gofumpt_v0.7.0_linux_amd64", domain.OSLinux, domain.CPUX86_64)
		lf := singleToolLockfile("gofumpt", bin)

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "mvdan", "gofumpt").
			Return("v0.7.0", nil)
		// No Digest expectation: a current entry must not be re-hashed.

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))
		assert.Equal(t, bin, lf.Tools["gofumpt"].Binaries[0])
	})

	t.Run("SkipsUnrecognizedURL", func(t *testing.T) {
		r, _ := setupReconcilerTest(t)

		bin := fileBinary("https://downloads.example.com/tool-1.0.0", domain.OSLinux, domain.CPUX86_64)
		lf := singleToolLockfile("tool", bin)

		// No release or hasher expectations: the entry is not managed.
		require.NoError(t, r.Reconcile(context.Background(), lf, 1))
		assert.Equal(t, bin, lf.Tools["tool"].Binaries[0])
	})

	t.Run("LookupFailureKeepsOriginal", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		bin := fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUArm64)
		lf := singleToolLockfile("tool", bin)

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "repo").
			Return("", zerr.New("rate limited"))

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))
		assert.Equal(t, bin, lf.Tools["tool"].Binaries[0])
	})

	t.Run("DigestFailureKeepsOriginal", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		bin := fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUArm64)
		lf := singleToolLockfile("tool", bin)

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "repo").
			Return("v2.0.0", nil)
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/org/repo/releases/download/v2.0.0/tool", gomock.Nil()).
			Return("", zerr.New("asset not found"))

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))
		assert.Equal(t, bin, lf.Tools["tool"].Binaries[0])
	})

	t.Run("FailureIsolatedPerBinary", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		broken := fileBinary("https://github.com/org/broken/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUX86_64)
		lf := &domain.Lockfile{
			Schema: domain.SchemaURL,
			Tools: map[string]domain.ToolDefinition{
				"broken": {Binaries: []domain.Binary{broken}},
				"fresh": {Binaries: []domain.Binary{
					fileBinary("https://github.com/org/fresh/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUX86_64),
				}},
			},
		}

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "broken").
			Return("", zerr.New("boom"))
		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "fresh").
			Return("v2.0.0", nil)
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/org/fresh/releases/download/v2.0.0/tool", gomock.Nil()).
			Return("3333333333333333333333333333333333333333333333333333333333333333", nil)

		require.NoError(t, r.Reconcile(context.Background(), lf, 2))

		assert.Equal(t, broken, lf.Tools["broken"].Binaries[0])
		updated, ok := lf.Tools["fresh"].Binaries[0].(domain.File)
		require.True(t, ok)
		assert.Equal(t, "https://github.com/org/fresh/releases/download/v2.0.0/tool", updated.URL)
	})

	t.Run("OneLookupPerRepository", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		lf := singleToolLockfile("tool",
			fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool-linux-x86_64", domain.OSLinux, domain.CPUX86_64),
			fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool-linux-arm64", domain.OSLinux, domain.CPUArm64),
			fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool-macos-arm64", domain.OSMacOS, domain.CPUArm64),
		)

		// The release source memoizes per repository; the reconciler may ask
		// any number of times but every call must be for the same pair.
		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "repo").
			Return("v1.0.0", nil).
			Times(3)

		require.NoError(t, r.Reconcile(context.Background(), lf, 3))
	})

	t.Run("ForwardsEntryHeadersToHasher", func(t *testing.T) {
		r, m := setupReconcilerTest(t)

		headers := map[string]string{"Authorization": "Bearer abc"}
		lf := singleToolLockfile("tool", domain.File{
			URL:     "https://github.com/org/repo/releases/download/v1.0.0/tool",
			SHA256:  "0000000000000000000000000000000000000000000000000000000000000000",
			OS:      domain.OSLinux,
			CPU:     domain.CPUX86_64,
			Headers: headers,
		})

		m.releases.EXPECT().
			LatestTag(gomock.Any(), "org", "repo").
			Return("v1.1.0", nil)
		m.hasher.EXPECT().
			Digest(gomock.Any(), "https://github.com/org/repo/releases/download/v1.1.0/tool", headers).
			Return("4444444444444444444444444444444444444444444444444444444444444444", nil)

		require.NoError(t, r.Reconcile(context.Background(), lf, 1))

		updated, ok := lf.Tools["tool"].Binaries[0].(domain.File)
		require.True(t, ok)
		assert.Equal(t, headers, updated.Headers)
	})

	t.Run("CancelledContextAborts", func(t *testing.T) {
		r, _ := setupReconcilerTest(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		lf := singleToolLockfile("tool",
			fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUX86_64),
		)

		err := r.Reconcile(ctx, lf, 1)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyLockfile", func(t *testing.T) {
		r, _ := setupReconcilerTest(t)

		lf := &domain.Lockfile{Schema: domain.SchemaURL, Tools: map[string]domain.ToolDefinition{}}
		require.NoError(t, r.Reconcile(context.Background(), lf, 4))
	})
}

func TestReconciler_UpdateMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	releases := mocks.NewMockReleaseSource(ctrl)
	hasher := mocks.NewMockAssetHasher(ctrl)
	lg := mocks.NewMockLogger(ctrl)

	releases.EXPECT().
		LatestTag(gomock.Any(), "org", "repo").
		Return("v2.0.0", nil)
	hasher.EXPECT().
		Digest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("5555555555555555555555555555555555555555555555555555555555555555", nil)
	lg.EXPECT().Info("Updating tool (linux/x86_64) from 1.0.0 to 2.0.0")

	r := reconcile.NewReconciler(releases, hasher, lg)
	lf := singleToolLockfile("tool",
		fileBinary("https://github.com/org/repo/releases/download/v1.0.0/tool", domain.OSLinux, domain.CPUX86_64),
	)

	require.NoError(t, r.Reconcile(context.Background(), lf, 1))
}
