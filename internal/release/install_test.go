package release_test

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/release"
)

func TestArchToken(t *testing.T) {
	token := release.ArchToken()
	require.Contains(t, []string{"x64", "arm64"}, token)
}

func TestMatchAsset(t *testing.T) {
	assets := []release.Asset{
		{Name: "tool-1.2.3-arm64.zip"},
		{Name: "Tool-1.2.3-X64.zip"},
		{Name: "tool-1.2.3-src.tar.gz"},
	}

	t.Run("matches the architecture token case-insensitively", func(t *testing.T) {
		asset, err := release.MatchAsset(assets, "x64")
		require.NoError(t, err)
		require.Equal(t, "Tool-1.2.3-X64.zip", asset.Name)

		asset, err = release.MatchAsset(assets, "ARM64")
		require.NoError(t, err)
		require.Equal(t, "tool-1.2.3-arm64.zip", asset.Name)
	})

	t.Run("no match is an error", func(t *testing.T) {
		_, err := release.MatchAsset(assets, "riscv64")
		require.Error(t, err)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the asset into the destination directory", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("release bytes"))
		}))
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "tool")
		path, err := release.Download(ctx, release.Asset{Name: "tool.zip", DownloadURL: server.URL}, dest)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dest, "tool.zip"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "release bytes", string(data))
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := release.Download(ctx, release.Asset{Name: "tool.zip", DownloadURL: server.URL}, t.TempDir())
		require.Error(t, err)
		require.Contains(t, err.Error(), "unexpected status")
	})
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	t.Run("expands entries preserving relative paths", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "bundle.zip")
		writeZip(t, archive, map[string]string{
			"tool.exe":          "binary",
			"licenses/NOTICE":   "notice text",
			"licenses/THIRD.md": "third party",
		})

		dest := t.TempDir()
		require.NoError(t, release.ExtractZip(archive, dest))

		data, err := os.ReadFile(filepath.Join(dest, "tool.exe"))
		require.NoError(t, err)
		require.Equal(t, "binary", string(data))

		data, err = os.ReadFile(filepath.Join(dest, "licenses", "NOTICE"))
		require.NoError(t, err)
		require.Equal(t, "notice text", string(data))
	})

	t.Run("rejects entries escaping the destination", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "evil.zip")
		writeZip(t, archive, map[string]string{
			"../outside.txt": "escape",
		})

		err := release.ExtractZip(archive, t.TempDir())
		require.Error(t, err)
		require.Contains(t, err.Error(), "escapes destination")
	})
}

type fakeFeed struct {
	tag    string
	assets []release.Asset
}

func (f *fakeFeed) LatestTag(context.Context) (string, error) { return f.tag, nil }

func (f *fakeFeed) AssetsForTag(context.Context, string) ([]release.Asset, error) {
	return f.assets, nil
}

func TestInstall(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "source.zip")
	writeZip(t, archive, map[string]string{"tool.exe": "binary"})
	payload, err := os.ReadFile(archive)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	// Steer the per-user install directory into the test's own tree
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("LocalAppData", t.TempDir())

	feed := &fakeFeed{
		tag: "v1.2.3",
		assets: []release.Asset{
			{Name: "tool-" + release.ArchToken() + ".zip", DownloadURL: server.URL},
		},
	}

	dir, err := release.Install(context.Background(), feed, "boxup-test-tool")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "tool.exe"))
	require.NoError(t, err)
	require.Equal(t, "binary", string(data))

	// The downloaded archive itself is cleaned up after extraction
	_, err = os.Stat(filepath.Join(dir, feed.assets[0].Name))
	require.ErrorIs(t, err, os.ErrNotExist)
}
