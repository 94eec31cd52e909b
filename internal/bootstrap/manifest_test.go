package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/bootstrap"
)

func writeManifest(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0600))
}

func TestFindManifestDirs(t *testing.T) {
	t.Run("finds every directory holding a manifest", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, root)
		writeManifest(t, filepath.Join(root, "tools", "build"))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0750))

		dirs, err := bootstrap.FindManifestDirs(root)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{root, filepath.Join(root, "tools", "build")}, dirs)
	})

	t.Run("skips vendor and metadata directories", func(t *testing.T) {
		root := t.TempDir()
		writeManifest(t, filepath.Join(root, "app"))
		writeManifest(t, filepath.Join(root, "app", "node_modules", "dep"))
		writeManifest(t, filepath.Join(root, ".git", "hooks"))

		dirs, err := bootstrap.FindManifestDirs(root)
		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(root, "app")}, dirs)
	})

	t.Run("empty tree yields no dirs", func(t *testing.T) {
		dirs, err := bootstrap.FindManifestDirs(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, dirs)
	})
}
