package bootstrap_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/bootstrap"
)

func TestPrepareWorkspace(t *testing.T) {
	t.Run("creates a missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "Repos")

		archived, err := bootstrap.PrepareWorkspace(root, time.Now())
		require.NoError(t, err)
		require.Empty(t, archived)

		info, err := os.Stat(root)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	})

	t.Run("archives an existing root under a UTC timestamp", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "Repos")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "old-repo"), 0750))
		require.NoError(t, os.WriteFile(filepath.Join(root, "old-repo", "file.txt"), []byte("keep me"), 0600))

		now := time.Date(2026, 8, 24, 13, 45, 7, 0, time.UTC)
		archived, err := bootstrap.PrepareWorkspace(root, now)
		require.NoError(t, err)
		require.Equal(t, root+"-20260824T134507Z", archived)

		// Old content preserved under the archive name, not deleted
		data, err := os.ReadFile(filepath.Join(archived, "old-repo", "file.txt"))
		require.NoError(t, err)
		require.Equal(t, "keep me", string(data))

		// Fresh root is empty
		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("converts local time to UTC for the archive suffix", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "Repos")
		require.NoError(t, os.MkdirAll(root, 0750))

		loc := time.FixedZone("UTC+2", 2*60*60)
		now := time.Date(2026, 1, 2, 1, 30, 0, 0, loc) // 2026-01-01T23:30:00Z
		archived, err := bootstrap.PrepareWorkspace(root, now)
		require.NoError(t, err)
		require.Equal(t, root+"-20260101T233000Z", archived)
	})
}
