// Package bootstrap materializes a fresh clone of a repository under the
// fixed workspace root, then installs dependencies for every discovered
// package manifest.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveTimestampFormat is the UTC suffix appended to an archived workspace
const ArchiveTimestampFormat = "20060102T150405Z"

// WorkspaceRoot returns the fixed workspace root, %USERPROFILE%\Repos
func WorkspaceRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user profile directory: %w", err)
	}
	return filepath.Join(home, "Repos"), nil
}

// PrepareWorkspace ensures root exists and is empty. An existing root is
// renamed to a timestamped archive name first; prior content is preserved,
// never deleted. Returns the archive path, or "" when nothing was archived.
func PrepareWorkspace(root string, now time.Time) (string, error) {
	archived := ""
	if _, err := os.Stat(root); err == nil {
		archived = root + "-" + now.UTC().Format(ArchiveTimestampFormat)
		if err := os.Rename(root, archived); err != nil {
			return "", fmt.Errorf("failed to archive existing workspace %s: %w", root, err)
		}
	}

	if err := os.MkdirAll(root, 0750); err != nil {
		return "", fmt.Errorf("failed to create workspace %s: %w", root, err)
	}
	return archived, nil
}
