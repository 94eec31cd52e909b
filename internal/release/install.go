package release

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ArchToken returns the architecture substring used to select a release
// asset for the current build target
func ArchToken() string {
	switch runtime.GOARCH {
	case "arm64":
		return "arm64"
	default:
		return "x64"
	}
}

// MatchAsset returns the first asset whose name contains the architecture
// token (case-insensitive)
func MatchAsset(assets []Asset, arch string) (Asset, error) {
	for _, a := range assets {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(arch)) {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("no release asset matches architecture %q", arch)
}

// Download fetches the asset into destDir and returns the downloaded file path
func Download(ctx context.Context, asset Asset, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", asset.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: unexpected status %s", asset.Name, resp.Status)
	}

	destPath := filepath.Join(destDir, asset.Name)
	out, err := os.Create(destPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return destPath, nil
}

// ExtractZip expands the archive (release bundles are plain zip containers)
// into destDir, preserving relative paths and rejecting traversal
func ExtractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		target := filepath.Join(destDir, file.Name) //nolint:gosec // checked below
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination directory", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0750); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
			return err
		}

		src, err := file.Open()
		if err != nil {
			return err
		}

		dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
		if err != nil {
			_ = src.Close()
			return err
		}

		_, err = io.Copy(dst, src) //nolint:gosec // trusted release archive
		_ = src.Close()
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

// InstallDir returns where the tool should be expanded: machine-wide when
// running elevated, per-user otherwise
func InstallDir(toolName string) (string, error) {
	if IsElevated() {
		if programData := os.Getenv("ProgramData"); programData != "" {
			return filepath.Join(programData, toolName), nil
		}
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve install directory: %w", err)
	}
	return filepath.Join(dir, toolName), nil
}

// Install downloads the architecture-appropriate asset of the latest tagged
// release and expands it into the install directory. It returns the
// directory the archive was expanded into.
func Install(ctx context.Context, feed Feed, toolName string) (string, error) {
	tag, err := feed.LatestTag(ctx)
	if err != nil {
		return "", err
	}

	assets, err := feed.AssetsForTag(ctx, tag)
	if err != nil {
		return "", err
	}

	asset, err := MatchAsset(assets, ArchToken())
	if err != nil {
		return "", fmt.Errorf("release %s: %w", tag, err)
	}

	installDir, err := InstallDir(toolName)
	if err != nil {
		return "", err
	}

	archivePath, err := Download(ctx, asset, installDir)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(archivePath) }()

	if err := ExtractZip(archivePath, installDir); err != nil {
		return "", err
	}
	return installDir, nil
}
