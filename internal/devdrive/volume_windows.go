//go:build windows

package devdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"boxup.dev/boxup/internal/run"
	"boxup.dev/boxup/internal/tui"
)

// newPlatform wires the real Windows volume manager and environment writer
func newPlatform(splog *tui.Splog) (VolumeManager, EnvironmentWriter, func() (int, error)) {
	return &windowsVolumes{exec: run.NewCommandRunner(), splog: splog}, &registryEnvironment{}, osBuild
}

// windowsVolumes drives diskpart, format, fsutil, and the storage cmdlets
type windowsVolumes struct {
	exec  run.Executor
	splog *tui.Splog
}

// volumeRecord matches the JSON shape produced by the Get-Volume projection
type volumeRecord struct {
	Letter          string  `json:"Letter"`
	FileSystemLabel string  `json:"FileSystemLabel"`
	FileSystemType  string  `json:"FileSystemType"`
	SizeGB          float64 `json:"SizeGB"`
}

const volumeQuery = `Get-Volume | Select-Object ` +
	`@{n='Letter';e={[string]$_.DriveLetter}},` +
	`FileSystemLabel,` +
	`@{n='FileSystemType';e={[string]$_.FileSystemType}},` +
	`@{n='SizeGB';e={[math]::Round($_.Size/1GB,2)}} | ConvertTo-Json`

func (w *windowsVolumes) Volumes(ctx context.Context) ([]Volume, error) {
	out, err := run.Output(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", volumeQuery)
	if err != nil {
		return nil, err
	}

	// A single volume serializes as a bare object rather than an array
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		out = "[" + out + "]"
	}

	var records []volumeRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		return nil, fmt.Errorf("failed to parse volume listing: %w", err)
	}

	volumes := make([]Volume, 0, len(records))
	for _, r := range records {
		volumes = append(volumes, Volume{
			Letter:     strings.ToUpper(strings.TrimSpace(r.Letter)),
			Label:      r.FileSystemLabel,
			FileSystem: r.FileSystemType,
			SizeGB:     r.SizeGB,
		})
	}
	return volumes, nil
}

func (w *windowsVolumes) SystemVolume(ctx context.Context) (Volume, error) {
	system := strings.TrimSuffix(os.Getenv("SystemDrive"), ":")
	if system == "" {
		system = "C"
	}

	volumes, err := w.Volumes(ctx)
	if err != nil {
		return Volume{}, err
	}
	for _, v := range volumes {
		if strings.EqualFold(v.Letter, system) {
			return v, nil
		}
	}
	return Volume{}, fmt.Errorf("system volume %s: not found", system)
}

func (w *windowsVolumes) AssignDriveLetter(ctx context.Context, from, to string) error {
	cmd := fmt.Sprintf("Get-Partition -DriveLetter %s | Set-Partition -NewDriveLetter %s", from, to)
	_, err := run.RunWithRetry(ctx, w.exec, run.Command{
		Program: "powershell",
		Args:    []string{"-NoProfile", "-NonInteractive", "-Command", cmd},
	}, run.RetryOptions{Warn: w.splog.Warn})
	return err
}

// runDiskpart writes script to a temp file and feeds it to diskpart /s
func (w *windowsVolumes) runDiskpart(ctx context.Context, script string) error {
	f, err := os.CreateTemp("", "boxup-diskpart-*.txt")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.WriteString(script); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	w.splog.Debug("diskpart script:\n%s", script)
	_, err = run.RunWithRetry(ctx, w.exec, run.Command{
		Program: "diskpart",
		Args:    []string{"/s", f.Name()},
	}, run.RetryOptions{Warn: w.splog.Warn})
	return err
}

func (w *windowsVolumes) DeleteVolume(ctx context.Context, letter string) error {
	script := fmt.Sprintf("select volume %s\r\ndelete volume override\r\n", letter)
	return w.runDiskpart(ctx, script)
}

func (w *windowsVolumes) ShrinkAndCreate(ctx context.Context, shrinkMB int64, letter, label string) error {
	system := strings.TrimSuffix(os.Getenv("SystemDrive"), ":")
	if system == "" {
		system = "C"
	}

	script := fmt.Sprintf(
		"select volume %s\r\nshrink desired=%d\r\ncreate partition primary\r\nassign letter=%s\r\n",
		system, shrinkMB, letter)
	if err := w.runDiskpart(ctx, script); err != nil {
		return err
	}

	// /DevDrv formats the volume as a Dev Drive (ReFS with device optimization)
	_, err := run.RunWithRetry(ctx, w.exec, run.Command{
		Program: "format",
		Args:    []string{letter + ":", "/FS:ReFS", "/DevDrv", "/Q", "/Y", "/V:" + label},
	}, run.RetryOptions{Warn: w.splog.Warn})
	return err
}

func (w *windowsVolumes) SetFilterAllowList(ctx context.Context, _ string, filters string) error {
	_, err := run.RunWithRetry(ctx, w.exec, run.Command{
		Program: "fsutil",
		Args:    []string{"devdrv", "setfiltersallowed", filters},
	}, run.RetryOptions{Warn: w.splog.Warn})
	return err
}

func (w *windowsVolumes) MarkTrusted(ctx context.Context, letter string) error {
	_, err := run.RunWithRetry(ctx, w.exec, run.Command{
		Program: "fsutil",
		Args:    []string{"devdrv", "trust", letter + ":"},
	}, run.RetryOptions{Warn: w.splog.Warn})
	return err
}
