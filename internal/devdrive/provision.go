package devdrive

import (
	"context"
	"fmt"
	"os"
	"strings"

	boxuperrors "boxup.dev/boxup/internal/errors"
	"boxup.dev/boxup/internal/tui"
)

// Options configures a provisioning run
type Options struct {
	DriveLetter      string // default "E"
	OsDriveMinSizeGB int    // default 250
	EnableGVFS       bool
	EnableContainers bool

	// Force skips the confirmation before the destructive volume delete
	Force bool
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		DriveLetter:      "E",
		OsDriveMinSizeGB: 250,
	}
}

// Provisioner executes the Dev Drive state machine. Each step is fail-fast;
// changes made by earlier steps persist when a later step fails.
type Provisioner struct {
	Volumes VolumeManager
	Env     EnvironmentWriter
	Splog   *tui.Splog

	// OSBuild reports the running OS build number
	OSBuild func() (int, error)

	// Confirm asks the operator before destructive steps; defaults to tui.Confirm
	Confirm func(message string) (bool, error)

	// MkdirAll creates cache directories; defaults to os.MkdirAll
	MkdirAll func(path string, perm os.FileMode) error
}

// NewProvisioner creates a Provisioner wired to the current platform's
// volume manager and environment writer
func NewProvisioner(splog *tui.Splog) *Provisioner {
	volumes, env, osBuild := newPlatform(splog)
	return &Provisioner{
		Volumes: volumes,
		Env:     env,
		Splog:   splog,
		OSBuild: osBuild,
		Confirm: tui.Confirm,
		MkdirAll: os.MkdirAll,
	}
}

// Run provisions the Dev Drive per opts
func (p *Provisioner) Run(ctx context.Context, opts Options) error {
	if opts.DriveLetter == "" {
		opts.DriveLetter = "E"
	}
	opts.DriveLetter = strings.ToUpper(strings.TrimSuffix(opts.DriveLetter, ":"))
	if opts.OsDriveMinSizeGB <= 0 {
		opts.OsDriveMinSizeGB = 250
	}

	if err := p.checkPlatform(); err != nil {
		return err
	}

	if err := p.ensureVolume(ctx, opts); err != nil {
		return err
	}

	filters := ComposeFilterList(opts.EnableGVFS, opts.EnableContainers)
	p.Splog.Info("Applying filter allow-list: %s", filters)
	if err := p.Volumes.SetFilterAllowList(ctx, opts.DriveLetter, filters); err != nil {
		return err
	}
	if err := p.Volumes.MarkTrusted(ctx, opts.DriveLetter); err != nil {
		return err
	}

	if err := p.redirectCaches(ctx, opts.DriveLetter); err != nil {
		return err
	}

	p.Splog.Success("Dev Drive %s: ready", opts.DriveLetter)
	return nil
}

func (p *Provisioner) checkPlatform() error {
	build, err := p.OSBuild()
	if err != nil {
		return err
	}
	if build < MinimumOSBuild {
		return boxuperrors.NewUnsupportedPlatformError(build, MinimumOSBuild)
	}
	return nil
}

// ensureVolume leaves exactly one Dev Drive at the requested letter: either
// by reassigning an existing Dev Drive's letter (non-destructive) or by
// carving a new volume out of the system volume.
func (p *Provisioner) ensureVolume(ctx context.Context, opts Options) error {
	volumes, err := p.Volumes.Volumes(ctx)
	if err != nil {
		return err
	}

	for _, v := range volumes {
		if !strings.EqualFold(v.FileSystem, DevDriveFileSystem) {
			continue
		}
		if strings.EqualFold(v.Letter, opts.DriveLetter) {
			p.Splog.Info("Dev Drive already present at %s:", opts.DriveLetter)
			return nil
		}
		p.Splog.Info("Reassigning Dev Drive from %s: to %s:", v.Letter, opts.DriveLetter)
		return p.Volumes.AssignDriveLetter(ctx, v.Letter, opts.DriveLetter)
	}

	system, err := p.Volumes.SystemVolume(ctx)
	if err != nil {
		return err
	}

	targetGB, err := ComputeTargetGB(system.SizeGB, opts.OsDriveMinSizeGB)
	if err != nil {
		return err
	}

	// A foreign volume squatting on the requested letter must go first.
	for _, v := range volumes {
		if strings.EqualFold(v.Letter, opts.DriveLetter) {
			if !opts.Force {
				if err := p.confirmDelete(v); err != nil {
					return err
				}
			}
			p.Splog.Warn("Deleting volume %s: (%s, %.0f GB)", v.Letter, v.FileSystem, v.SizeGB)
			if err := p.Volumes.DeleteVolume(ctx, v.Letter); err != nil {
				return err
			}
			break
		}
	}

	shrinkMB := ShrinkMB(targetGB)
	p.Splog.Info("Shrinking %s: by %d MB and creating a %.0f GB Dev Drive at %s:",
		system.Letter, shrinkMB, targetGB, opts.DriveLetter)
	return p.Volumes.ShrinkAndCreate(ctx, shrinkMB, opts.DriveLetter, DevDriveLabel)
}

// confirmDelete gates the irreversible volume delete behind an explicit
// confirmation unless --force was given
func (p *Provisioner) confirmDelete(v Volume) error {
	if p.Confirm == nil {
		return boxuperrors.ErrCanceled
	}
	ok, err := p.Confirm(fmt.Sprintf("Volume %s: (%s, %.0f GB) will be DESTROYED. Continue?", v.Letter, v.FileSystem, v.SizeGB))
	if err != nil {
		return fmt.Errorf("volume %s: occupied and confirmation unavailable (use --force): %w", v.Letter, err)
	}
	if !ok {
		return boxuperrors.ErrCanceled
	}
	return nil
}

// redirectCaches creates the cache directories on the new volume and points
// the machine-wide environment variables at them. Writes are idempotent.
func (p *Provisioner) redirectCaches(ctx context.Context, letter string) error {
	for _, cv := range CacheVars(letter) {
		if err := p.MkdirAll(cv.Dir, 0750); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", cv.Dir, err)
		}
		p.Splog.Debug("setting %s=%s", cv.Name, cv.Value)
		if err := p.Env.SetMachineEnvironment(ctx, cv.Name, cv.Value); err != nil {
			return err
		}
	}
	p.Splog.Info("Redirected %d package caches to %s:", len(CacheVars(letter)), letter)
	return nil
}
