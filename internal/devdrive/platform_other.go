//go:build !windows

package devdrive

import (
	"context"

	boxuperrors "boxup.dev/boxup/internal/errors"
	"boxup.dev/boxup/internal/tui"
)

// newPlatform returns stub implementations off Windows. The orchestration
// stays importable and testable everywhere; real runs fail the platform
// precondition before any of these are reached.
func newPlatform(_ *tui.Splog) (VolumeManager, EnvironmentWriter, func() (int, error)) {
	return unsupportedVolumes{}, unsupportedEnv{}, func() (int, error) {
		return 0, boxuperrors.ErrUnsupportedPlatform
	}
}

type unsupportedVolumes struct{}

func (unsupportedVolumes) Volumes(context.Context) ([]Volume, error) {
	return nil, boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) SystemVolume(context.Context) (Volume, error) {
	return Volume{}, boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) AssignDriveLetter(context.Context, string, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) DeleteVolume(context.Context, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) ShrinkAndCreate(context.Context, int64, string, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) SetFilterAllowList(context.Context, string, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}

func (unsupportedVolumes) MarkTrusted(context.Context, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}

type unsupportedEnv struct{}

func (unsupportedEnv) SetMachineEnvironment(context.Context, string, string) error {
	return boxuperrors.ErrUnsupportedPlatform
}
