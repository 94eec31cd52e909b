package testhelpers

import (
	"context"
	"strings"

	"boxup.dev/boxup/internal/devdrive"
)

// ShrinkCall records one ShrinkAndCreate invocation
type ShrinkCall struct {
	ShrinkMB int64
	Letter   string
	Label    string
}

// FakeVolumes implements devdrive.VolumeManager against an in-memory layout
type FakeVolumes struct {
	Vols   []devdrive.Volume
	System devdrive.Volume

	Assigned []string // "from>to"
	Deleted  []string
	Shrinks  []ShrinkCall
	Filters  []string
	Trusted  []string

	// Err, when set, is returned by every method
	Err error
}

func (f *FakeVolumes) Volumes(context.Context) ([]devdrive.Volume, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Vols, nil
}

func (f *FakeVolumes) SystemVolume(context.Context) (devdrive.Volume, error) {
	if f.Err != nil {
		return devdrive.Volume{}, f.Err
	}
	return f.System, nil
}

func (f *FakeVolumes) AssignDriveLetter(_ context.Context, from, to string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Assigned = append(f.Assigned, from+">"+to)
	for i := range f.Vols {
		if strings.EqualFold(f.Vols[i].Letter, from) {
			f.Vols[i].Letter = to
		}
	}
	return nil
}

func (f *FakeVolumes) DeleteVolume(_ context.Context, letter string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Deleted = append(f.Deleted, letter)
	kept := f.Vols[:0]
	for _, v := range f.Vols {
		if !strings.EqualFold(v.Letter, letter) {
			kept = append(kept, v)
		}
	}
	f.Vols = kept
	return nil
}

func (f *FakeVolumes) ShrinkAndCreate(_ context.Context, shrinkMB int64, letter, label string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Shrinks = append(f.Shrinks, ShrinkCall{ShrinkMB: shrinkMB, Letter: letter, Label: label})
	f.Vols = append(f.Vols, devdrive.Volume{
		Letter:     letter,
		Label:      label,
		FileSystem: devdrive.DevDriveFileSystem,
		SizeGB:     float64(shrinkMB) / 1024,
	})
	return nil
}

func (f *FakeVolumes) SetFilterAllowList(_ context.Context, _ string, filters string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Filters = append(f.Filters, filters)
	return nil
}

func (f *FakeVolumes) MarkTrusted(_ context.Context, letter string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Trusted = append(f.Trusted, letter)
	return nil
}

// FakeEnv implements devdrive.EnvironmentWriter in memory
type FakeEnv struct {
	Values map[string]string
	Order  []string
}

func (f *FakeEnv) SetMachineEnvironment(_ context.Context, name, value string) error {
	if f.Values == nil {
		f.Values = make(map[string]string)
	}
	if _, seen := f.Values[name]; !seen {
		f.Order = append(f.Order, name)
	}
	f.Values[name] = value
	return nil
}
