package devdrive

import "context"

// DevDriveFileSystem is the filesystem type of a Dev Drive volume
const DevDriveFileSystem = "ReFS"

// DevDriveLabel is the label applied to a provisioned volume
const DevDriveLabel = "DevDrive"

// Volume is an OS-level filesystem volume as seen by the provisioner
type Volume struct {
	Letter     string // drive letter without colon, e.g. "E"; empty if unassigned
	Label      string
	FileSystem string // "NTFS", "ReFS", ...
	SizeGB     float64
}

// VolumeManager is the seam between the provisioning state machine and the
// disk-partitioning utilities. The real implementation shells out to
// diskpart, format, and fsutil; tests substitute a fake.
type VolumeManager interface {
	// Volumes enumerates the volumes currently visible to the OS
	Volumes(ctx context.Context) ([]Volume, error)

	// SystemVolume returns the volume holding the OS installation
	SystemVolume(ctx context.Context) (Volume, error)

	// AssignDriveLetter moves the volume currently at letter from to letter to
	AssignDriveLetter(ctx context.Context, from, to string) error

	// DeleteVolume destroys the volume at letter. Irreversible.
	DeleteVolume(ctx context.Context, letter string) error

	// ShrinkAndCreate shrinks the system volume by shrinkMB megabytes,
	// creates a primary partition in the freed space, assigns letter, and
	// formats it as a Dev Drive with label
	ShrinkAndCreate(ctx context.Context, shrinkMB int64, letter, label string) error

	// SetFilterAllowList applies the minifilter allow-list for the volume
	SetFilterAllowList(ctx context.Context, letter, filters string) error

	// MarkTrusted marks the volume as trusted for filter policy purposes
	MarkTrusted(ctx context.Context, letter string) error
}

// EnvironmentWriter applies machine-wide environment variables. Kept apart
// from VolumeManager so orchestration can be tested without touching either
// the registry or the disk.
type EnvironmentWriter interface {
	// SetMachineEnvironment writes a machine-wide environment variable,
	// overwriting any existing value
	SetMachineEnvironment(ctx context.Context, name, value string) error
}
