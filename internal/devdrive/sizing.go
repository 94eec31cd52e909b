// Package devdrive provisions a performance-optimized development volume:
// OS precondition check, relabel-or-create over the disk layout, filesystem
// filter policy, and package-cache environment redirection.
package devdrive

import (
	"math"

	boxuperrors "boxup.dev/boxup/internal/errors"
)

const (
	// MinimumOSBuild is the first Windows build with Dev Drive support
	MinimumOSBuild = 22621

	// MinimumVolumeGB is the smallest Dev Drive worth creating
	MinimumVolumeGB = 20

	// MinimumSystemMarginGB is the safety margin the system volume must keep
	// beyond the requested reserve
	MinimumSystemMarginGB = 50
)

// ComputeTargetGB computes the size of the new volume carved from the system
// volume: systemGB minus the requested reserve, validated against both
// safety floors.
func ComputeTargetGB(systemGB float64, reserveGB int) (float64, error) {
	target := systemGB - float64(reserveGB)

	if target < MinimumVolumeGB {
		return 0, &boxuperrors.InsufficientSpaceError{
			SystemGB:  int(systemGB),
			ReserveGB: reserveGB,
			TargetGB:  int(target),
			Reason:    "new volume would be below the 20 GB minimum",
		}
	}

	if systemGB-float64(2*reserveGB) < MinimumSystemMarginGB {
		return 0, &boxuperrors.InsufficientSpaceError{
			SystemGB:  int(systemGB),
			ReserveGB: reserveGB,
			TargetGB:  int(target),
			Reason:    "system volume would keep less than the 50 GB safety margin",
		}
	}

	return target, nil
}

// ShrinkMB converts the target volume size to the megabyte count passed to
// the partitioning tool: round(targetGB) * 1024.
func ShrinkMB(targetGB float64) int64 {
	return int64(math.Round(targetGB)) * 1024
}
