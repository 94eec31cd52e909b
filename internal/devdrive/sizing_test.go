package devdrive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	boxuperrors "boxup.dev/boxup/internal/errors"
	"boxup.dev/boxup/internal/devdrive"
)

func TestComputeTargetGB(t *testing.T) {
	t.Run("fails when target falls below the 20 GB floor", func(t *testing.T) {
		// 260 - 250 = 10 GB target
		_, err := devdrive.ComputeTargetGB(260, 250)
		require.ErrorIs(t, err, boxuperrors.ErrInsufficientSpace)
	})

	t.Run("fails when the system volume loses its safety margin", func(t *testing.T) {
		// target 110 GB is fine, but 300 - 2*190 < 50
		_, err := devdrive.ComputeTargetGB(300, 190)
		require.ErrorIs(t, err, boxuperrors.ErrInsufficientSpace)
	})

	t.Run("computes target for a roomy system volume", func(t *testing.T) {
		target, err := devdrive.ComputeTargetGB(1000, 250)
		require.NoError(t, err)
		require.InDelta(t, 750.0, target, 0.001)
	})

	t.Run("carries fractional sizes through", func(t *testing.T) {
		target, err := devdrive.ComputeTargetGB(931.51, 250)
		require.NoError(t, err)
		require.InDelta(t, 681.51, target, 0.001)
	})
}

func TestShrinkMB(t *testing.T) {
	t.Run("rounds gigabytes then converts to megabytes", func(t *testing.T) {
		require.Equal(t, int64(768000), devdrive.ShrinkMB(750))
		require.Equal(t, int64(768000), devdrive.ShrinkMB(749.6))
		require.Equal(t, int64(697344), devdrive.ShrinkMB(681.2))
	})
}
