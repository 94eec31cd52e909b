package devdrive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/devdrive"
)

func TestComposeFilterList(t *testing.T) {
	t.Run("base list", func(t *testing.T) {
		require.Equal(t, "MsSecFlt,ProcMon24", devdrive.ComposeFilterList(false, false))
	})

	t.Run("gvfs adds the projection filter", func(t *testing.T) {
		require.Equal(t, "MsSecFlt,ProcMon24,PrjFlt", devdrive.ComposeFilterList(true, false))
	})

	t.Run("containers add the mount filters", func(t *testing.T) {
		require.Equal(t, "MsSecFlt,ProcMon24,wcifs,bindFlt", devdrive.ComposeFilterList(false, true))
	})

	t.Run("both flags", func(t *testing.T) {
		require.Equal(t, "MsSecFlt,ProcMon24,PrjFlt,wcifs,bindFlt", devdrive.ComposeFilterList(true, true))
	})
}
