package devdrive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/devdrive"
)

func TestCacheVars(t *testing.T) {
	vars := devdrive.CacheVars("E")

	t.Run("covers every package manager cache", func(t *testing.T) {
		names := make([]string, 0, len(vars))
		for _, v := range vars {
			names = append(names, v.Name)
		}
		require.Equal(t, []string{
			"npm_config_cache",
			"NUGET_PACKAGES",
			"VCPKG_DEFAULT_BINARY_CACHE",
			"PIP_CACHE_DIR",
			"CARGO_HOME",
			"MAVEN_OPTS",
			"GRADLE_USER_HOME",
		}, names)
	})

	t.Run("maven carries the repo-local switch instead of a bare path", func(t *testing.T) {
		for _, v := range vars {
			if v.Name == "MAVEN_OPTS" {
				require.Equal(t, `-Dmaven.repo.local=E:\packages\maven`, v.Value)
				require.Equal(t, `E:\packages\maven`, v.Dir)
				return
			}
		}
		t.Fatal("MAVEN_OPTS not found")
	})

	t.Run("all other values are the cache directory itself", func(t *testing.T) {
		for _, v := range vars {
			if v.Name == "MAVEN_OPTS" {
				continue
			}
			require.Equal(t, v.Dir, v.Value)
		}
	})
}
