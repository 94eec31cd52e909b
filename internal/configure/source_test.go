package configure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boxup.dev/boxup/internal/configure"
	boxuperrors "boxup.dev/boxup/internal/errors"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("empty source fails with missing configuration", func(t *testing.T) {
		_, err := configure.Resolve(ctx, configure.Source{})
		require.ErrorIs(t, err, boxuperrors.ErrMissingConfiguration)
	})

	t.Run("nonexistent path that is not a URI fails with invalid input", func(t *testing.T) {
		_, err := configure.Resolve(ctx, configure.Source{Path: filepath.Join(t.TempDir(), "nope.yaml")})
		require.ErrorIs(t, err, boxuperrors.ErrInvalidInput)
	})

	t.Run("relative gibberish fails with invalid input", func(t *testing.T) {
		_, err := configure.Resolve(ctx, configure.Source{Path: "not a uri and not a file"})
		require.ErrorIs(t, err, boxuperrors.ErrInvalidInput)
	})

	t.Run("existing file is read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("properties: {}\n"), 0600))

		doc, err := configure.Resolve(ctx, configure.Source{Path: path})
		require.NoError(t, err)
		require.Equal(t, "properties: {}\n", doc)
	})

	t.Run("absolute URI is fetched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("resources: []\n"))
		}))
		defer server.Close()

		doc, err := configure.Resolve(ctx, configure.Source{Path: server.URL + "/config.yaml"})
		require.NoError(t, err)
		require.Equal(t, "resources: []\n", doc)
	})

	t.Run("URI fetch failure surfaces an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := configure.Resolve(ctx, configure.Source{Path: server.URL + "/missing.yaml"})
		require.Error(t, err)
	})

	t.Run("inline content passes through", func(t *testing.T) {
		doc, err := configure.Resolve(ctx, configure.Source{Inline: "properties:\n  configurationVersion: 0.2.0\n"})
		require.NoError(t, err)
		require.Equal(t, "properties:\n  configurationVersion: 0.2.0\n", doc)
	})

	t.Run("path wins over inline", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("from-file"), 0600))

		doc, err := configure.Resolve(ctx, configure.Source{Path: path, Inline: "from-inline"})
		require.NoError(t, err)
		require.Equal(t, "from-file", doc)
	})
}
