// Package configure resolves a configuration document from a URI, a local
// file, or an inline string, ensures the configuration tool is installed,
// and pipes the document into the tool's apply operation.
package configure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	boxuperrors "boxup.dev/boxup/internal/errors"
)

// Source identifies where the configuration document comes from. Path and
// Inline are mutually exclusive; Path wins when both are set.
type Source struct {
	// Path is an absolute URI or a local file path
	Path string

	// Inline is the configuration document itself
	Inline string
}

// isAbsoluteURI reports whether raw is a well-formed absolute http(s) URI.
// Bare drive-letter paths parse as URIs with a single-letter scheme, so the
// scheme and host are checked explicitly.
func isAbsoluteURI(raw string) (*url.URL, bool) {
	uri, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, false
	}
	if uri.Scheme != "http" && uri.Scheme != "https" {
		return nil, false
	}
	if uri.Host == "" {
		return nil, false
	}
	return uri, true
}

func fetchURI(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch configuration from %s: %w", uri, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch configuration from %s: unexpected status %s", uri, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Resolve produces the configuration document text for src. A Path that is
// neither an absolute URI nor an existing file fails with ErrInvalidInput; a
// fully empty source fails with ErrMissingConfiguration.
func Resolve(ctx context.Context, src Source) (string, error) {
	if src.Path != "" {
		if uri, ok := isAbsoluteURI(src.Path); ok {
			return fetchURI(ctx, uri.String())
		}

		if info, err := os.Stat(src.Path); err == nil && !info.IsDir() {
			data, err := os.ReadFile(src.Path)
			if err != nil {
				return "", fmt.Errorf("failed to read configuration file: %w", err)
			}
			return string(data), nil
		}

		return "", boxuperrors.NewInvalidInputError(src.Path)
	}

	if src.Inline != "" {
		return src.Inline, nil
	}

	return "", boxuperrors.ErrMissingConfiguration
}
