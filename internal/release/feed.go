// Package release acquires the configuration tool from its GitHub release
// feed: latest tag, release assets filtered by target architecture, download
// and expansion into a per-user or per-machine install directory.
package release

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// Asset is a downloadable release artifact
type Asset struct {
	Name        string
	DownloadURL string
	Size        int64
}

// Feed is the release feed consumed when the configuration tool is absent
// from the execution path
type Feed interface {
	// LatestTag returns the most recent tag name
	LatestTag(ctx context.Context) (string, error)

	// AssetsForTag returns the release assets published under tag
	AssetsForTag(ctx context.Context, tag string) ([]Asset, error)
}

// GitHubFeed implements Feed against the GitHub API
type GitHubFeed struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubFeed creates a feed for owner/repo. An empty token yields an
// unauthenticated client, which is sufficient for public release feeds.
func NewGitHubFeed(ctx context.Context, owner, repo, token string) *GitHubFeed {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = github.NewClient(nil)
	}
	return &GitHubFeed{client: client, owner: owner, repo: repo}
}

// LatestTag returns the newest tag in the repository. GitHub returns tags in
// reverse chronological order, so the first page's first entry is the latest.
func (f *GitHubFeed) LatestTag(ctx context.Context) (string, error) {
	tags, _, err := f.client.Repositories.ListTags(ctx, f.owner, f.repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return "", fmt.Errorf("failed to list tags for %s/%s: %w", f.owner, f.repo, err)
	}
	if len(tags) == 0 || tags[0].Name == nil {
		return "", fmt.Errorf("no tags found for %s/%s", f.owner, f.repo)
	}
	return *tags[0].Name, nil
}

// AssetsForTag resolves the release published under tag and returns its assets
func (f *GitHubFeed) AssetsForTag(ctx context.Context, tag string) ([]Asset, error) {
	rel, _, err := f.client.Repositories.GetReleaseByTag(ctx, f.owner, f.repo, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to get release %s for %s/%s: %w", tag, f.owner, f.repo, err)
	}

	assets := make([]Asset, 0, len(rel.Assets))
	for _, a := range rel.Assets {
		if a.Name == nil || a.BrowserDownloadURL == nil {
			continue
		}
		assets = append(assets, Asset{
			Name:        *a.Name,
			DownloadURL: *a.BrowserDownloadURL,
			Size:        int64(a.GetSize()),
		})
	}
	return assets, nil
}
