// Package crates provides a crates.io registry client implementing
// cratedocs.Resolver. It talks to the public API without authentication.
package crates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/cratedocs"
)

// DefaultBaseURL is the public crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// DefaultTimeout bounds each registry request.
const DefaultTimeout = 12 * time.Second

// Ensure Client implements cratedocs.Resolver at compile time.
var _ cratedocs.Resolver = (*Client)(nil)

// Client resolves crate versions and metadata from the crates.io API.
// It is safe for concurrent use by multiple goroutines.
//
// Note: crates.io requires a User-Agent header; the client sets one.
type Client struct {
	client    *http.Client
	baseURL   string
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a crates.io client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: "cratedocs/1.0 (https://github.com/fwojciec/cratedocs)",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// Resolve determines the newest non-yanked version of the crate.
//
// The primary path reads the full versions list and picks the best version
// by numeric-segment comparison, preferring stable over prerelease. A
// supplementary fetch of the crate root record backfills description and
// repository/documentation fields the list didn't supply. If the versions
// list is unusable, the crate root record's max_version is used directly.
func (c *Client) Resolve(ctx context.Context, name string) (*cratedocs.Crate, error) {
	if name == "" {
		return nil, cratedocs.Errorf(cratedocs.EINVALID, "crate name required")
	}

	crate, err := c.resolveFromVersions(ctx, name)
	if err == nil {
		return crate, nil
	}

	return c.resolveFromRoot(ctx, name, err)
}

// resolveFromVersions picks the best version from the versions endpoint.
func (c *Client) resolveFromVersions(ctx context.Context, name string) (*cratedocs.Crate, error) {
	var data versionsResponse
	url := fmt.Sprintf("%s/crates/%s/versions", c.baseURL, name)
	if err := c.get(ctx, url, &data); err != nil {
		return nil, err
	}

	crate := &cratedocs.Crate{Name: name}
	for _, v := range data.Versions {
		if v.Yanked || v.Num == "" {
			continue
		}
		if crate.Version == "" || cratedocs.VersionGreater(v.Num, crate.Version) {
			crate.Version = v.Num
		}
		// Capture description/repository from whichever entry supplies
		// them first.
		if crate.Description == "" && v.Description != "" {
			crate.Description = v.Description
		}
		if crate.RepoURL == "" && v.Links.Repository != "" {
			crate.RepoURL = v.Links.Repository
		}
	}
	if crate.Version == "" {
		return nil, cratedocs.Errorf(cratedocs.ENOTFOUND, "no usable version found for %q", name)
	}

	c.backfill(ctx, name, crate)
	return crate, nil
}

// backfill fetches the crate root record to fill in description and
// repository/documentation fields still missing after the list pass.
// Failures are ignored; the list result stands on its own.
func (c *Client) backfill(ctx context.Context, name string, crate *cratedocs.Crate) {
	var data rootResponse
	url := fmt.Sprintf("%s/crates/%s", c.baseURL, name)
	if err := c.get(ctx, url, &data); err != nil {
		return
	}
	if crate.Description == "" {
		crate.Description = data.Crate.Description
	}
	if crate.RepoURL == "" {
		crate.RepoURL = data.Crate.Repository
	}
	if crate.RepoURL == "" {
		crate.RepoURL = data.Crate.Documentation
	}
}

// resolveFromRoot reads the reported latest version from the crate root
// record. listErr is the failure from the primary path, used to surface
// the more informative cause when both paths fail.
func (c *Client) resolveFromRoot(ctx context.Context, name string, listErr error) (*cratedocs.Crate, error) {
	var data rootResponse
	url := fmt.Sprintf("%s/crates/%s", c.baseURL, name)
	if err := c.get(ctx, url, &data); err != nil {
		if cratedocs.ErrorCode(listErr) == cratedocs.ENOTFOUND {
			return nil, err
		}
		return nil, listErr
	}

	version := data.Crate.MaxVersion
	if version == "" {
		version = data.Crate.NewestVersion
	}
	if version == "" {
		return nil, cratedocs.Errorf(cratedocs.ENOTFOUND, "could not determine latest version for %q", name)
	}

	repo := data.Crate.Repository
	if repo == "" {
		repo = data.Crate.Documentation
	}
	return &cratedocs.Crate{
		Name:        name,
		Version:     version,
		Description: data.Crate.Description,
		RepoURL:     repo,
	}, nil
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cratedocs.Errorf(cratedocs.EINTERNAL, "building request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return cratedocs.Errorf(cratedocs.EUNAVAILABLE, "timeout fetching %s", url)
		}
		return cratedocs.Errorf(cratedocs.EUNAVAILABLE, "network error fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return cratedocs.Errorf(cratedocs.ENOTFOUND, "crates.io returned 404 for %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return cratedocs.Errorf(cratedocs.EUNAVAILABLE, "crates.io returned %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cratedocs.Errorf(cratedocs.EUNAVAILABLE, "reading response from %s: %v", url, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return cratedocs.Errorf(cratedocs.EINVALID, "invalid JSON from %s: %v", url, err)
	}
	return nil
}

type versionsResponse struct {
	Versions []struct {
		Num         string `json:"num"`
		Yanked      bool   `json:"yanked"`
		Description string `json:"description"`
		Links       struct {
			Repository string `json:"repository"`
		} `json:"links"`
	} `json:"versions"`
}

type rootResponse struct {
	Crate struct {
		Name          string `json:"name"`
		MaxVersion    string `json:"max_version"`
		NewestVersion string `json:"newest_version"`
		Description   string `json:"description"`
		Repository    string `json:"repository"`
		Documentation string `json:"documentation"`
	} `json:"crate"`
}
