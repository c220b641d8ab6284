// Package selfupdate checks GitHub releases for a newer questlog build.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild       = errors.New("cannot check a development build")
	ErrInvalidVersion = errors.New("release tag is not valid semver")
)

const defaultAPIBaseURL = "https://api.github.com/repos/abhisek/questlog"

// Checker queries the release feed and compares versions.
type Checker struct {
	client     *http.Client
	apiBaseURL string
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithAPIBaseURL overrides the release API base URL.
func WithAPIBaseURL(url string) Option {
	return func(c *Checker) { c.apiBaseURL = strings.TrimRight(url, "/") }
}

// NewChecker creates a Checker with a 30s default timeout.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:     &http.Client{Timeout: 30 * time.Second},
		apiBaseURL: defaultAPIBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput carries the running build's version.
type CheckInput struct {
	Version string
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
}

// Check fetches the latest release tag and compares it against the running
// version. Development builds cannot be compared.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	if input.Version == "" || input.Version == "(devel)" {
		return nil, ErrDevBuild
	}

	latest, err := c.latestTag(ctx)
	if err != nil {
		return nil, err
	}

	current := ensureV(input.Version)
	latest = ensureV(latest)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, latest)
	}
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, current)
	}

	return &CheckResult{
		UpdateAvailable: semver.Compare(latest, current) > 0,
		CurrentVersion:  current,
		LatestVersion:   latest,
	}, nil
}

func (c *Checker) latestTag(ctx context.Context) (string, error) {
	url := c.apiBaseURL + "/releases/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch latest release: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read release response: %w", err)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("parse release response: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("release response missing tag_name")
	}
	return release.TagName, nil
}

func ensureV(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
