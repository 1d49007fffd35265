// Package release checks GitHub releases for a newer lmfetch build and
// replaces the running binary with it.
package release

import (
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// DevVersion is the version string of builds made without -ldflags.
const DevVersion = "dev"

// ErrDevBuild is returned when the running binary has no release version.
var ErrDevBuild = errors.New("development build, update is not supported")

// Source finds and installs releases. *selfupdate.Updater implements it.
type Source interface {
	DetectLatest(slug string) (*selfupdate.Release, bool, error)
	UpdateTo(rel *selfupdate.Release, cmdPath string) error
}

// Checker compares the running version with the latest release of one repository.
type Checker struct {
	src  Source
	repo string
}

// NewChecker creates a Checker for repo ("owner/name").
func NewChecker(src Source, repo string) *Checker {
	return &Checker{src: src, repo: repo}
}

// NewGitHubChecker creates a Checker backed by the GitHub releases API.
func NewGitHubChecker(repo string) *Checker {
	return NewChecker(selfupdate.DefaultUpdater(), repo)
}

// Newer returns the latest release when it is newer than current, or nil
// when current is up to date.
func (c *Checker) Newer(current string) (*selfupdate.Release, error) {
	if current == DevVersion {
		return nil, ErrDevBuild
	}
	if c.repo == "" {
		return nil, fmt.Errorf("release repository is not configured")
	}

	v, err := semver.ParseTolerant(current)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current version %q: %w", current, err)
	}

	latest, found, err := c.src.DetectLatest(c.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest version of %s: %w", c.repo, err)
	}

	if !found || latest.Version.LTE(v) {
		return nil, nil
	}
	return latest, nil
}

// Apply replaces the binary at exe with rel.
func (c *Checker) Apply(rel *selfupdate.Release, exe string) error {
	if err := c.src.UpdateTo(rel, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}
	return nil
}
