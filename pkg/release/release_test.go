package release

import (
	"errors"
	"testing"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	latest    *selfupdate.Release
	found     bool
	err       error
	slugs     []string
	updatedTo string
}

func (f *fakeSource) DetectLatest(slug string) (*selfupdate.Release, bool, error) {
	f.slugs = append(f.slugs, slug)
	return f.latest, f.found, f.err
}

func (f *fakeSource) UpdateTo(rel *selfupdate.Release, cmdPath string) error {
	f.updatedTo = cmdPath
	return nil
}

func releaseOf(v string) *selfupdate.Release {
	return &selfupdate.Release{Version: semver.MustParse(v), AssetURL: "https://example.test/lmfetch.tar.gz"}
}

func TestNewer(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		src       *fakeSource
		wantNewer bool
		wantErr   error
	}{
		{
			name:    "dev build",
			current: DevVersion,
			src:     &fakeSource{latest: releaseOf("1.0.0"), found: true},
			wantErr: ErrDevBuild,
		},
		{
			name:    "same version",
			current: "v1.2.0",
			src:     &fakeSource{latest: releaseOf("1.2.0"), found: true},
		},
		{
			name:    "older release",
			current: "1.3.0",
			src:     &fakeSource{latest: releaseOf("1.2.0"), found: true},
		},
		{
			name:    "no release",
			current: "1.0.0",
			src:     &fakeSource{},
		},
		{
			name:      "newer release",
			current:   "v1.0.0",
			src:       &fakeSource{latest: releaseOf("1.1.0"), found: true},
			wantNewer: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := NewChecker(tt.src, "acme/lmfetch").Newer(tt.current)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tt.src.slugs, "no release lookup for a dev build")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"acme/lmfetch"}, tt.src.slugs)
			if tt.wantNewer {
				require.NotNil(t, rel)
				assert.Equal(t, "1.1.0", rel.Version.String())
			} else {
				assert.Nil(t, rel)
			}
		})
	}
}

func TestNewer_Errors(t *testing.T) {
	_, err := NewChecker(&fakeSource{}, "acme/lmfetch").Newer("not-a-version")
	assert.Error(t, err)

	_, err = NewChecker(&fakeSource{}, "").Newer("1.0.0")
	assert.Error(t, err)

	detectErr := errors.New("rate limited")
	_, err = NewChecker(&fakeSource{err: detectErr}, "acme/lmfetch").Newer("1.0.0")
	assert.ErrorIs(t, err, detectErr)
}

func TestApply(t *testing.T) {
	src := &fakeSource{}
	require.NoError(t, NewChecker(src, "acme/lmfetch").Apply(releaseOf("1.1.0"), "/usr/local/bin/lmfetch"))
	assert.Equal(t, "/usr/local/bin/lmfetch", src.updatedTo)
}
