// Package download persists catalog assets into a local directory, skipping
// files that are already there.
package download

import (
	"context"
	"fmt"

	"github.com/blackcoderx/lmfetch/pkg/auth"
	"github.com/blackcoderx/lmfetch/pkg/httpclient"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Status is the outcome of one Persist call.
type Status int

const (
	StatusFailed Status = iota
	StatusSkipped
	StatusDownloaded
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusDownloaded:
		return "downloaded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result describes what Persist did for one asset.
type Result struct {
	Status   Status
	Filename string
	Path     string
	Bytes    int64
	Err      error
}

// Persister downloads assets into Dir.
type Persister struct {
	fs     afero.Fs
	dir    string
	getter httpclient.Getter
	creds  auth.Credentials
	log    *log.Logger
}

// NewPersister creates a Persister writing to dir on the OS filesystem.
func NewPersister(dir string, getter httpclient.Getter, creds auth.Credentials, logger *log.Logger) *Persister {
	return NewPersisterWithFS(afero.NewOsFs(), dir, getter, creds, logger)
}

// NewPersisterWithFS creates a Persister on the given filesystem.
func NewPersisterWithFS(fs afero.Fs, dir string, getter httpclient.Getter, creds auth.Credentials, logger *log.Logger) *Persister {
	return &Persister{
		fs:     fs,
		dir:    dir,
		getter: getter,
		creds:  creds,
		log:    logger,
	}
}

// Persist stores the asset at url as Dir/<last url segment>.
// It never returns an error: failures are logged and reported in the Result.
func (p *Persister) Persist(ctx context.Context, url string) Result {
	filename := FilenameFor(url)
	res := Result{Filename: filename}

	if err := p.fs.MkdirAll(p.dir, 0755); err != nil {
		return p.fail(res, fmt.Errorf("failed to create %s: %w", p.dir, err))
	}

	path, err := pathWithinDir(p.dir, filename)
	if err != nil {
		return p.fail(res, err)
	}
	res.Path = path

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return p.fail(res, err)
	}
	if exists {
		p.log.Infof("Skipping %s - already exists", filename)
		res.Status = StatusSkipped
		return res
	}

	p.log.Infof("Downloading %s", filename)

	resp, err := p.getter.Get(ctx, url, p.creds)
	if err != nil {
		return p.fail(res, err)
	}
	if !resp.OK() {
		p.log.Errorf("Error downloading %s - HTTP %d", filename, resp.StatusCode)
		res.Status = StatusFailed
		res.Err = fmt.Errorf("GET %s returned HTTP %d", url, resp.StatusCode)
		return res
	}

	if err := afero.WriteFile(p.fs, path, resp.Body, 0644); err != nil {
		// never leave a truncated asset behind, it would be skipped next run
		_ = p.fs.Remove(path)
		return p.fail(res, fmt.Errorf("failed to write %s: %w", path, err))
	}

	res.Status = StatusDownloaded
	res.Bytes = int64(len(resp.Body))

	p.log.Infof("Done downloading %s (%s)", filename, humanize.Bytes(uint64(res.Bytes)))
	p.log.Debug("stored asset",
		"path", path,
		"mime", mimetype.Detect(resp.Body).String(),
		"duration", resp.Duration,
	)

	return res
}

func (p *Persister) fail(res Result, err error) Result {
	p.log.Errorf("Error downloading %s %v", res.Filename, err)
	res.Status = StatusFailed
	res.Err = err
	return res
}
