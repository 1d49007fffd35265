// Package app wires configuration, credentials and the catalog API
// description into a ready-to-run pipeline.
package app

import (
	"fmt"
	"io"

	"github.com/blackcoderx/lmfetch/pkg/apispec"
	"github.com/blackcoderx/lmfetch/pkg/auth"
	"github.com/blackcoderx/lmfetch/pkg/catalog"
	"github.com/blackcoderx/lmfetch/pkg/config"
	"github.com/blackcoderx/lmfetch/pkg/download"
	"github.com/blackcoderx/lmfetch/pkg/endpoint"
	"github.com/blackcoderx/lmfetch/pkg/httpclient"
	"github.com/blackcoderx/lmfetch/pkg/pipeline"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// App holds the components of one run.
type App struct {
	Catalog *catalog.Client
	Runner  *pipeline.Runner

	runID string
}

// NewLogger returns the console logger. Progress lines carry no timestamp.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

// New loads the API description named in cfg and builds every component.
func New(cfg *config.Config, creds auth.Credentials, logger *log.Logger) (*App, error) {
	return NewWithGetter(cfg, creds, httpclient.New(
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithUserAgent(cfg.UserAgent),
	), logger)
}

// NewWithGetter is New with a caller supplied HTTP capability.
func NewWithGetter(cfg *config.Config, creds auth.Credentials, getter httpclient.Getter, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	doc, err := apispec.Load(cfg.SpecPath)
	if err != nil {
		return nil, err
	}

	base, err := doc.BaseURL()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	// the run id only decorates debug output, default progress lines stay plain
	if logger.GetLevel() <= log.DebugLevel {
		logger = logger.With("run", runID)
	}

	logger.Debug("loaded api description",
		"title", doc.Info.Title,
		"version", doc.Info.Version,
		"base", base,
		"auth", creds,
	)
	if len(doc.Paths) > 0 && !doc.HasPath(endpoint.CollectionsPath) {
		logger.Warn("api description does not declare " + endpoint.CollectionsPath)
	}

	endpoints := endpoint.NewSet(base)
	client := catalog.NewClient(getter, creds, endpoints, logger)
	persister := download.NewPersister(cfg.OutputDir, getter, creds, logger)

	runner := pipeline.NewRunner(client, persister, pipeline.Options{
		AssetType: cfg.AssetType,
		Limit:     cfg.Limit,
	}, logger)

	return &App{
		Catalog: client,
		Runner:  runner,
		runID:   runID,
	}, nil
}
