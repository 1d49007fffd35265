// Package pipeline drives a download run: list collections, list their items,
// resolve one asset per item and persist it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/blackcoderx/lmfetch/pkg/catalog"
	"github.com/blackcoderx/lmfetch/pkg/download"
	"github.com/charmbracelet/log"
)

// Catalog lists collections and their items.
type Catalog interface {
	ListCollections(ctx context.Context) ([]catalog.Collection, error)
	ListItems(ctx context.Context, collectionID string, limit int) ([]catalog.Item, error)
}

// Persister stores one asset.
type Persister interface {
	Persist(ctx context.Context, url string) download.Result
}

// Options are the per-run settings of a Runner.
type Options struct {
	AssetType string
	Limit     int
}

// Summary counts what a run did.
type Summary struct {
	Collections int
	Items       int
	Downloaded  int
	Skipped     int
	Failed      int
}

func (s *Summary) add(res download.Result) {
	switch res.Status {
	case download.StatusDownloaded:
		s.Downloaded++
	case download.StatusSkipped:
		s.Skipped++
	default:
		s.Failed++
	}
}

// Runner executes the pipeline strictly in order, one request at a time.
type Runner struct {
	catalog   Catalog
	persister Persister
	opts      Options
	log       *log.Logger
}

// NewRunner creates a Runner.
func NewRunner(c Catalog, p Persister, opts Options, logger *log.Logger) *Runner {
	return &Runner{
		catalog:   c,
		persister: p,
		opts:      opts,
		log:       logger,
	}
}

// Run processes every collection. Listing and resolve errors abort the run;
// per-asset download failures are counted and the run continues.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	collections, err := r.catalog.ListCollections(ctx)
	if err != nil {
		return summary, err
	}

	for _, collection := range collections {
		if err := r.runCollection(ctx, collection, summary); err != nil {
			return summary, fmt.Errorf("collection %s: %w", collection.ID, err)
		}
		summary.Collections++
	}

	r.log.Debug("run finished",
		"collections", summary.Collections,
		"items", summary.Items,
		"downloaded", summary.Downloaded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)

	return summary, nil
}

func (r *Runner) runCollection(ctx context.Context, collection catalog.Collection, summary *Summary) error {
	items, err := r.catalog.ListItems(ctx, collection.ID, r.opts.Limit)
	if err != nil {
		return err
	}

	r.log.Debug("processing collection", "id", collection.ID, "items", len(items))

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		href, err := catalog.Resolve(item, r.opts.AssetType)
		if err != nil {
			return err
		}

		summary.Items++
		summary.add(r.persister.Persist(ctx, href))
	}

	return nil
}
