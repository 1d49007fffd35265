// Package catalog lists the collections and items of the asset catalog and
// resolves the asset reference of an item.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackcoderx/lmfetch/pkg/auth"
	"github.com/blackcoderx/lmfetch/pkg/endpoint"
	"github.com/blackcoderx/lmfetch/pkg/httpclient"
	"github.com/charmbracelet/log"
)

var (
	// ErrMalformedResponse is returned when a listing body is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed catalog response")
	// ErrAssetNotFound is returned when an item lacks the requested asset type.
	ErrAssetNotFound = errors.New("asset not found")
)

// StatusError is returned when a listing request answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d", e.URL, e.StatusCode)
}

// Client reads collections and items from the catalog API.
type Client struct {
	getter    httpclient.Getter
	creds     auth.Credentials
	endpoints endpoint.Set
	log       *log.Logger
}

// NewClient creates a catalog client for the given endpoints.
func NewClient(getter httpclient.Getter, creds auth.Credentials, endpoints endpoint.Set, logger *log.Logger) *Client {
	return &Client{
		getter:    getter,
		creds:     creds,
		endpoints: endpoints,
		log:       logger.WithPrefix("catalog"),
	}
}

// ListCollections returns every collection of the catalog.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var body collectionsResponse
	if err := c.getJSON(ctx, c.endpoints.Collections, &body); err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	if body.Collections == nil {
		return nil, fmt.Errorf("failed to list collections: %w: missing \"collections\"", ErrMalformedResponse)
	}

	c.log.Debug("listed collections", "count", len(*body.Collections))
	return *body.Collections, nil
}

// ListItems returns up to limit items of one collection in a single request.
func (c *Client) ListItems(ctx context.Context, collectionID string, limit int) ([]Item, error) {
	var body itemsResponse
	if err := c.getJSON(ctx, c.endpoints.ItemsURL(collectionID, limit), &body); err != nil {
		return nil, fmt.Errorf("failed to list items of %s: %w", collectionID, err)
	}
	if body.Features == nil {
		return nil, fmt.Errorf("failed to list items of %s: %w: missing \"features\"", collectionID, ErrMalformedResponse)
	}

	c.log.Debug("listed items", "collection", collectionID, "count", len(*body.Features))
	return *body.Features, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.getter.Get(ctx, url, c.creds)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// Resolve returns the href of the item's asset of the given type. A missing
// asset or href key is an error; an empty href is returned as is and left
// to the downloader.
func Resolve(item Item, assetType string) (string, error) {
	asset, ok := item.Assets[assetType]
	if !ok || asset.Href == nil {
		return "", fmt.Errorf("%w: item %q has no %q asset", ErrAssetNotFound, item.ID, assetType)
	}
	return *asset.Href, nil
}
