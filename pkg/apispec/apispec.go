// Package apispec loads the OpenAPI document that describes the catalog API
// and extracts the server base address from it.
package apispec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrNoServer is returned when the document has no usable servers[0].url.
var ErrNoServer = errors.New("api description has no servers[0].url")

//go:embed schema.json
var schemaContent []byte

// Server is one entry of the document's servers list.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Info is the document's info block.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Document is the subset of an OpenAPI document the downloader needs.
type Document struct {
	OpenAPI string                     `json:"openapi"`
	Info    Info                       `json:"info"`
	Servers []Server                   `json:"servers"`
	Paths   map[string]json.RawMessage `json:"paths,omitempty"`
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read api description: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse validates data against the embedded schema and decodes it.
func Parse(data []byte) (*Document, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaContent),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api description: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrNoServer, strings.Join(msgs, "; "))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode api description: %w", err)
	}

	return &doc, nil
}

// BaseURL returns the first server's url.
func (d *Document) BaseURL() (string, error) {
	if len(d.Servers) == 0 || d.Servers[0].URL == "" {
		return "", ErrNoServer
	}
	return d.Servers[0].URL, nil
}

// HasPath reports whether the document declares the given path template.
func (d *Document) HasPath(path string) bool {
	_, ok := d.Paths[path]
	return ok
}
