// Package endpoint builds catalog URLs from the server base address and
// path templates with {name} placeholders.
package endpoint

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// CollectionsPath lists all collections.
	CollectionsPath = "/collections"
	// ItemsPath lists the items of one collection.
	ItemsPath = "/collections/{collection_id}/items?limit={limit}"

	ParamCollectionID = "collection_id"
	ParamLimit        = "limit"
)

// paramPattern matches {name} placeholders
var paramPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Join concatenates base and path with exactly one slash between them.
func Join(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Format replaces {name} placeholders with values from params.
// Values are inserted literally; unknown placeholders are kept as they are.
func Format(template string, params map[string]string) string {
	return paramPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[1 : len(match)-1])
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}

// Set holds the endpoint templates derived from one base address.
type Set struct {
	Collections string
	Items       string
}

// NewSet derives the collections and items templates from base.
func NewSet(base string) Set {
	return Set{
		Collections: Join(base, CollectionsPath),
		Items:       Join(base, ItemsPath),
	}
}

// ItemsURL returns the items endpoint for one collection.
func (s Set) ItemsURL(collectionID string, limit int) string {
	return Format(s.Items, map[string]string{
		ParamCollectionID: collectionID,
		ParamLimit:        strconv.Itoa(limit),
	})
}
