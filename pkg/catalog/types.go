package catalog

// Collection is a downloadable group of items.
type Collection struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Asset is one named asset reference of an item. Href is nil when the
// response has no href key.
type Asset struct {
	Href  *string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Item is one catalog record (a GeoJSON feature) with its assets.
type Item struct {
	ID         string           `json:"id"`
	Collection string           `json:"collection,omitempty"`
	Assets     map[string]Asset `json:"assets"`
}

type collectionsResponse struct {
	Collections *[]Collection `json:"collections"`
}

type itemsResponse struct {
	Features *[]Item `json:"features"`
}
