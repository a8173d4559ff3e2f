package domain

// CatalogItem is the lightweight projection of a PerfumeRecord stored in the
// catalog index. URLs are derived against the public base URL at build time.
type CatalogItem struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Brand     string             `json:"brand"`
	BrandSlug string             `json:"brand_slug"`
	Gender    string             `json:"gender,omitempty"`
	Accords   []string           `json:"accords"`
	Notes     NoteTiers          `json:"notes"`
	Times     map[string]float64 `json:"times"`
	ImageURL  string             `json:"image_url"`
	MetaURL   string             `json:"meta_url"`
	UpdatedAt string             `json:"updated_at,omitempty"`
}

// CatalogIndex is the shape of catalog/index.json. Version is fixed at 1 for
// front-end compatibility.
type CatalogIndex struct {
	Version     int           `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	Count       int           `json:"count"`
	Items       []CatalogItem `json:"items"`
}

// TimeThresholds are the score cutoffs exported in the times facet.
var TimeThresholds = []int{50, 70, 80, 90}

// Facets are the five inverted indexes written under facets/. Each value maps
// to an ordered list of item ids; times is keyed by bucket, then by threshold
// label (">=50" and up), then to the id list.
type Facets struct {
	Notes   map[string][]string            `json:"notes"`
	Accords map[string][]string            `json:"accords"`
	Brands  map[string][]string            `json:"brands"`
	Gender  map[string][]string            `json:"gender"`
	Times   map[string]map[string][]string `json:"times"`
}

// UploadDocument is the flattened record shape pushed to the document store.
// Key names are fixed by the consuming application; updatedAt is assigned
// server side and therefore not part of this struct.
type UploadDocument struct {
	Name           string             `json:"name"`
	Brand          string             `json:"brand"`
	Gender         *string            `json:"gender"`
	Accords        []string           `json:"accords"`
	NotesTop       []string           `json:"notes_top"`
	NotesMid       []string           `json:"notes_mid"`
	NotesBase      []string           `json:"notes_base"`
	Times          map[string]float64 `json:"times"`
	ImagePath      *string            `json:"imagePath"`
	SourceImageURL string             `json:"sourceImageUrl"`
}
