package domain

import (
	"fmt"

	"fragcat/internal/util"
)

// Occasion/season buckets. These are the only keys allowed in
// PerfumeRecord.OccasionScores; a bucket that could not be extracted is
// absent, never zeroed.
const (
	BucketWinter = "winter"
	BucketSpring = "spring"
	BucketSummer = "summer"
	BucketFall   = "fall"
	BucketDay    = "day"
	BucketNight  = "night"
)

// OccasionBuckets lists the six fixed buckets in their canonical order.
var OccasionBuckets = []string{
	BucketWinter, BucketSpring, BucketSummer, BucketFall, BucketDay, BucketNight,
}

// NoteTiers is the three-tier note pyramid. Tiers may be empty but are
// always present (never nil once a record has been assembled).
type NoteTiers struct {
	Top  []string `json:"top"`
	Mid  []string `json:"mid"`
	Base []string `json:"base"`
}

// PerfumeRecord is the canonical per-page output. It is assembled once,
// validated, and never mutated afterwards; a re-scrape produces a new record
// that storage upserts by DocumentID.
type PerfumeRecord struct {
	Name           string             `json:"name"`
	Brand          string             `json:"brand"`
	BrandSlug      string             `json:"brand_slug"`
	Gender         string             `json:"gender,omitempty"`
	Accords        []string           `json:"accords"`
	Notes          NoteTiers          `json:"notes"`
	OccasionScores map[string]float64 `json:"occasion_scores"`
	ImageID        string             `json:"image_id"`
	SourceURL      string             `json:"source_url"`
}

const thumbnailURLFormat = "https://fimgs.net/mdimg/perfume-thumbs/375x500.%s.jpg"

// ImageURL derives the canonical thumbnail URL from the numeric image id.
// Fetching it requires a Referer header matching the source site.
func (r *PerfumeRecord) ImageURL() string {
	return fmt.Sprintf(thumbnailURLFormat, r.ImageID)
}

// ItemDir is the per-item directory name under the brand slug directory.
// (BrandSlug, ItemDir) together address one dataset item.
func (r *PerfumeRecord) ItemDir() string {
	slug := util.Slugify(r.Name)
	if slug == "" {
		return r.ImageID
	}
	return slug + "-" + r.ImageID
}

// DocumentID is the stable upsert key for the document store: the numeric
// image id when present, otherwise a slug derived from brand and name.
func (r *PerfumeRecord) DocumentID() string {
	if r.ImageID != "" {
		return r.ImageID
	}
	return util.Slugify(r.Brand + "::" + r.Name)
}
