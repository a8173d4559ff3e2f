package extract

import (
	"fmt"

	"fragcat/internal/domain"
	"fragcat/pkg/errors"
)

// Validate checks an assembled record against the canonical schema before it
// may be emitted. It reports the first failing field and never repairs the
// record. A failure here means the assembler produced an inconsistent record,
// which callers treat as more severe than a bad input page.
func Validate(record *domain.PerfumeRecord) error {
	if record == nil {
		return errors.NewValidationError("record", "is nil")
	}
	if record.Name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if record.Brand == "" {
		return errors.NewValidationError("brand", "must not be empty")
	}
	if record.BrandSlug == "" {
		return errors.NewValidationError("brand_slug", "must not be empty")
	}
	if record.Notes.Top == nil {
		return errors.NewValidationError("notes.top", "tier missing")
	}
	if record.Notes.Mid == nil {
		return errors.NewValidationError("notes.mid", "tier missing")
	}
	if record.Notes.Base == nil {
		return errors.NewValidationError("notes.base", "tier missing")
	}

	for _, bucket := range domain.OccasionBuckets {
		score, ok := record.OccasionScores[bucket]
		if !ok {
			continue
		}
		if score < 0 || score > 100 {
			return errors.NewValidationError(
				"occasion_scores."+bucket,
				fmt.Sprintf("score %v outside [0,100]", score),
			)
		}
	}
	for bucket := range record.OccasionScores {
		if !knownBucket(bucket) {
			return errors.NewValidationError("occasion_scores", fmt.Sprintf("unknown bucket %q", bucket))
		}
	}

	if record.ImageID == "" {
		return errors.NewValidationError("image_id", "must not be empty")
	}
	if !numericPattern.MatchString(record.ImageID) {
		return errors.NewValidationError("image_id", "must be purely numeric")
	}

	return nil
}

func knownBucket(bucket string) bool {
	for _, b := range domain.OccasionBuckets {
		if b == bucket {
			return true
		}
	}
	return false
}
