package extract

import (
	"go.uber.org/zap"

	"fragcat/internal/domain"
)

// OccasionRow is one rating row as it appears in the markup: the label text
// and the style attribute of its rating bar.
type OccasionRow struct {
	Label string
	Style string
}

// occasionLabels maps the label text emitted by the rating rows to the
// canonical bucket key. The markup capitalizes display labels; matching is
// verbatim, no case folding.
var occasionLabels = map[string]string{
	"winter": domain.BucketWinter,
	"Winter": domain.BucketWinter,
	"spring": domain.BucketSpring,
	"Spring": domain.BucketSpring,
	"summer": domain.BucketSummer,
	"Summer": domain.BucketSummer,
	"fall":   domain.BucketFall,
	"Fall":   domain.BucketFall,
	"day":    domain.BucketDay,
	"Day":    domain.BucketDay,
	"night":  domain.BucketNight,
	"Night":  domain.BucketNight,
}

// extractOccasions maps rating rows to normalized scores. A bucket whose
// markup is missing or whose width is unparsable is omitted, never zeroed:
// "not extractable" is not the same as "0%". Unrecognized labels are logged
// and skipped.
func (e *Extractor) extractOccasions(rows []OccasionRow) map[string]float64 {
	scores := make(map[string]float64, len(rows))
	for _, row := range rows {
		bucket, ok := occasionLabels[row.Label]
		if !ok {
			e.logger.Debug("Unrecognized occasion label", zap.String("label", row.Label))
			continue
		}
		value, ok := ParsePercent(row.Style)
		if !ok {
			continue
		}
		scores[bucket] = value
	}
	return scores
}
