package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fragcat/internal/domain"
	"fragcat/internal/util"
	"fragcat/pkg/errors"
)

// Extractor assembles one PerfumeRecord per detail page. It is stateless
// across calls: each Extract reads the given document and never retains it,
// so callers may run extractions concurrently.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// titleSeparator is the site's title convention ("Delina for women"). The
// split is known to misclassify names that legitimately contain " for ";
// preserved as-is for compatibility with existing datasets.
const titleSeparator = " for "

var genderVocab = map[string]string{
	"men":           "men",
	"women":         "women",
	"unisex":        "unisex",
	"women and men": "unisex",
	"men and women": "unisex",
}

var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// Extract derives the canonical record from a parsed detail page plus its
// originating URL (used for the numeric image id and provenance). A missing
// required container or an unusable image id is a hard failure: the page is
// skipped entirely, never partially emitted.
func (e *Extractor) Extract(doc *goquery.Document, pageURL string) (*domain.PerfumeRecord, error) {
	title := findTitle(doc)
	if title.Length() == 0 {
		return nil, errors.NewExtractionError("title", pageURL, "title container not found")
	}
	name, gender := e.splitTitle(title.Text())
	if name == "" {
		return nil, errors.NewExtractionError("name", pageURL, "title text is empty")
	}

	brandSel := findBrand(doc)
	if brandSel.Length() == 0 {
		return nil, errors.NewExtractionError("brand", pageURL, "brand container not found")
	}
	brand := strings.TrimSpace(brandSel.Text())
	if brand == "" {
		return nil, errors.NewExtractionError("brand", pageURL, "brand text is empty")
	}

	imageID, err := imageIDFromURL(pageURL)
	if err != nil {
		return nil, errors.NewExtractionError("image_id", pageURL, err.Error())
	}

	record := &domain.PerfumeRecord{
		Name:           name,
		Brand:          brand,
		BrandSlug:      util.Slugify(brand),
		Gender:         gender,
		Accords:        extractAccords(doc),
		Notes:          SegmentPyramid(pyramidNodes(doc)),
		OccasionScores: e.extractOccasions(occasionRows(doc)),
		ImageID:        imageID,
		SourceURL:      pageURL,
	}

	return record, nil
}

// splitTitle separates the name from the gender suffix on the first " for ".
// Without a separator the whole title is the name and gender stays absent.
// A suffix outside the controlled vocabulary also leaves gender absent.
func (e *Extractor) splitTitle(raw string) (name, gender string) {
	raw = strings.TrimSpace(raw)
	name, rest, found := strings.Cut(raw, titleSeparator)
	name = strings.TrimSpace(name)
	if !found {
		return name, ""
	}

	gender, ok := genderVocab[util.Normalize(rest)]
	if !ok {
		e.logger.Debug("Unrecognized gender suffix", zap.String("suffix", rest))
		return name, ""
	}
	return name, gender
}

func extractAccords(doc *goquery.Document) []string {
	accords := []string{}
	findAccordBoxes(doc).Each(func(_ int, sel *goquery.Selection) {
		// site-declared order, no de-duplication
		if text := strings.TrimSpace(sel.Text()); text != "" {
			accords = append(accords, text)
		}
	})
	return accords
}

// imageIDFromURL extracts the trailing numeric segment of the URL's final
// path component: ".../Lattafa-Perfumes/Khamrah-75805.html" yields "75805".
func imageIDFromURL(pageURL string) (string, error) {
	segment := pageURL
	if idx := strings.LastIndex(segment, "/"); idx != -1 {
		segment = segment[idx+1:]
	}
	segment = strings.TrimSuffix(segment, ".html")
	if idx := strings.LastIndex(segment, "-"); idx != -1 {
		segment = segment[idx+1:]
	}
	if segment == "" || !numericPattern.MatchString(segment) {
		return "", fmt.Errorf("no numeric id in final path segment of %q", pageURL)
	}
	return segment, nil
}
