package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"fragcat/internal/dataset"
	"fragcat/internal/domain"
	"fragcat/internal/util"
)

const maxIndexAccords = 10

// Builder aggregates per-item records into the catalog index and the five
// inverted facet files consumed by the front-end.
type Builder struct {
	root          string
	publicBaseURL string
	logger        *zap.Logger
}

func NewBuilder(root, publicBaseURL string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Build scans the dataset and produces the index and facets. Unreadable
// items are skipped with a warning; they never abort the build.
func (b *Builder) Build(generatedAt time.Time) (*domain.CatalogIndex, *domain.Facets, error) {
	items, err := dataset.Walk(b.root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan dataset: %w", err)
	}

	catalogItems := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		record, err := dataset.ReadRecord(item)
		if err != nil {
			b.logger.Warn("Skipping unreadable item",
				zap.String("meta", item.MetaPath),
				zap.Error(err))
			continue
		}
		catalogItems = append(catalogItems, b.projectItem(item, record))
	}

	index := &domain.CatalogIndex{
		Version:     1,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Count:       len(catalogItems),
		Items:       catalogItems,
	}

	b.logger.Info("Catalog built", zap.Int("items", len(catalogItems)))

	return index, buildFacets(catalogItems), nil
}

func (b *Builder) projectItem(item dataset.Item, record *domain.PerfumeRecord) domain.CatalogItem {
	accords := record.Accords
	if len(accords) > maxIndexAccords {
		accords = accords[:maxIndexAccords]
	}

	imageURL := record.ImageURL()
	if item.ImageName != "" {
		imageURL = b.publicBaseURL + item.RelDir + "/" + item.ImageName
	}

	catalogItem := domain.CatalogItem{
		ID:        record.DocumentID(),
		Name:      record.Name,
		Brand:     record.Brand,
		BrandSlug: record.BrandSlug,
		Gender:    record.Gender,
		Accords:   accords,
		Notes:     record.Notes,
		Times:     record.OccasionScores,
		ImageURL:  imageURL,
		MetaURL:   b.publicBaseURL + item.RelDir + "/meta.json",
	}

	if info, err := os.Stat(item.MetaPath); err == nil {
		catalogItem.UpdatedAt = info.ModTime().UTC().Format(time.RFC3339)
	}

	return catalogItem
}

// buildFacets inverts the catalog items into value -> ordered id lists. The
// notes facet is tier-unaware; accord keys are lowercased; times keeps only
// the threshold buckets actually persisted downstream.
func buildFacets(items []domain.CatalogItem) *domain.Facets {
	facets := &domain.Facets{
		Notes:   map[string][]string{},
		Accords: map[string][]string{},
		Brands:  map[string][]string{},
		Gender:  map[string][]string{},
		Times:   map[string]map[string][]string{},
	}
	for _, bucket := range domain.OccasionBuckets {
		facets.Times[bucket] = map[string][]string{}
	}

	for _, item := range items {
		id := item.ID

		for _, accord := range item.Accords {
			if key := util.Normalize(accord); key != "" {
				facets.Accords[key] = append(facets.Accords[key], id)
			}
		}

		for _, tier := range [][]string{item.Notes.Top, item.Notes.Mid, item.Notes.Base} {
			for _, note := range tier {
				if key := strings.TrimSpace(note); key != "" {
					facets.Notes[key] = append(facets.Notes[key], id)
				}
			}
		}

		if brand := strings.TrimSpace(item.Brand); brand != "" {
			facets.Brands[brand] = append(facets.Brands[brand], id)
		}
		if gender := strings.TrimSpace(item.Gender); gender != "" {
			facets.Gender[gender] = append(facets.Gender[gender], id)
		}

		for _, bucket := range domain.OccasionBuckets {
			score, ok := item.Times[bucket]
			if !ok {
				continue
			}
			for _, threshold := range domain.TimeThresholds {
				if score >= float64(threshold) {
					label := fmt.Sprintf(">=%d", threshold)
					facets.Times[bucket][label] = append(facets.Times[bucket][label], id)
				}
			}
		}
	}

	return facets
}

// Write persists the index (pretty, for humans diffing) and the facet files
// (compact, for transfer size).
func (b *Builder) Write(index *domain.CatalogIndex, facets *domain.Facets) error {
	if err := writeJSON(filepath.Join(b.root, "catalog", "index.json"), index, true); err != nil {
		return err
	}

	facetFiles := map[string]any{
		"notes.json":   facets.Notes,
		"accords.json": facets.Accords,
		"brands.json":  facets.Brands,
		"gender.json":  facets.Gender,
		"times.json":   facets.Times,
	}
	for name, value := range facetFiles {
		if err := writeJSON(filepath.Join(b.root, "facets", name), value, false); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(path string, value any, pretty bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
