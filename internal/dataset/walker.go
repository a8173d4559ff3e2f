package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fragcat/internal/domain"
)

// Item is one scanned dataset entry. ImagePath is empty when the item has no
// stored image.
type Item struct {
	BrandSlug string
	ItemDir   string
	RelDir    string // "/perfumes/<brand_slug>/<item>"
	MetaPath  string
	ImagePath string
	ImageName string
}

// Walk scans <root>/perfumes/**/meta.json and returns the items sorted by
// brand directory then item directory. Downstream catalog ordering depends on
// this determinism.
func Walk(root string) ([]Item, error) {
	perfumesRoot := filepath.Join(root, perfumesDir)
	brandDirs, err := os.ReadDir(perfumesRoot)
	if os.IsNotExist(err) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset root: %w", err)
	}

	items := []Item{}
	for _, brandDir := range sortedDirs(brandDirs) {
		brandPath := filepath.Join(perfumesRoot, brandDir)
		entryDirs, err := os.ReadDir(brandPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read brand directory %s: %w", brandDir, err)
		}

		for _, entryDir := range sortedDirs(entryDirs) {
			entryPath := filepath.Join(brandPath, entryDir)
			metaPath := filepath.Join(entryPath, metaFileName)
			if _, err := os.Stat(metaPath); err != nil {
				continue
			}

			item := Item{
				BrandSlug: brandDir,
				ItemDir:   entryDir,
				RelDir:    "/" + perfumesDir + "/" + brandDir + "/" + entryDir,
				MetaPath:  metaPath,
			}
			if name := findImage(entryPath); name != "" {
				item.ImageName = name
				item.ImagePath = filepath.Join(entryPath, name)
			}
			items = append(items, item)
		}
	}

	return items, nil
}

// ReadRecord loads and decodes an item's meta.json.
func ReadRecord(item Item) (*domain.PerfumeRecord, error) {
	data, err := os.ReadFile(item.MetaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", item.MetaPath, err)
	}
	var record domain.PerfumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", item.MetaPath, err)
	}
	return &record, nil
}

func sortedDirs(entries []os.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

func findImage(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), imageBaseName+".") {
			return entry.Name()
		}
	}
	return ""
}
