package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fragcat/internal/domain"
)

const (
	perfumesDir   = "perfumes"
	metaFileName  = "meta.json"
	imageBaseName = "image"
)

// Writer lays out one directory per item under
// <root>/perfumes/<brand_slug>/<item>/ holding meta.json and the image.
// The catalog builder and the uploader both scan this layout.
type Writer struct {
	root   string
	logger *zap.Logger
}

func NewWriter(root string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{root: root, logger: logger}
}

// WriteRecord persists a validated record as meta.json and returns the item
// directory. Records are written whole; a re-scrape overwrites the file.
func (w *Writer) WriteRecord(record *domain.PerfumeRecord) (string, error) {
	dir := filepath.Join(w.root, perfumesDir, record.BrandSlug, record.ItemDir())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create item directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metaFileName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", metaFileName, err)
	}

	w.logger.Debug("Record written",
		zap.String("brand_slug", record.BrandSlug),
		zap.String("item", record.ItemDir()),
	)

	return dir, nil
}

// WriteImage stores image bytes next to meta.json as image<ext> and returns
// the file path.
func (w *Writer) WriteImage(itemDir string, data []byte, ext string) (string, error) {
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(itemDir, imageBaseName+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return path, nil
}
