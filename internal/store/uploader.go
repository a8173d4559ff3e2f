package store

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fragcat/internal/dataset"
	"fragcat/internal/domain"
)

// DocumentStore is the subset of the store the uploader needs.
type DocumentStore interface {
	UpsertDocument(ctx context.Context, docID string, doc *domain.UploadDocument) error
}

// Uploader walks the local dataset and pushes every record into the
// document store as a flattened document.
type Uploader struct {
	root   string
	store  DocumentStore
	logger *zap.Logger
}

func NewUploader(root string, store DocumentStore, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{root: root, store: store, logger: logger}
}

// Run uploads all readable items and returns the number upserted. A failed
// upsert or unreadable item never stops the run; the run errors at the end
// when any item failed.
func (u *Uploader) Run(ctx context.Context) (int, error) {
	items, err := dataset.Walk(u.root)
	if err != nil {
		return 0, fmt.Errorf("failed to scan dataset: %w", err)
	}

	uploaded := 0
	failed := 0
	for _, item := range items {
		record, err := dataset.ReadRecord(item)
		if err != nil {
			u.logger.Warn("Skipping unreadable item",
				zap.String("meta", item.MetaPath),
				zap.Error(err))
			failed++
			continue
		}

		docID := record.DocumentID()
		if err := u.store.UpsertDocument(ctx, docID, FlattenRecord(record, item)); err != nil {
			u.logger.Error("Upsert failed",
				zap.String("doc_id", docID),
				zap.Error(err))
			failed++
			continue
		}

		uploaded++
		u.logger.Debug("Document upserted",
			zap.String("doc_id", docID),
			zap.Bool("has_image", item.ImagePath != ""))
	}

	u.logger.Info("Upload finished",
		zap.Int("uploaded", uploaded),
		zap.Int("failed", failed))

	if failed > 0 {
		return uploaded, fmt.Errorf("%d of %d documents failed", failed, len(items))
	}
	return uploaded, nil
}

// FlattenRecord converts a canonical record into the flat document shape the
// consuming application queries (array-contains on the per-tier note lists).
func FlattenRecord(record *domain.PerfumeRecord, item dataset.Item) *domain.UploadDocument {
	doc := &domain.UploadDocument{
		Name:           record.Name,
		Brand:          record.Brand,
		Accords:        ensureList(record.Accords),
		NotesTop:       ensureList(record.Notes.Top),
		NotesMid:       ensureList(record.Notes.Mid),
		NotesBase:      ensureList(record.Notes.Base),
		Times:          record.OccasionScores,
		SourceImageURL: record.ImageURL(),
	}
	if doc.Times == nil {
		doc.Times = map[string]float64{}
	}
	if record.Gender != "" {
		gender := record.Gender
		doc.Gender = &gender
	}
	if item.ImagePath != "" {
		// stable storage path, relative to the dataset root
		imagePath := strings.TrimPrefix(item.RelDir, "/") + "/" + item.ImageName
		doc.ImagePath = &imagePath
	}
	return doc
}

func ensureList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
