package store

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"fragcat/internal/dataset"
	"fragcat/internal/domain"
)

type fakeDocumentStore struct {
	docs map[string]*domain.UploadDocument
	fail map[string]error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		docs: map[string]*domain.UploadDocument{},
		fail: map[string]error{},
	}
}

func (f *fakeDocumentStore) UpsertDocument(_ context.Context, docID string, doc *domain.UploadDocument) error {
	if err := f.fail[docID]; err != nil {
		return err
	}
	f.docs[docID] = doc
	return nil
}

func seedDataset(t *testing.T, root string) {
	t.Helper()
	writer := dataset.NewWriter(root, zap.NewNop())

	record := &domain.PerfumeRecord{
		Name:      "Khamrah",
		Brand:     "Lattafa Perfumes",
		BrandSlug: "lattafa-perfumes",
		Gender:    "unisex",
		Accords:   []string{"vanilla"},
		Notes: domain.NoteTiers{
			Top:  []string{"cinnamon"},
			Mid:  []string{},
			Base: []string{"vanilla"},
		},
		OccasionScores: map[string]float64{"winter": 92},
		ImageID:        "75805",
		SourceURL:      "https://www.example.com/perfume/Lattafa-Perfumes/Khamrah-75805.html",
	}
	dir, err := writer.WriteRecord(record)
	if err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
	if _, err := writer.WriteImage(dir, []byte{0xff, 0xd8}, ".jpg"); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}

	noImage := &domain.PerfumeRecord{
		Name:      "Delina",
		Brand:     "Parfums de Marly",
		BrandSlug: "parfums-de-marly",
		Accords:   []string{},
		Notes:     domain.NoteTiers{Top: []string{}, Mid: []string{}, Base: []string{}},
		ImageID:   "42611",
		SourceURL: "https://www.example.com/perfume/Parfums-de-Marly/Delina-42611.html",
	}
	if _, err := writer.WriteRecord(noImage); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}
}

func TestUploaderRun(t *testing.T) {
	root := t.TempDir()
	seedDataset(t, root)

	fake := newFakeDocumentStore()
	uploader := NewUploader(root, fake, zap.NewNop())

	uploaded, err := uploader.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if uploaded != 2 {
		t.Fatalf("uploaded = %d, want 2", uploaded)
	}

	doc := fake.docs["75805"]
	if doc == nil {
		t.Fatal("document 75805 missing")
	}
	if doc.Gender == nil || *doc.Gender != "unisex" {
		t.Errorf("gender = %v, want unisex", doc.Gender)
	}
	if doc.ImagePath == nil || *doc.ImagePath != "perfumes/lattafa-perfumes/khamrah-75805/image.jpg" {
		t.Errorf("imagePath = %v", doc.ImagePath)
	}
	if doc.SourceImageURL != "https://fimgs.net/mdimg/perfume-thumbs/375x500.75805.jpg" {
		t.Errorf("sourceImageUrl = %q", doc.SourceImageURL)
	}
	if len(doc.NotesBase) != 1 || doc.NotesBase[0] != "vanilla" {
		t.Errorf("notes_base = %v", doc.NotesBase)
	}

	noImage := fake.docs["42611"]
	if noImage == nil {
		t.Fatal("document 42611 missing")
	}
	if noImage.Gender != nil {
		t.Errorf("gender should be null, got %v", *noImage.Gender)
	}
	if noImage.ImagePath != nil {
		t.Errorf("imagePath should be null, got %v", *noImage.ImagePath)
	}
	if noImage.Times == nil || noImage.Accords == nil {
		t.Error("times and accords must serialize as empty, not null")
	}
}

func TestUploaderContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	seedDataset(t, root)

	fake := newFakeDocumentStore()
	fake.fail["75805"] = context.DeadlineExceeded

	uploader := NewUploader(root, fake, zap.NewNop())
	uploaded, err := uploader.Run(context.Background())

	if uploaded != 1 {
		t.Errorf("uploaded = %d, want 1", uploaded)
	}
	if err == nil {
		t.Error("expected an error summarizing the failed documents")
	}
	if fake.docs["42611"] == nil {
		t.Error("run should continue past the failed document")
	}
}

func TestFlattenedDocumentKeys(t *testing.T) {
	record := &domain.PerfumeRecord{
		Name:      "Khamrah",
		Brand:     "Lattafa Perfumes",
		BrandSlug: "lattafa-perfumes",
		Notes:     domain.NoteTiers{Top: []string{}, Mid: []string{}, Base: []string{}},
		ImageID:   "75805",
	}

	data, err := json.Marshal(FlattenRecord(record, dataset.Item{}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// fixed by the consuming application
	for _, key := range []string{
		"name", "brand", "gender", "accords",
		"notes_top", "notes_mid", "notes_base",
		"times", "imagePath", "sourceImageUrl",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("document is missing key %q", key)
		}
	}
	if len(decoded) != 10 {
		t.Errorf("document has %d keys, want 10", len(decoded))
	}
}
