package extract

import (
	"testing"

	"go.uber.org/zap"

	"fragcat/pkg/errors"
)

const samplePage = `<html><body>
<div id="toptop"><h1>X for men</h1></div>
<div class="cell small-6 text-center"><p><a href="/designers/y.html"><span>Y</span></a></p></div>
<div class="grid-x">
	<div class="cell accord-box">woody</div>
</div>
<div index="0">
	<div class="show-for-medium"><span>Winter</span></div>
	<div class="voting-small-chart-size"><div><div style="width: 80%;"></div></div></div>
</div>
<div index="1">
	<div class="show-for-medium"><span>Night</span></div>
	<div class="voting-small-chart-size"><div><div style="width: 60%;"></div></div></div>
</div>
<div id="pyramid">
	<h4>Top Notes</h4>
	<div><span>vetiver</span></div>
	<h4>Middle Notes</h4>
	<h4>Base Notes</h4>
</div>
</body></html>`

const sampleURL = "https://www.example.com/perfume/Y/X-12345.html"

func TestExtractEndToEnd(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	record, err := e.Extract(docFromHTML(t, samplePage), sampleURL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if record.Name != "X" {
		t.Errorf("name = %q, want %q", record.Name, "X")
	}
	if record.Brand != "Y" {
		t.Errorf("brand = %q, want %q", record.Brand, "Y")
	}
	if record.BrandSlug != "y" {
		t.Errorf("brand_slug = %q, want %q", record.BrandSlug, "y")
	}
	if record.Gender != "men" {
		t.Errorf("gender = %q, want %q", record.Gender, "men")
	}
	if len(record.Accords) != 1 || record.Accords[0] != "woody" {
		t.Errorf("accords = %v, want [woody]", record.Accords)
	}
	if len(record.Notes.Top) != 1 || record.Notes.Top[0] != "vetiver" {
		t.Errorf("top notes = %v, want [vetiver]", record.Notes.Top)
	}
	if len(record.Notes.Mid) != 0 || len(record.Notes.Base) != 0 {
		t.Errorf("mid/base notes should be empty: %v %v", record.Notes.Mid, record.Notes.Base)
	}
	if record.ImageID != "12345" {
		t.Errorf("image_id = %q, want %q", record.ImageID, "12345")
	}
	if record.OccasionScores["winter"] != 80.0 || record.OccasionScores["night"] != 60.0 {
		t.Errorf("occasion_scores = %v, want winter:80 night:60", record.OccasionScores)
	}
	if len(record.OccasionScores) != 2 {
		t.Errorf("occasion_scores has %d keys, want 2", len(record.OccasionScores))
	}
	if record.SourceURL != sampleURL {
		t.Errorf("source_url = %q, want %q", record.SourceURL, sampleURL)
	}

	if err := Validate(record); err != nil {
		t.Errorf("assembled record failed validation: %v", err)
	}

	if record.ImageURL() != "https://fimgs.net/mdimg/perfume-thumbs/375x500.12345.jpg" {
		t.Errorf("unexpected image URL: %s", record.ImageURL())
	}
}

func TestExtractMissingBrandIsHardFailure(t *testing.T) {
	html := `<html><body>
	<div id="toptop"><h1>X for men</h1></div>
	</body></html>`

	e := NewExtractor(zap.NewNop())
	_, err := e.Extract(docFromHTML(t, html), sampleURL)
	if err == nil {
		t.Fatal("expected an error for missing brand container")
	}

	extractionErr, ok := err.(*errors.ExtractionError)
	if !ok {
		t.Fatalf("expected *errors.ExtractionError, got %T", err)
	}
	if extractionErr.Field != "brand" {
		t.Errorf("failing field = %q, want %q", extractionErr.Field, "brand")
	}
	if extractionErr.URL != sampleURL {
		t.Errorf("error URL = %q, want %q", extractionErr.URL, sampleURL)
	}
}

func TestExtractMissingTitleIsHardFailure(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	_, err := e.Extract(docFromHTML(t, "<html><body></body></html>"), sampleURL)

	extractionErr, ok := err.(*errors.ExtractionError)
	if !ok {
		t.Fatalf("expected *errors.ExtractionError, got %T", err)
	}
	if extractionErr.Field != "title" {
		t.Errorf("failing field = %q, want %q", extractionErr.Field, "title")
	}
}

func TestExtractNonNumericImageIDIsHardFailure(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	_, err := e.Extract(docFromHTML(t, samplePage), "https://www.example.com/perfume/Y/X-notanid.html")

	extractionErr, ok := err.(*errors.ExtractionError)
	if !ok {
		t.Fatalf("expected *errors.ExtractionError, got %T", err)
	}
	if extractionErr.Field != "image_id" {
		t.Errorf("failing field = %q, want %q", extractionErr.Field, "image_id")
	}
}

func TestSplitTitle(t *testing.T) {
	e := NewExtractor(zap.NewNop())

	cases := []struct {
		title      string
		wantName   string
		wantGender string
	}{
		{"Delina for women", "Delina", "women"},
		{"Santal 33", "Santal 33", ""},
		{"Khamrah for women and men", "Khamrah", "unisex"},
		{"Oddity for men and women", "Oddity", "unisex"},
		{"Strange for nobody", "Strange", ""},
	}

	for _, c := range cases {
		name, gender := e.splitTitle(c.title)
		if name != c.wantName || gender != c.wantGender {
			t.Errorf("splitTitle(%q) = (%q, %q), want (%q, %q)",
				c.title, name, gender, c.wantName, c.wantGender)
		}
	}
}

func TestImageIDFromURL(t *testing.T) {
	cases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.example.com/perfume/Lattafa-Perfumes/Khamrah-75805.html", "75805", false},
		{"https://www.example.com/perfume/Y/X-12345.html", "12345", false},
		{"https://www.example.com/perfume/Y/NoId.html", "", true},
		{"https://www.example.com/perfume/Y/Trailing-.html", "", true},
	}

	for _, c := range cases {
		got, err := imageIDFromURL(c.url)
		if c.wantErr {
			if err == nil {
				t.Errorf("imageIDFromURL(%q) expected error, got %q", c.url, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("imageIDFromURL(%q) unexpected error: %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("imageIDFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
