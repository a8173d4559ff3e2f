package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"fragcat/pkg/errors"
)

func TestExtensionForContentType(t *testing.T) {
	cases := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/webp", ".webp"},
		{"image/png; charset=binary", ".png"},
		{"", ".jpg"},
		{"text/html", ".jpg"},
	}
	for _, tc := range cases {
		if got := extensionForContentType(tc.contentType); got != tc.want {
			t.Errorf("extensionForContentType(%q) = %q, want %q", tc.contentType, got, tc.want)
		}
	}
}

func TestDownloadSetsRefererAndUserAgent(t *testing.T) {
	var gotReferer, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 0x50})
	}))
	defer server.Close()

	downloader := NewImageDownloader(zap.NewNop())
	data, ext, err := downloader.Download(context.Background(), server.URL, "https://www.example.com/page")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if gotReferer != "https://www.example.com/page" {
		t.Errorf("referer = %q", gotReferer)
	}
	if gotUA == "" {
		t.Error("user agent not set")
	}
	if ext != ".png" {
		t.Errorf("ext = %q, want .png", ext)
	}
	if len(data) != 2 {
		t.Errorf("got %d bytes, want 2", len(data))
	}
}

func TestDownloadNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	downloader := NewImageDownloader(zap.NewNop())
	_, _, err := downloader.Download(context.Background(), server.URL, "")
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}
	fetchErr, ok := err.(*errors.FetchError)
	if !ok {
		t.Fatalf("expected FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", fetchErr.StatusCode)
	}
}
