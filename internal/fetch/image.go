package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"fragcat/pkg/errors"
)

const (
	imageUserAgent = "Mozilla/5.0"
	imageTimeout   = 20 * time.Second
)

// ImageDownloader fetches thumbnail bytes over plain HTTP. The thumbnail
// host rejects requests whose Referer does not match the source site.
type ImageDownloader struct {
	client *http.Client
	logger *zap.Logger
}

func NewImageDownloader(logger *zap.Logger) *ImageDownloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageDownloader{
		client: &http.Client{Timeout: imageTimeout},
		logger: logger,
	}
}

// Download returns the image bytes and a file extension derived from the
// response Content-Type (".jpg" when unknown).
func (d *ImageDownloader) Download(ctx context.Context, url, referer string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.NewFetchError(url, 0, err)
	}
	req.Header.Set("User-Agent", imageUserAgent)
	req.Header.Set("Referer", referer)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", errors.NewFetchError(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.NewFetchError(url, resp.StatusCode, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.NewFetchError(url, resp.StatusCode, err)
	}

	ext := extensionForContentType(resp.Header.Get("Content-Type"))
	d.logger.Debug("Image downloaded",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.String("ext", ext),
	)

	return data, ext, nil
}

func extensionForContentType(contentType string) string {
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
