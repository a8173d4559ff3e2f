package scrape

import (
	"context"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"fragcat/internal/dataset"
	"fragcat/internal/extract"
	"fragcat/pkg/errors"
)

// PageFetcher renders one detail page and returns its HTML.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// ImageFetcher downloads the item thumbnail.
type ImageFetcher interface {
	Download(ctx context.Context, url, referer string) ([]byte, string, error)
}

// SeenRegistry remembers pages scraped by earlier runs.
type SeenRegistry interface {
	IsSeen(ctx context.Context, url string) (bool, error)
	MarkSeen(ctx context.Context, url string) error
}

// PageError pairs a failed page with its error for the end-of-run report.
type PageError struct {
	URL string
	Err error
}

type Result struct {
	Scraped  int
	Skipped  int
	Failures []PageError
}

// Runner drives the per-page pipeline (fetch, extract, validate, persist)
// over an explicit job list. A single page's failure never aborts the run.
type Runner struct {
	fetcher     PageFetcher
	images      ImageFetcher
	writer      *dataset.Writer
	extractor   *extract.Extractor
	seen        SeenRegistry
	force       bool
	concurrency int
	logger      *zap.Logger
}

type RunnerOptions struct {
	Concurrency int
	Force       bool
	Seen        SeenRegistry
	Images      ImageFetcher
}

func NewRunner(fetcher PageFetcher, writer *dataset.Writer, logger *zap.Logger, opts RunnerOptions) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		fetcher:     fetcher,
		images:      opts.Images,
		writer:      writer,
		extractor:   extract.NewExtractor(logger),
		seen:        opts.Seen,
		force:       opts.Force,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run scrapes the given pages with bounded concurrency and reports the
// accumulated (url, error) pairs instead of aborting on the first failure.
func (r *Runner) Run(ctx context.Context, urls []string) Result {
	var mu sync.Mutex
	result := Result{Failures: []PageError{}}

	workers := pool.New().WithMaxGoroutines(r.concurrency)
	for _, url := range urls {
		url := url
		workers.Go(func() {
			skipped, err := r.scrapeOne(ctx, url)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failures = append(result.Failures, PageError{URL: url, Err: err})
			case skipped:
				result.Skipped++
			default:
				result.Scraped++
			}
		})
	}
	workers.Wait()

	r.logger.Info("Scrape run finished",
		zap.Int("scraped", result.Scraped),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failures)),
	)

	return result
}

func (r *Runner) scrapeOne(ctx context.Context, url string) (skipped bool, err error) {
	if r.seen != nil && !r.force {
		seen, err := r.seen.IsSeen(ctx, url)
		if err != nil {
			r.logger.Warn("Seen lookup failed, scraping anyway",
				zap.String("url", url), zap.Error(err))
		} else if seen {
			r.logger.Debug("Skipping already scraped page", zap.String("url", url))
			return true, nil
		}
	}

	html, err := r.fetcher.FetchHTML(ctx, url)
	if err != nil {
		return false, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, errors.NewFetchError(url, 0, err)
	}

	record, err := r.extractor.Extract(doc, url)
	if err != nil {
		return false, err
	}
	if err := extract.Validate(record); err != nil {
		// assembler defect rather than a bad page; escalate
		r.logger.Error("Assembled record failed validation",
			zap.String("url", url), zap.Error(err))
		return false, err
	}

	itemDir, err := r.writer.WriteRecord(record)
	if err != nil {
		return false, err
	}

	if r.images != nil {
		data, ext, err := r.images.Download(ctx, record.ImageURL(), url)
		if err != nil {
			// the record stands on its own; the catalog falls back to the
			// source thumbnail URL when no local image exists
			r.logger.Warn("Image download failed",
				zap.String("url", record.ImageURL()),
				zap.Error(err))
		} else if _, err := r.writer.WriteImage(itemDir, data, ext); err != nil {
			r.logger.Warn("Image write failed",
				zap.String("dir", itemDir),
				zap.Error(err))
		}
	}

	if r.seen != nil {
		if err := r.seen.MarkSeen(ctx, url); err != nil {
			r.logger.Warn("Failed to register page as seen",
				zap.String("url", url), zap.Error(err))
		}
	}

	r.logger.Info("Page scraped",
		zap.String("url", url),
		zap.String("brand_slug", record.BrandSlug),
		zap.String("item", record.ItemDir()),
	)

	return false, nil
}
