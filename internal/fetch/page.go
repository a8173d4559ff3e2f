package fetch

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"fragcat/pkg/errors"
)

const (
	consentClickTimeout = 2 * time.Second
	scrollSteps         = 6
	scrollPause         = 600 * time.Millisecond
)

// consentButtonLabels are tried in order against the cookie banner.
var consentButtonLabels = []string{"Accept", "Agree", "Aceptar", "Allow all"}

// BrowserFetcher renders a detail page in the browser and returns its final
// HTML. One page per call; pages are always closed before returning.
type BrowserFetcher struct {
	browser *Browser
	timeout time.Duration
	logger  *zap.Logger
}

func NewBrowserFetcher(browser *Browser, timeout time.Duration, logger *zap.Logger) *BrowserFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserFetcher{
		browser: browser,
		timeout: timeout,
		logger:  logger,
	}
}

func (f *BrowserFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	page, err := f.browser.NewPage()
	if err != nil {
		return "", errors.NewFetchError(url, 0, err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	start := time.Now()
	if err := page.Navigate(url); err != nil {
		return "", errors.NewFetchError(url, 0, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", errors.NewFetchError(url, 0, err)
	}

	f.acceptCookies(page)
	f.scrollToBottom(page)

	html, err := page.HTML()
	if err != nil {
		return "", errors.NewFetchError(url, 0, err)
	}

	f.logger.Debug("Page fetched",
		zap.String("url", url),
		zap.Int("bytes", len(html)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return html, nil
}

func (f *BrowserFetcher) acceptCookies(page *rod.Page) {
	for _, label := range consentButtonLabels {
		el, err := page.Timeout(consentClickTimeout).ElementR("button", label)
		if err != nil {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
			f.logger.Debug("Dismissed cookie banner", zap.String("label", label))
			return
		}
	}
}

// scrollToBottom walks the page down so lazily loaded sections (the note
// pyramid and voting charts) are present in the captured HTML.
func (f *BrowserFetcher) scrollToBottom(page *rod.Page) {
	lastHeight := -1.0
	for i := 0; i < scrollSteps; i++ {
		res, err := page.Eval(`() => document.body.scrollHeight`)
		if err != nil {
			return
		}
		height := res.Value.Num()
		if height == lastHeight {
			return
		}
		lastHeight = height

		if _, err := page.Eval(`h => window.scrollTo(0, h)`, height); err != nil {
			return
		}
		time.Sleep(scrollPause)
	}
}
