package fetch

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Browser wraps a rod-controlled Chromium instance. The source site renders
// parts of the detail page with JavaScript and sits behind consent banners,
// so a plain HTTP GET is not enough.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewBrowser(headless bool, proxyURL string) (*Browser, error) {
	l := launcher.New().Headless(headless)
	if proxyURL != "" {
		l = l.Proxy(proxyURL)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, err
	}

	return &Browser{browser: browser, launcher: l}, nil
}

func (b *Browser) NewPage() (*rod.Page, error) {
	return b.browser.Page(proto.TargetCreateTarget{})
}

func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}
