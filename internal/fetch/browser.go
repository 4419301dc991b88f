package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain
// HTTP fetch before falling back to browser rendering.
const MinContentLength = 500

// ShouldUseBrowser reports whether extracted text is short enough that the
// page is probably rendered by JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// RenderFunc renders a page and returns its HTML.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// Browser renders job pages in headless Chrome. Requires Chrome or Chromium
// on the system.
type Browser struct {
	// Settle is how long scripts get to fill the page after it is ready.
	Settle time.Duration
	// Consent matches cookie banner buttons; a miss is ignored.
	Consent string
	// Expand matches "show more" toggles that hide the rest of a job
	// description; a miss is ignored.
	Expand string
	// NoSandbox disables the Chrome sandbox, needed when running as root.
	NoSandbox bool
}

// DefaultBrowser returns a Browser tuned for the supported job portals.
func DefaultBrowser() *Browser {
	return &Browser{
		Settle:  3 * time.Second,
		Consent: `button[id*="accept"], button[class*="accept"]`,
		Expand: strings.Join([]string{
			"button.show-more-less-html__button",
			"button[aria-label*='see more' i]",
			"[data-testid='show-more']",
			".read-more",
		}, ", "),
		NoSandbox: true,
	}
}

// Render loads url and returns the page HTML once scripts have settled.
func (b *Browser) Render(ctx context.Context, url string, timeout time.Duration) (string, error) {
	slog.Debug("rendering page in headless browser", slog.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", b.NoSandbox),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.Settle),
		b.tryClick(b.Consent),
		b.tryClick(b.Expand),
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	}
	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	slog.Debug("rendered page", slog.String("url", url), slog.Int("bytes", len(html)))
	return html, nil
}

// tryClick clicks the first visible match of selector without waiting for
// one to appear.
func (b *Browser) tryClick(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if selector == "" {
			return nil
		}
		var present bool
		js := fmt.Sprintf(`document.querySelector(%q) !== null`, selector)
		if err := chromedp.Evaluate(js, &present).Do(ctx); err != nil || !present {
			return nil
		}
		_ = chromedp.Click(selector, chromedp.NodeVisible, chromedp.ByQuery).Do(ctx)
		return nil
	})
}
