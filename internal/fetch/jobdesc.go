package fetch

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 60 * time.Second

// ErrEmptyDescription is returned when no text could be extracted from a page.
var ErrEmptyDescription = errors.New("no job description text found")

// DescriptionOptions configures JobDescription.
type DescriptionOptions struct {
	Fetch *Options
	// Browser enables the headless fallback for thin pages.
	Browser        bool
	BrowserTimeout time.Duration
	// Render replaces the default headless Browser, mainly for tests.
	Render RenderFunc
	Logger *slog.Logger
}

// JobDescription fetches a job posting and extracts its description text
// using selectors for the detected portal. When the plain fetch yields too
// little text and Browser is set, the page is rendered and extracted again.
func JobDescription(ctx context.Context, urlStr string, opts *DescriptionOptions) (*Result, error) {
	if opts == nil {
		opts = &DescriptionOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result, err := URL(ctx, urlStr, opts.Fetch)
	if err != nil && !opts.Browser {
		return nil, err
	}
	if result == nil {
		result = &Result{URL: urlStr, Portal: DetectPortal(urlStr)}
	}

	switch {
	case err != nil:
		logger.Warn("plain fetch failed, trying browser", slog.String("url", urlStr), slog.Any("error", err))
	case result.HTML != "":
		text, extractErr := ExtractMainText(result.HTML, PortalContentSelectors(result.Portal), PortalNoiseSelectors(result.Portal)...)
		if extractErr != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: extractErr}
		}
		result.Text = text
	}

	if opts.Browser && ShouldUseBrowser(result.Text) {
		render := opts.Render
		if render == nil {
			render = DefaultBrowser().Render
		}
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = DefaultBrowserTimeout
		}

		html, renderErr := render(ctx, urlStr, timeout)
		switch {
		case renderErr != nil && result.Text == "":
			return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: renderErr}
		case renderErr != nil:
			logger.Warn("browser rendering failed, keeping fetched text", slog.String("url", urlStr), slog.Any("error", renderErr))
		default:
			text, extractErr := ExtractMainText(html, PortalContentSelectors(result.Portal), PortalNoiseSelectors(result.Portal)...)
			if extractErr == nil && len(text) > len(result.Text) {
				result.HTML = html
				result.Text = text
				result.Rendered = true
			}
		}
	}

	if result.Text == "" {
		return nil, &Error{URL: urlStr, Message: "extraction failed", Cause: ErrEmptyDescription}
	}
	return result, nil
}
