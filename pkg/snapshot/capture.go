package snapshot

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Capture opens pageURL in a headless browser, waits for the load event and
// builds a snapshot from the rendered DOM.  Used when the host can only tell
// us where the visitor is, not what the page contains.  Cancellable via ctx.
func Capture(ctx context.Context, pageURL string) (*PageSnapshot, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "data" {
		return nil, errors.New("unsupported URL scheme (allowed: http, https, data)")
	}

	launch := launcher.New().Headless(true).Leakless(true)
	if deadline, ok := ctx.Deadline(); ok {
		launch = launch.Context(ctx)
		launch.Set("--timeout", time.Until(deadline).String())
	}
	wsURL, err := launch.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	defer browser.Close()

	page := browser.MustPage()
	if err := page.Navigate(pageURL); err != nil {
		return nil, err
	}
	page.MustWaitLoad()

	rendered := page.Timeout(5 * time.Second).MustElement("html").MustHTML()
	snap, err := Parse(page.MustInfo().URL, rendered)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
