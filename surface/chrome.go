package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"listing-gallery/utils"
)

// ChromeOptions configures a Chrome surface
type ChromeOptions struct {
	PageURL        string // page holding the container, e.g. file:///srv/site/index.html
	ContainerID    string
	ScreenshotPath string // optional PNG of the page after the swap
	SnapshotPath   string // optional HTML of the document after the swap
	Settle         time.Duration
}

// Chrome swaps the container of a live page in headless Chrome. Image load
// fallbacks run in the browser before the optional screenshot is taken.
type Chrome struct {
	opts   ChromeOptions
	logger *utils.Logger
}

// NewChrome creates a Chrome surface
func NewChrome(opts ChromeOptions, logger *utils.Logger) *Chrome {
	if opts.Settle <= 0 {
		opts.Settle = 2 * time.Second
	}
	return &Chrome{opts: opts, logger: logger}
}

// newContext creates a fresh chromedp context (one browser, one tab)
func (c *Chrome) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.Flag("log-level", "3"), // suppress Chrome logs
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

func (c *Chrome) Replace(ctx context.Context, fragment template.HTML) error {
	return c.swap(ctx, "innerHTML", string(fragment))
}

func (c *Chrome) ReplaceText(ctx context.Context, text string) error {
	return c.swap(ctx, "innerText", text)
}

func (c *Chrome) swap(ctx context.Context, property, value string) error {
	if c.opts.PageURL == "" {
		return fmt.Errorf("chrome surface needs a page url")
	}
	script, err := swapScript(c.opts.ContainerID, property, value)
	if err != nil {
		return err
	}

	ctx, cancel := c.newContext(ctx)
	defer cancel()

	c.logger.Info("Opening %s in headless Chrome...", c.opts.PageURL)

	var found bool
	err = chromedp.Run(ctx,
		chromedp.Navigate(c.opts.PageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(script, &found),
	)
	if err != nil {
		return fmt.Errorf("swap in chrome failed: %w", err)
	}
	if !found {
		return fmt.Errorf("container #%s not found on %s", c.opts.ContainerID, c.opts.PageURL)
	}

	// give images time to load or fall back to the placeholder
	if err := chromedp.Run(ctx, chromedp.Sleep(c.opts.Settle)); err != nil {
		return fmt.Errorf("waiting for page to settle: %w", err)
	}

	if c.opts.ScreenshotPath != "" {
		var png []byte
		if err := chromedp.Run(ctx, chromedp.FullScreenshot(&png, 90)); err != nil {
			return fmt.Errorf("screenshot failed: %w", err)
		}
		if err := writeFile(c.opts.ScreenshotPath, png); err != nil {
			return err
		}
		c.logger.Info("Screenshot written to: %s", c.opts.ScreenshotPath)
	}

	if c.opts.SnapshotPath != "" {
		var doc string
		if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &doc, chromedp.ByQuery)); err != nil {
			return fmt.Errorf("document snapshot failed: %w", err)
		}
		if err := writeFile(c.opts.SnapshotPath, []byte("<!DOCTYPE html>\n"+doc)); err != nil {
			return err
		}
		c.logger.Info("Rendered document written to: %s", c.opts.SnapshotPath)
	}
	return nil
}

// swapScript builds the JS that replaces the container property and reports
// whether the container exists
func swapScript(containerID, property, value string) (string, error) {
	id, err := json.Marshal(containerID)
	if err != nil {
		return "", fmt.Errorf("encode container id: %w", err)
	}
	content, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("encode content: %w", err)
	}
	return fmt.Sprintf(`(function() {
	var el = document.getElementById(%s);
	if (!el) return false;
	el.%s = %s;
	return true;
})()`, id, property, content), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
