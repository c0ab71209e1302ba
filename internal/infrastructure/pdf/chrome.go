// Package pdf prints rendered invoice HTML to PDF bytes via headless
// Chromium. Chromium is the only renderer that handles the invoice layouts'
// CSS faithfully; the engine is a hard runtime dependency of invoice
// creation.
package pdf

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/billcraft/billcraft-api/internal/config"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Engine renders HTML to PDF bytes
type Engine interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromeEngine drives a headless Chromium instance per render. A fresh
// browser context is allocated each call; renders are infrequent enough
// that keeping a warm instance is not worth the lifecycle handling.
type ChromeEngine struct {
	cfg config.PDFConfig
}

// NewChromeEngine creates a PDF engine from configuration
func NewChromeEngine(cfg *config.PDFConfig) *ChromeEngine {
	return &ChromeEngine{cfg: *cfg}
}

const (
	// A4 width; the height grows with the content so a long invoice
	// becomes one tall page instead of splitting rows across breaks
	pageWidthMM     = 210.0
	minPageHeightMM = 297.0
	pxToMM          = 0.264583
	mmPerInch       = 25.4
)

// contentHeightJS mirrors the usual cross-browser maximum of the document
// height properties
const contentHeightJS = `Math.max(
	document.body.scrollHeight,
	document.body.offsetHeight,
	document.documentElement.clientHeight,
	document.documentElement.scrollHeight,
	document.documentElement.offsetHeight
)`

func (e *ChromeEngine) Render(ctx context.Context, html string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if e.cfg.ChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(e.cfg.ChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var contentHeight float64
	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err := chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.Evaluate(contentHeightJS, &contentHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			heightMM := math.Max(minPageHeightMM, math.Ceil(contentHeight*pxToMM))
			buf, _, perr := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(pageWidthMM / mmPerInch).
				WithPaperHeight(heightMM / mmPerInch).
				Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdfBuf, nil
}
