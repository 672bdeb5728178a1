// Package pdf prints rendered resume HTML to A4 PDF through headless Chrome.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotStarted = errors.New("pdf: exporter not started")
	ErrNotPDF     = errors.New("pdf: output is not a pdf document")
)

var pdfMagic = []byte("%PDF")

// Exporter turns a self-contained HTML document into PDF bytes.
type Exporter interface {
	Export(ctx context.Context, html string) ([]byte, error)
}

// A4 in inches, 10mm margins on every side.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 10 / 25.4
)

type Options struct {
	ChromePath string
	Timeout    time.Duration
}

// ChromeExporter owns one headless browser; each Export opens and closes its
// own tab.
type ChromeExporter struct {
	opts Options
	log  *logrus.Logger

	mu          sync.Mutex
	allocCancel context.CancelFunc
	browser     context.Context
	browserStop context.CancelFunc
}

func NewChromeExporter(opts Options, log *logrus.Logger) *ChromeExporter {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &ChromeExporter{opts: opts, log: log}
}

// Start launches the browser. The parent context bounds the browser's lifetime.
func (e *ChromeExporter) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return nil
	}

	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.opts.ChromePath != "" {
		flags = append(flags, chromedp.ExecPath(e.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, flags...)
	browser, browserStop := chromedp.NewContext(allocCtx)
	// an empty Run starts the browser process
	if err := chromedp.Run(browser); err != nil {
		browserStop()
		allocCancel()
		return err
	}

	e.allocCancel = allocCancel
	e.browser = browser
	e.browserStop = browserStop
	if e.log != nil {
		e.log.Info("pdf exporter: chrome started")
	}
	return nil
}

func (e *ChromeExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	e.browserStop()
	e.allocCancel()
	e.browser, e.browserStop, e.allocCancel = nil, nil, nil
	return nil
}

func (e *ChromeExporter) Export(ctx context.Context, html string) ([]byte, error) {
	e.mu.Lock()
	browser := e.browser
	e.mu.Unlock()
	if browser == nil {
		return nil, ErrNotStarted
	}

	tab, closeTab := chromedp.NewContext(browser)
	defer closeTab()
	tab, cancel := context.WithTimeout(tab, e.opts.Timeout)
	defer cancel()

	// the request context can abort the tab early
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var out []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = printParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return checkPDF(out)
}

func printParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(paperWidthIn).
		WithPaperHeight(paperHeightIn).
		WithMarginTop(marginIn).
		WithMarginBottom(marginIn).
		WithMarginLeft(marginIn).
		WithMarginRight(marginIn).
		WithPrintBackground(true).
		WithDisplayHeaderFooter(false).
		WithPreferCSSPageSize(false)
}

func checkPDF(b []byte) ([]byte, error) {
	if !bytes.HasPrefix(b, pdfMagic) {
		return nil, ErrNotPDF
	}
	return b, nil
}
