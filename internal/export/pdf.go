package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-formatter/internal/rendering"
	"github.com/jonathan/resume-formatter/internal/types"
	"go.uber.org/zap"
)

// DefaultPDFTimeout bounds a single headless Chrome render
const DefaultPDFTimeout = 60 * time.Second

// A4 paper size in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFRenderer prints the HTML preview of a record to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type PDFRenderer struct {
	ChromePath string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// NewPDFRenderer creates a renderer using the given Chrome binary, or the
// default lookup when chromePath is empty.
func NewPDFRenderer(chromePath string, logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFRenderer{ChromePath: chromePath, Timeout: DefaultPDFTimeout, Logger: logger}
}

// allocatorOptions returns the exec allocator flags for headless printing
func (r *PDFRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}
	return opts
}

// RenderPDF renders the record's preview and prints it to an A4 PDF
func (r *PDFRenderer) RenderPDF(ctx context.Context, record types.ResumeRecord) ([]byte, error) {
	html, err := rendering.PreviewHTML(record)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}

	pdf, err := r.RenderHTML(ctx, html)
	if err != nil {
		return nil, &GenerationError{Cause: err}
	}
	return pdf, nil
}

// RenderHTML prints an HTML page to an A4 PDF
func (r *PDFRenderer) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("starting headless browser", zap.Int("html_bytes", len(html)))

	tmpDir, err := os.MkdirTemp("", "resume-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0600); err != nil {
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug("rendered pdf", zap.Int("bytes", len(pdf)))
	return pdf, nil
}
