package preview

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-blockforge/internal/fileutil"
	"github.com/alnah/go-blockforge/internal/process"
)

// Format selects the preview output.
type Format string

const (
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatHTML, FormatPNG, FormatPDF}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension for f, with its dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Browser defaults.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultViewportWidth = 1280
	viewportHeight       = 800
)

// A4-ish print geometry in inches, matching the preview page's max width.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginInches      = 0.4
)

// pageRenderer captures a local HTML file. It isolates the browser so the
// Browser logic is testable without Chrome.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, format Format) ([]byte, error)
	Close() error
}

var _ pageRenderer = (*rodRenderer)(nil)

// Browser snapshots preview pages. The headless browser is launched on the
// first capture and shared by later ones. Safe for concurrent use; captures
// are serialized.
type Browser struct {
	mu       sync.Mutex
	renderer pageRenderer
}

// BrowserOption configures a Browser.
type BrowserOption func(*rodRenderer)

// WithTimeout bounds page load and capture when ctx carries no deadline.
func WithTimeout(d time.Duration) BrowserOption {
	return func(r *rodRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithViewportWidth sets the CSS pixel width of PNG captures.
func WithViewportWidth(w int) BrowserOption {
	return func(r *rodRenderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// NewBrowser creates a Browser. No process is started until Snapshot.
func NewBrowser(opts ...BrowserOption) *Browser {
	r := &rodRenderer{timeout: DefaultTimeout, width: DefaultViewportWidth}
	for _, opt := range opts {
		opt(r)
	}
	return &Browser{renderer: r}
}

// Snapshot renders page, a complete HTML document, to format. FormatHTML
// returns the page bytes without touching the browser.
func (b *Browser) Snapshot(ctx context.Context, page string, format Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatHTML:
		return []byte(page), nil
	case FormatPNG, FormatPDF:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	path, cleanup, err := fileutil.WriteTempFile(page, string(FormatHTML))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderer.RenderFromFile(ctx, path, format)
}

// Close shuts the browser down. The Browser may be reused afterwards; the
// next Snapshot launches a fresh process.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderer.Close()
}

// rodRenderer drives headless Chrome through go-rod. Rod downloads Chromium
// on first run when no browser is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	width    int
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser for Docker and similar images.
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// CI runners and containers lack the namespaces the sandbox needs.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close releases the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		killLauncher(r.launcher)
		r.launcher = nil
	}
	return err
}

// killLauncher kills Chrome with its renderer and GPU children, which
// launcher.Kill alone can leave behind.
func killLauncher(l *launcher.Launcher) {
	// launcher.Kill below is the fallback when the group kill fails.
	_ = process.KillTree(l.PID())
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens a local HTML file and captures it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, format Format) ([]byte, error) {
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if format == FormatPNG {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             r.width,
			Height:            viewportHeight,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: viewport: %v", ErrPageCreate, err)
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if format == FormatPNG {
		img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
			Format: proto.PageCaptureScreenshotFormatPng,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCapture, err)
		}
		return img, nil
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrCapture, err)
	}
	return buf, nil
}

func printOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
