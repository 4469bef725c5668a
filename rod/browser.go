package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultMaxRenders is the number of rendered pages after which Chrome is
// relaunched. Its memory keeps growing across pages even when every page
// is closed.
const DefaultMaxRenders = 75

// Browser hands out pages of a headless Chrome for rendering storefronts.
// Once maxRenders pages have been released, the next OpenPage call made
// while no page is open relaunches Chrome. Pages still in use by other
// goroutines are never closed underneath them.
//
// Browser is safe for concurrent use.
type Browser struct {
	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	renders    int
	open       int
	maxRenders int
	bin        string
	headful    bool
	closed     bool
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithMaxRenders sets how many pages are rendered before Chrome is
// relaunched. Defaults to DefaultMaxRenders.
func WithMaxRenders(n int) BrowserOption {
	return func(b *Browser) {
		b.maxRenders = n
	}
}

// WithBrowserBin uses the Chrome/Chromium binary at path instead of the one
// found or downloaded by the launcher.
func WithBrowserBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// WithHeadful shows the browser window. Useful when debugging selectors.
func WithHeadful() BrowserOption {
	return func(b *Browser) {
		b.headful = true
	}
}

// NewBrowser launches Chrome. Close must be called when the Browser is no
// longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{maxRenders: DefaultMaxRenders}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// OpenPage opens a blank page. The returned release func closes the page
// and counts it toward the relaunch threshold; it must be called exactly once.
func (b *Browser) OpenPage() (*rod.Page, func(), error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, nil, fmt.Errorf("browser is closed")
	}
	if b.open == 0 && b.renders >= b.maxRenders {
		b.relaunch()
	}
	browser := b.browser
	b.open++
	b.mu.Unlock()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.mu.Lock()
		b.open--
		b.mu.Unlock()
		return nil, nil, fmt.Errorf("opening page: %w", err)
	}

	release := func() {
		_ = page.Close()
		b.mu.Lock()
		b.open--
		b.renders++
		b.mu.Unlock()
	}
	return page, release, nil
}

// Renders returns the number of pages released since Chrome was last
// (re)launched.
func (b *Browser) Renders() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders
}

// PID returns the process ID of the Chrome launcher, or 0 once closed.
func (b *Browser) PID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}

// Close shuts Chrome down. Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.shutdown()
}

// launch starts Chrome with flags suited to rendering many storefronts in a
// row. Images are not loaded; only the HTML is kept.
func (b *Browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("blink-settings", "imagesEnabled=false").
		Leakless(true).
		Headless(!b.headful)
	if b.bin != "" {
		l = l.Bin(b.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	b.renders = 0
	return nil
}

// relaunch replaces Chrome, keeping the old instance if the new one fails
// to start. Must be called with mu held and no open pages.
func (b *Browser) relaunch() {
	oldBrowser, oldLauncher, oldRenders := b.browser, b.launcher, b.renders
	if err := b.launch(); err != nil {
		b.browser, b.launcher, b.renders = oldBrowser, oldLauncher, oldRenders
		return
	}
	_ = oldBrowser.Close()
	oldLauncher.Kill()
}

// shutdown must be called with mu held.
func (b *Browser) shutdown() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}
