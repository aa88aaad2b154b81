// Package browser manages the headless Chrome instance behind a capture
// run: launch or connect via rod, open stealth pages sized to a viewport,
// and release the process on every exit path.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures the engine.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// NavTimeout bounds a single page navigation. Default: 30s.
	NavTimeout time.Duration

	// SettleDelay is waited after load so transitions and entry
	// animations finish before rasterizing. Default: 2s.
	SettleDelay time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Engine owns one Chrome process for the duration of a pipeline run.
type Engine struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// New creates an Engine. Call Start to launch Chrome.
func New(cfg Config) *Engine {
	cfg.defaults()
	return &Engine{cfg: cfg}
}

// Start launches Chrome (or connects to a remote instance).
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("browser: engine is closed")
	}
	if e.browser != nil {
		return nil
	}

	log := e.cfg.Logger
	var wsURL string

	if e.cfg.RemoteURL != "" {
		wsURL = e.cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		e.lnch = l
		log.Info("browser: launched local chrome")
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		e.cleanupLocked()
		return fmt.Errorf("browser: connect: %w", err)
	}
	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("browser: ignore cert errors failed", "error", err)
	}
	e.browser = b
	return nil
}

// Viewport is a rendering size in CSS pixels.
type Viewport struct {
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Mobile bool   `json:"mobile" yaml:"mobile"`
}

// OpenPage creates a fresh stealth page sized to the viewport, navigates,
// waits for load plus best-effort network idle, then the settle delay.
// Navigation failures close the page before returning.
func (e *Engine) OpenPage(ctx context.Context, pageURL string, vp Viewport) (*rod.Page, error) {
	e.mu.Lock()
	b := e.browser
	e.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("browser: engine not started")
	}
	log := e.cfg.Logger

	p, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             vp.Width,
		Height:            vp.Height,
		DeviceScaleFactor: 1,
		Mobile:            vp.Mobile,
	}); err != nil {
		p.Close()
		return nil, fmt.Errorf("browser: set viewport %s: %w", vp.Name, err)
	}

	navCtx, cancel := context.WithTimeout(ctx, e.cfg.NavTimeout)
	defer cancel()

	if err := p.Context(navCtx).Navigate(pageURL); err != nil {
		p.Close()
		return nil, fmt.Errorf("browser: navigate %s (%s): %w", pageURL, vp.Name, err)
	}
	if err := p.Context(navCtx).WaitLoad(); err != nil {
		p.Close()
		return nil, fmt.Errorf("browser: wait load %s (%s): %w", pageURL, vp.Name, err)
	}
	// Network idle is best effort: long-polling pages never go idle.
	if err := p.Context(navCtx).WaitIdle(e.cfg.NavTimeout); err != nil {
		log.Warn("browser: wait idle timeout", "url", pageURL, "viewport", vp.Name)
	}

	select {
	case <-time.After(e.cfg.SettleDelay):
	case <-ctx.Done():
		p.Close()
		return nil, fmt.Errorf("browser: settle %s (%s): %w", pageURL, vp.Name, ctx.Err())
	}

	return p, nil
}

// Screenshot rasterizes the full page as PNG bytes.
func (e *Engine) Screenshot(ctx context.Context, p *rod.Page) ([]byte, error) {
	data, err := p.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return data, nil
}

// HTML serializes the page's current DOM as outer HTML.
func (e *Engine) HTML(ctx context.Context, p *rod.Page) (string, error) {
	res, err := p.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("browser: get DOM: %w", err)
	}
	return res.Value.Str(), nil
}

// Close shuts down Chrome. Safe to call more than once and on a never
// started engine.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.cleanupLocked()
	return nil
}

func (e *Engine) cleanupLocked() {
	if e.browser != nil {
		e.browser.Close()
		e.browser = nil
	}
	if e.lnch != nil {
		e.lnch.Cleanup()
		e.lnch = nil
	}
}
