// Package capture renders a page at three viewports, writes one PNG per
// viewport to the caller's output directory, and derives visual and
// structural features from the rasters and the live DOM.
//
// Navigation or render failure for any viewport is fatal to the run.
// Feature extraction sub-steps degrade individually to documented
// defaults and never abort a capture.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"

	"github.com/sitejury/sitejury/capture/internal/browser"
	"github.com/sitejury/sitejury/capture/internal/raster"
	"github.com/sitejury/sitejury/page"
)

// Color re-exports the quantized palette entry type.
type Color = raster.Color

// Viewport re-exports the rendering size type.
type Viewport = browser.Viewport

// Engine re-exports the rendering engine so callers can manage its
// lifecycle without reaching into the internal package.
type Engine = browser.Engine

// EngineConfig configures the rendering engine.
type EngineConfig = browser.Config

// NewEngine creates a stopped engine. Call Start before use.
func NewEngine(cfg EngineConfig) *Engine { return browser.New(cfg) }

// Default viewports, one per device class.
var (
	DesktopViewport = Viewport{Name: "desktop", Width: 1440, Height: 900}
	TabletViewport  = Viewport{Name: "tablet", Width: 768, Height: 1024}
	MobileViewport  = Viewport{Name: "mobile", Width: 390, Height: 844, Mobile: true}
)

// Render is the immutable capture of one viewport. Desktop carries the
// richest feature set; tablet and mobile carry colors only, with mobile
// adding nav classification and a readability score.
type Render struct {
	Viewport       Viewport  `json:"viewport"`
	ImagePath      string    `json:"image_path"`
	DominantColors []Color   `json:"dominant_colors,omitempty"`
	LayoutRhythm   float64   `json:"layout_rhythm,omitempty"`
	Components     []string  `json:"components,omitempty"`
	NavPattern     string    `json:"nav_pattern,omitempty"`
	Readability    int       `json:"readability,omitempty"`
}

// Bundle is the full output of a capture run.
type Bundle struct {
	Desktop Render `json:"desktop"`
	Tablet  Render `json:"tablet"`
	Mobile  Render `json:"mobile"`

	// HTML is the desktop DOM serialized after settle.
	HTML string `json:"-"`
}

// Capturer drives the rendering engine. One Capturer serves one run.
type Capturer struct {
	engine *browser.Engine
	log    *slog.Logger
}

// New creates a Capturer on top of a started engine.
func New(engine *browser.Engine, log *slog.Logger) *Capturer {
	if log == nil {
		log = slog.Default()
	}
	return &Capturer{engine: engine, log: log}
}

// Run captures the page at all three viewports, strictly one rendering
// context at a time: tablet, mobile, then desktop. The desktop page is
// captured last and returned still open so downstream evaluators can
// issue live queries against it; the caller owns closing it.
func (c *Capturer) Run(ctx context.Context, pageURL, outDir string) (*Bundle, *rod.Page, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("capture: output dir: %w", err)
	}

	var b Bundle

	tablet, tabletPage, err := c.captureViewport(ctx, pageURL, outDir, TabletViewport)
	if err != nil {
		return nil, nil, err
	}
	tabletPage.Close()
	b.Tablet = *tablet

	mobile, mobilePage, err := c.captureViewport(ctx, pageURL, outDir, MobileViewport)
	if err != nil {
		return nil, nil, err
	}
	c.mobileFeatures(ctx, mobile, mobilePage)
	mobilePage.Close()
	b.Mobile = *mobile

	desktop, desktopPage, err := c.captureViewport(ctx, pageURL, outDir, DesktopViewport)
	if err != nil {
		return nil, nil, err
	}
	c.desktopFeatures(ctx, desktop, desktopPage)

	html, err := c.engine.HTML(ctx, desktopPage)
	if err != nil {
		desktopPage.Close()
		return nil, nil, fmt.Errorf("capture: desktop dom: %w", err)
	}
	b.Desktop = *desktop
	b.HTML = html

	return &b, desktopPage, nil
}

// captureViewport opens the page at one viewport, writes the screenshot,
// and extracts the raster features shared by all viewports.
func (c *Capturer) captureViewport(ctx context.Context, pageURL, outDir string, vp Viewport) (*Render, *rod.Page, error) {
	p, err := c.engine.OpenPage(ctx, pageURL, vp)
	if err != nil {
		return nil, nil, fmt.Errorf("capture: viewport %s: %w", vp.Name, err)
	}

	shot, err := c.engine.Screenshot(ctx, p)
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("capture: viewport %s: %w", vp.Name, err)
	}

	imgPath := filepath.Join(outDir, vp.Name+".png")
	if err := os.WriteFile(imgPath, shot, 0o644); err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("capture: viewport %s: write raster: %w", vp.Name, err)
	}

	r := &Render{Viewport: vp, ImagePath: imgPath}
	if vp.Name == DesktopViewport.Name {
		r.LayoutRhythm = raster.DefaultRhythm
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		// Degraded: keep the raster file, skip image features.
		c.log.Warn("capture: raster decode failed", "viewport", vp.Name, "error", err)
		return r, p, nil
	}
	r.DominantColors = c.palette(img, vp.Name)

	if vp.Name == DesktopViewport.Name {
		r.LayoutRhythm = c.rhythm(img, vp.Name)
	}

	return r, p, nil
}

func (c *Capturer) palette(img image.Image, viewport string) []Color {
	pal, err := raster.Palette(img)
	if err != nil {
		c.log.Warn("capture: color extraction failed", "viewport", viewport, "error", err)
		return nil
	}
	return pal
}

func (c *Capturer) rhythm(img image.Image, viewport string) float64 {
	score, err := raster.Rhythm(img)
	if err != nil {
		c.log.Warn("capture: rhythm extraction failed", "viewport", viewport, "error", err)
		return raster.DefaultRhythm
	}
	return score
}

// desktopFeatures adds structural component detection to the desktop
// render. Failures degrade to an empty component list.
func (c *Capturer) desktopFeatures(ctx context.Context, r *Render, p *rod.Page) {
	q := page.NewLive(ctx, p)
	comps, err := DetectComponents(q)
	if err != nil {
		c.log.Warn("capture: component detection failed", "error", err)
		return
	}
	r.Components = comps
}

// mobileFeatures classifies navigation and scores readability on the
// mobile render. Failures degrade to "none" / 0.
func (c *Capturer) mobileFeatures(ctx context.Context, r *Render, p *rod.Page) {
	q := page.NewLive(ctx, p)

	nav, err := ClassifyNav(q)
	if err != nil {
		c.log.Warn("capture: mobile nav classification failed", "error", err)
		nav = NavNone
	}
	r.NavPattern = nav

	score, err := ScoreReadability(q)
	if err != nil {
		c.log.Warn("capture: mobile readability failed", "error", err)
		score = 0
	}
	r.Readability = score
}
