package browser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Shot describes one captured screenshot.
type Shot struct {
	// Route is the server path that was captured.
	Route string `json:"route"`

	// File is the path of the written PNG.
	File string `json:"file"`

	// Size is the PNG size in bytes.
	Size int `json:"size"`
}

// Capturer takes full-page screenshots of dev server routes.
type Capturer struct {
	// outDir is where PNG files are written.
	outDir string

	// width and height set the viewport before capture.
	width  int
	height int

	// logger is used for per-route progress logging.
	logger *slog.Logger
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithViewport sets the browser viewport size.
func WithViewport(width, height int) Option {
	return func(c *Capturer) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		c.logger = logger
	}
}

// NewCapturer creates a Capturer writing PNGs into outDir.
func NewCapturer(outDir string, opts ...Option) *Capturer {
	c := &Capturer{
		outDir: outDir,
		width:  1440,
		height: 900,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Capture launches headless Chromium, loads each route, and writes one
// full-page PNG per route. The browser is torn down before returning.
func (c *Capturer) Capture(ctx context.Context, baseURL string, routes []string) ([]Shot, error) {
	if err := os.MkdirAll(c.outDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}
	defer browser.Close()

	shots := make([]Shot, 0, len(routes))
	for _, route := range routes {
		select {
		case <-ctx.Done():
			return shots, ctx.Err()
		default:
		}

		shot, err := c.captureRoute(ctx, browser, baseURL, route)
		if err != nil {
			return shots, fmt.Errorf("failed to capture %s: %w", route, err)
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

// captureRoute loads one route and writes its screenshot.
func (c *Capturer) captureRoute(ctx context.Context, browser *rod.Browser, baseURL, route string) (Shot, error) {
	target, err := url.JoinPath(baseURL, route)
	if err != nil {
		return Shot{}, err
	}

	c.logger.Info("capturing route", "url", target)

	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return Shot{}, err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             c.width,
		Height:            c.height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return Shot{}, err
	}
	if err := page.WaitLoad(); err != nil {
		return Shot{}, err
	}
	// Let entrance animations settle so shots are comparable run to run.
	time.Sleep(500 * time.Millisecond)

	png, err := page.Screenshot(true, nil)
	if err != nil {
		return Shot{}, err
	}

	file := filepath.Join(c.outDir, shotFilename(route))
	if err := os.WriteFile(file, png, 0600); err != nil {
		return Shot{}, err
	}
	return Shot{Route: route, File: file, Size: len(png)}, nil
}

// shotFilename converts a route into a stable PNG filename.
// "/" becomes home.png; other routes swap separators for dashes.
func shotFilename(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "home.png"
	}
	return strings.ReplaceAll(trimmed, "/", "-") + ".png"
}
