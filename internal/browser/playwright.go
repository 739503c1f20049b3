package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/models"
)

// PlaywrightLauncher launches chromium through a single playwright driver per process
type PlaywrightLauncher struct {
	pw      *playwright.Playwright
	options playwright.BrowserTypeLaunchOptions
	logger  *zap.Logger
}

// NewPlaywrightLauncher starts the playwright driver, installing it first when configured
func NewPlaywrightLauncher(cfg *config.BrowserConfig, logger *zap.Logger) (*PlaywrightLauncher, error) {
	if cfg.InstallDriver {
		logger.Info("Installing playwright driver and chromium")
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &PlaywrightLauncher{
		pw:      pw,
		options: launchOptions(cfg),
		logger:  logger,
	}, nil
}

func launchOptions(cfg *config.BrowserConfig) playwright.BrowserTypeLaunchOptions {
	opts := playwright.BrowserTypeLaunchOptions{
		Args: cfg.Args,
	}
	if cfg.Headless != nil {
		opts.Headless = playwright.Bool(*cfg.Headless)
	}
	if cfg.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(cfg.ExecutablePath)
	}
	return opts
}

// Launch starts a new chromium instance
func (l *PlaywrightLauncher) Launch() (interfaces.Browser, error) {
	b, err := l.pw.Chromium.Launch(l.options)
	if err != nil {
		return nil, err
	}
	return &playwrightBrowser{browser: b}, nil
}

// Close stops the playwright driver
func (l *PlaywrightLauncher) Close() error {
	l.logger.Info("Stopping playwright driver")
	return l.pw.Stop()
}

type playwrightBrowser struct {
	browser playwright.Browser
}

func (b *playwrightBrowser) NewPage(viewport models.Viewport) (interfaces.Page, error) {
	page, err := b.browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: viewport.Width, Height: viewport.Height},
	})
	if err != nil {
		return nil, err
	}
	return &playwrightPage{page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	return b.browser.Close()
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Goto(url string, waitUntil models.LoadCondition, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntilState(waitUntil),
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	return err
}

func (p *playwrightPage) Evaluate(script string) error {
	_, err := p.page.Evaluate(script)
	return err
}

func (p *playwrightPage) Screenshot(format models.MediaType, quality int, fullPage bool) ([]byte, error) {
	opts := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
		Type:     playwright.ScreenshotTypeJpeg,
	}
	if format == models.MediaTypePNG {
		// png is lossless and rejects a quality setting
		opts.Type = playwright.ScreenshotTypePng
	} else {
		opts.Quality = playwright.Int(quality)
	}
	return p.page.Screenshot(opts)
}

func waitUntilState(condition models.LoadCondition) *playwright.WaitUntilState {
	switch condition {
	case models.LoadConditionLoad:
		return playwright.WaitUntilStateLoad
	case models.LoadConditionNetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	case models.LoadConditionCommit:
		return playwright.WaitUntilStateCommit
	default:
		return playwright.WaitUntilStateDomcontentloaded
	}
}
