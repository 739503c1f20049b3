package capture

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/metrics"
	"go-screenshot-cache/internal/models"
)

// Capture stages reported in CaptureEngineError
const (
	StageLaunch    = "launch"
	StagePage      = "page"
	StageStabilize = "stabilize"
	StageRender    = "render"
	StageEncode    = "encode"
)

// stabilizeScript pins the document to the viewport height so lazy layouts stop growing
const stabilizeScript = `(height) => {
  const h = height + 'px';
  document.documentElement.style.height = h;
  document.documentElement.style.overflow = 'hidden';
  if (document.body) {
    document.body.style.height = h;
    document.body.style.overflow = 'hidden';
  }
}`

// Engine renders URLs with a fresh browser per capture
type Engine struct {
	launcher interfaces.BrowserLauncher
	logger   *zap.Logger
}

// NewEngine creates a capture engine
func NewEngine(launcher interfaces.BrowserLauncher, logger *zap.Logger) *Engine {
	return &Engine{
		launcher: launcher,
		logger:   logger,
	}
}

// Capture loads url and returns the encoded viewport screenshot.
// The browser is released exactly once on every path.
func (e *Engine) Capture(url string, opts models.CaptureOptions) (data []byte, err error) {
	defer metrics.TimeCapture()()
	defer func() {
		if err != nil {
			metrics.RecordCapture(captureResult(err))
			return
		}
		metrics.RecordCapture("success")
	}()

	browser, err := e.launcher.Launch()
	if err != nil {
		return nil, &models.CaptureEngineError{Stage: StageLaunch, Err: err}
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			e.logger.Warn("Failed to close browser",
				zap.String("url", url),
				zap.Error(closeErr))
		}
	}()

	page, err := browser.NewPage(opts.Viewport)
	if err != nil {
		return nil, &models.CaptureEngineError{Stage: StagePage, Err: err}
	}

	if err := e.navigate(page, url, opts); err != nil {
		return nil, err
	}

	if opts.Stabilize {
		script := fmt.Sprintf("(%s)(%d)", stabilizeScript, opts.Viewport.Height)
		if err := page.Evaluate(script); err != nil {
			return nil, &models.CaptureEngineError{Stage: StageStabilize, Err: err}
		}
	}

	raw, err := page.Screenshot(opts.Format, opts.Quality, false)
	if err != nil {
		return nil, &models.CaptureEngineError{Stage: StageRender, Err: err}
	}
	if len(raw) == 0 {
		return nil, &models.CaptureEngineError{Stage: StageRender, Err: errors.New("empty screenshot")}
	}

	data, err = Downscale(raw, opts)
	if err != nil {
		return nil, &models.CaptureEngineError{Stage: StageEncode, Err: err}
	}

	e.logger.Debug("Captured page",
		zap.String("url", url),
		zap.Int("bytes", len(data)))
	return data, nil
}

// navigate tries MaxAttempts times back to back and returns the last error on exhaustion
func (e *Engine) navigate(page interfaces.Page, url string, opts models.CaptureOptions) error {
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = page.Goto(url, opts.WaitUntil, opts.NavigationTimeout)
		metrics.RecordNavigationAttempt(lastErr == nil)
		if lastErr == nil {
			return nil
		}
		e.logger.Warn("Navigation attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr))
	}

	return &models.CaptureTimeoutError{URL: url, Attempts: attempts, Err: lastErr}
}

func captureResult(err error) string {
	var timeoutErr *models.CaptureTimeoutError
	if errors.As(err, &timeoutErr) {
		return "timeout"
	}
	var engineErr *models.CaptureEngineError
	if errors.As(err, &engineErr) {
		return engineErr.Stage + "_error"
	}
	return "error"
}
