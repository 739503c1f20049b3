package interfaces

import (
	"time"

	"go-screenshot-cache/internal/models"
)

//go:generate mockgen -package=mock -source=browser.go -destination=mock/browser.go

// BrowserLauncher starts browser instances
type BrowserLauncher interface {
	Launch() (Browser, error)
}

// Browser is a single launched browser instance owned by one capture
type Browser interface {
	NewPage(viewport models.Viewport) (Page, error)
	Close() error
}

// Page is a browser tab
type Page interface {
	Goto(url string, waitUntil models.LoadCondition, timeout time.Duration) error
	Evaluate(script string) error
	Screenshot(format models.MediaType, quality int, fullPage bool) ([]byte, error)
}
