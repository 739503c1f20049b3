package interfaces

import (
	"go-screenshot-cache/internal/models"
)

//go:generate mockgen -package=mock -source=capturer.go -destination=mock/capturer.go

// Capturer renders a URL into encoded image bytes
type Capturer interface {
	Capture(url string, opts models.CaptureOptions) ([]byte, error)
}
