package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MediaType represents the encoded image format of a capture
type MediaType string

const (
	MediaTypeJPEG MediaType = "jpeg"
	MediaTypePNG  MediaType = "png"
)

// UnmarshalYAML implements custom YAML unmarshaling for MediaType
func (m *MediaType) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch str {
	case "jpeg", "jpg":
		*m = MediaTypeJPEG
		return nil
	case "png":
		*m = MediaTypePNG
		return nil
	default:
		return fmt.Errorf("invalid format '%s': must be one of 'jpeg', 'png'", str)
	}
}

// Extension returns the file extension used in cache keys
func (m MediaType) Extension() string {
	if m == MediaTypePNG {
		return "png"
	}
	return "jpg"
}

// ContentType returns the MIME type stored alongside the object
func (m MediaType) ContentType() string {
	if m == MediaTypePNG {
		return "image/png"
	}
	return "image/jpeg"
}

// LoadCondition is the signal the browser uses to decide a page has loaded
type LoadCondition string

const (
	LoadConditionLoad             LoadCondition = "load"
	LoadConditionDOMContentLoaded LoadCondition = "domcontentloaded"
	LoadConditionNetworkIdle      LoadCondition = "networkidle"
	LoadConditionCommit           LoadCondition = "commit"
)

// UnmarshalYAML implements custom YAML unmarshaling for LoadCondition
func (l *LoadCondition) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch str {
	case "load", "domcontentloaded", "networkidle", "commit":
		*l = LoadCondition(str)
		return nil
	default:
		return fmt.Errorf("invalid wait_until '%s': must be one of 'load', 'domcontentloaded', 'networkidle', 'commit'", str)
	}
}

// Viewport is the browser window size in CSS pixels
type Viewport struct {
	Width  int `yaml:"width" validate:"gte=1,lte=8192"`
	Height int `yaml:"height" validate:"gte=1,lte=8192"`
}

// CaptureOptions controls a single capture
type CaptureOptions struct {
	Viewport          Viewport
	NavigationTimeout time.Duration
	MaxAttempts       int
	WaitUntil         LoadCondition
	Stabilize         bool
	Format            MediaType
	Quality           int // JPEG only, 0-100
	MaxWidth          int // 0 disables downscaling
}

// CaptureRequest is a single request to capture a page
type CaptureRequest struct {
	URL string `json:"url"`
}

// CapturedImage is an encoded capture and the key it is stored under
type CapturedImage struct {
	Data      []byte
	MediaType MediaType
	Key       string
}

// CacheStatus reports how a request was served
type CacheStatus string

const (
	CacheStatusHit      CacheStatus = "HIT"
	CacheStatusMiss     CacheStatus = "MISS"
	CacheStatusDegraded CacheStatus = "DEGRADED" // captured but not cached
)

// IndexLevel identifies which existence index tier answered a lookup
type IndexLevel string

const (
	IndexLevelL1      IndexLevel = "l1"
	IndexLevelL2      IndexLevel = "l2"
	IndexLevelStorage IndexLevel = "storage"
	IndexLevelMiss    IndexLevel = "miss"
)
