package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/metrics"
	"go-screenshot-cache/internal/models"
)

// Options controls miss handling
type Options struct {
	Capture        models.CaptureOptions
	ReferenceTTL   time.Duration
	InlineOnFailed bool // serve a data URL when the store fails
	CollapseMisses bool
}

// CaptureService answers capture requests from cache or by rendering the page
type CaptureService struct {
	keys   interfaces.KeyDeriver
	engine interfaces.Capturer
	cache  interfaces.ObjectCache
	opts   Options
	group  singleflight.Group
	logger *zap.Logger
}

// CaptureResult is what a caller gets back for one request
type CaptureResult struct {
	ScreenshotURL string             `json:"screenshotUrl"`
	Key           string             `json:"key"`
	CacheStatus   models.CacheStatus `json:"cacheStatus"`
}

// NewCaptureService creates a new capture service
func NewCaptureService(keys interfaces.KeyDeriver, engine interfaces.Capturer, cache interfaces.ObjectCache, opts Options, logger *zap.Logger) *CaptureService {
	return &CaptureService{
		keys:   keys,
		engine: engine,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

// Handle serves one capture request.
// Input is validated before any storage or browser work is done.
func (s *CaptureService) Handle(ctx context.Context, req models.CaptureRequest) (*CaptureResult, error) {
	result, err := s.handle(ctx, req)
	if err != nil {
		metrics.RecordRequestError(errorKind(err))
		return nil, err
	}
	metrics.RecordCaptureRequest(string(result.CacheStatus))
	return result, nil
}

func (s *CaptureService) handle(ctx context.Context, req models.CaptureRequest) (*CaptureResult, error) {
	key, err := s.keys.Derive(req.URL)
	if err != nil {
		return nil, err
	}

	level, err := s.cache.Exists(ctx, key)
	if err != nil {
		return nil, err
	}

	if level != models.IndexLevelMiss {
		s.logger.Debug("Screenshot cache hit",
			zap.String("key", key),
			zap.String("level", string(level)))

		ref, err := s.cache.AccessReference(ctx, key, s.opts.ReferenceTTL)
		if err != nil {
			return nil, err
		}
		return &CaptureResult{ScreenshotURL: ref, Key: key, CacheStatus: models.CacheStatusHit}, nil
	}

	// A render always runs to completion and is stored even if the caller goes away.
	// Storage calls are still bounded by their own timeout.
	missCtx := context.WithoutCancel(ctx)

	if !s.opts.CollapseMisses {
		return s.captureAndStore(missCtx, req.URL, key)
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.captureAndStore(missCtx, req.URL, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Shared in-flight capture", zap.String("key", key))
	}
	result := *v.(*CaptureResult)
	return &result, nil
}

func (s *CaptureService) captureAndStore(ctx context.Context, url, key string) (*CaptureResult, error) {
	s.logger.Info("Screenshot cache miss, capturing",
		zap.String("url", url),
		zap.String("key", key))

	data, err := s.engine.Capture(url, s.opts.Capture)
	if err != nil {
		return nil, err
	}

	image := &models.CapturedImage{
		Data:      data,
		MediaType: s.opts.Capture.Format,
		Key:       key,
	}

	if err := s.cache.Store(ctx, image); err != nil {
		if !s.opts.InlineOnFailed {
			return nil, err
		}
		s.logger.Warn("Failed to store screenshot, serving inline",
			zap.String("key", key),
			zap.Error(err))
		return &CaptureResult{ScreenshotURL: dataURL(image), Key: key, CacheStatus: models.CacheStatusDegraded}, nil
	}

	ref, err := s.cache.AccessReference(ctx, key, s.opts.ReferenceTTL)
	if err != nil {
		return nil, err
	}
	return &CaptureResult{ScreenshotURL: ref, Key: key, CacheStatus: models.CacheStatusMiss}, nil
}

func dataURL(image *models.CapturedImage) string {
	return fmt.Sprintf("data:%s;base64,%s", image.MediaType.ContentType(), base64.StdEncoding.EncodeToString(image.Data))
}

func errorKind(err error) string {
	var (
		timeoutErr *models.CaptureTimeoutError
		engineErr  *models.CaptureEngineError
		storageErr *models.StorageError
	)
	switch {
	case models.IsInvalidInput(err):
		return "invalid_input"
	case errors.As(err, &timeoutErr):
		return "capture_timeout"
	case errors.As(err, &engineErr):
		return "capture_engine"
	case errors.As(err, &storageErr):
		return "storage"
	default:
		return "internal"
	}
}
