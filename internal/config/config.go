package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"go-screenshot-cache/internal/models"
)

// Access reference policies
const (
	AccessSigned = "signed"
	AccessPublic = "public"
)

// Store failure policies
const (
	StoreFailureError  = "error"
	StoreFailureInline = "inline"
)

// DefaultBrowserArgs are passed to chromium unless overridden
var DefaultBrowserArgs = []string{"--disable-gpu", "--disable-dev-shm-usage"}

// Config represents the main configuration structure
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Capture      CaptureConfig      `yaml:"capture"`
	Browser      BrowserConfig      `yaml:"browser"`
	Storage      StorageConfig      `yaml:"storage"`
	L1           L1Config           `yaml:"l1"`
	L2           L2Config           `yaml:"l2"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

// ServerConfig configures the HTTP trigger (timeouts in milliseconds)
type ServerConfig struct {
	Listen          string `yaml:"listen" validate:"required"`
	ReadTimeout     int    `yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout    int    `yaml:"write_timeout" validate:"gte=0"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" validate:"gte=0"`
}

// CaptureConfig configures how pages are rendered
type CaptureConfig struct {
	Viewport          models.Viewport      `yaml:"viewport"`
	NavigationTimeout int                  `yaml:"navigation_timeout" validate:"gte=1"` // milliseconds
	MaxAttempts       int                  `yaml:"max_attempts" validate:"gte=1,lte=10"`
	WaitUntil         models.LoadCondition `yaml:"wait_until" validate:"required"`
	Stabilize         bool                 `yaml:"stabilize"`
	Format            models.MediaType     `yaml:"format" validate:"required"`
	Quality           int                  `yaml:"quality" validate:"gte=1,lte=100"`
	MaxWidth          int                  `yaml:"max_width" validate:"gte=0"`
}

// BrowserConfig configures the headless browser
type BrowserConfig struct {
	Headless       *bool    `yaml:"headless"`
	ExecutablePath string   `yaml:"executable_path"`
	Args           []string `yaml:"args"`
	InstallDriver  bool     `yaml:"install_driver"`
}

// StorageConfig configures the object storage backend
type StorageConfig struct {
	Bucket             string `yaml:"bucket" validate:"required"`
	Region             string `yaml:"region" validate:"required"`
	Endpoint           string `yaml:"endpoint" validate:"omitempty,url"`
	UsePathStyle       bool   `yaml:"use_path_style"`
	Access             string `yaml:"access" validate:"oneof=signed public"`
	SignedURLTTL       int    `yaml:"signed_url_ttl" validate:"gte=1,lte=604800"` // seconds
	PublicURLTemplate  string `yaml:"public_url_template"`
	ConditionalPut     bool   `yaml:"conditional_put"`
	StoreFailurePolicy string `yaml:"store_failure_policy" validate:"oneof=error inline"`
	RequestTimeout     int    `yaml:"request_timeout" validate:"gte=1"` // milliseconds
}

// L1Config configures the in-process existence index
type L1Config struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size" validate:"gte=0"` // MB
	TTL     int  `yaml:"ttl" validate:"gte=0"`  // seconds
}

// L2Config configures the shared existence index
type L2Config struct {
	Enabled    bool             `yaml:"enabled"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
	TTL        int              `yaml:"ttl" validate:"gte=0"` // seconds
	KeyPrefix  string           `yaml:"key_prefix"`
}

// ConnectionConfig holds connection timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout"`
	SendTimeout    int `yaml:"send_timeout"`
	ReadTimeout    int `yaml:"read_timeout"`
}

// KeepaliveConfig holds connection pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size"`
	MaxIdleTimeout int `yaml:"max_idle_timeout"` // milliseconds
}

// OrchestratorConfig configures request handling
type OrchestratorConfig struct {
	// CollapseMisses shares one capture between concurrent misses for the same key in this process
	CollapseMisses bool `yaml:"collapse_misses"`
}

var validate = validator.New()

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	// Apply defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30000
	}
	// A miss renders a page with retries, so writes get more room than reads
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 120000
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30000
	}

	if c.Capture.Viewport.Width == 0 {
		c.Capture.Viewport.Width = 1280
	}
	if c.Capture.Viewport.Height == 0 {
		c.Capture.Viewport.Height = 1000
	}
	if c.Capture.NavigationTimeout == 0 {
		c.Capture.NavigationTimeout = 30000
	}
	if c.Capture.MaxAttempts == 0 {
		c.Capture.MaxAttempts = 3
	}
	if c.Capture.WaitUntil == "" {
		c.Capture.WaitUntil = models.LoadConditionDOMContentLoaded
	}
	if c.Capture.Format == "" {
		c.Capture.Format = models.MediaTypeJPEG
	}
	if c.Capture.Quality == 0 {
		c.Capture.Quality = 30
	}

	if c.Browser.Headless == nil {
		headless := true
		c.Browser.Headless = &headless
	}
	if c.Browser.Args == nil {
		c.Browser.Args = append([]string(nil), DefaultBrowserArgs...)
	}

	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.Storage.Access == "" {
		c.Storage.Access = AccessSigned
	}
	if c.Storage.SignedURLTTL == 0 {
		c.Storage.SignedURLTTL = 3600
	}
	if c.Storage.PublicURLTemplate == "" {
		c.Storage.PublicURLTemplate = "https://{bucket}.s3.{region}.amazonaws.com/{key}"
	}
	if c.Storage.StoreFailurePolicy == "" {
		c.Storage.StoreFailurePolicy = StoreFailureError
	}
	if c.Storage.RequestTimeout == 0 {
		c.Storage.RequestTimeout = 10000
	}

	if c.L1.Size == 0 {
		c.L1.Size = 16
	}
	if c.L1.TTL == 0 {
		c.L1.TTL = 600
	}

	if c.L2.Connection.ConnectTimeout == 0 {
		c.L2.Connection.ConnectTimeout = 1000
	}
	if c.L2.Connection.SendTimeout == 0 {
		c.L2.Connection.SendTimeout = 1000
	}
	if c.L2.Connection.ReadTimeout == 0 {
		c.L2.Connection.ReadTimeout = 1000
	}
	if c.L2.Keepalive.PoolSize == 0 {
		c.L2.Keepalive.PoolSize = 10
	}
	if c.L2.Keepalive.MaxIdleTimeout == 0 {
		c.L2.Keepalive.MaxIdleTimeout = 10000
	}
	if c.L2.TTL == 0 {
		c.L2.TTL = 3600
	}
	if c.L2.KeyPrefix == "" {
		c.L2.KeyPrefix = "screenshot-index:"
	}
}

// CaptureOptions builds the per-capture options from configuration
func (c *Config) CaptureOptions() models.CaptureOptions {
	return models.CaptureOptions{
		Viewport:          c.Capture.Viewport,
		NavigationTimeout: time.Duration(c.Capture.NavigationTimeout) * time.Millisecond,
		MaxAttempts:       c.Capture.MaxAttempts,
		WaitUntil:         c.Capture.WaitUntil,
		Stabilize:         c.Capture.Stabilize,
		Format:            c.Capture.Format,
		Quality:           c.Capture.Quality,
		MaxWidth:          c.Capture.MaxWidth,
	}
}

// GetSignedURLTTL returns the lifetime of signed access references
func (c *Config) GetSignedURLTTL() time.Duration {
	return time.Duration(c.Storage.SignedURLTTL) * time.Second
}

// GetStorageTimeout returns the per-request storage timeout
func (c *Config) GetStorageTimeout() time.Duration {
	return time.Duration(c.Storage.RequestTimeout) * time.Millisecond
}

// GetL1TTL returns how long the in-process index remembers a key
func (c *Config) GetL1TTL() time.Duration {
	return time.Duration(c.L1.TTL) * time.Second
}

// GetL2TTL returns how long the shared index remembers a key
func (c *Config) GetL2TTL() time.Duration {
	return time.Duration(c.L2.TTL) * time.Second
}

// GetConnectTimeout returns connection timeout as time.Duration
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns send timeout as time.Duration
func (c *Config) GetSendTimeout() time.Duration {
	return time.Duration(c.L2.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns read timeout as time.Duration
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns max idle timeout as time.Duration
func (c *Config) GetMaxIdleTimeout() time.Duration {
	return time.Duration(c.L2.Keepalive.MaxIdleTimeout) * time.Millisecond
}

// GetServerTimeouts returns read, write and shutdown timeouts
func (c *Config) GetServerTimeouts() (read, write, shutdown time.Duration) {
	return time.Duration(c.Server.ReadTimeout) * time.Millisecond,
		time.Duration(c.Server.WriteTimeout) * time.Millisecond,
		time.Duration(c.Server.ShutdownTimeout) * time.Millisecond
}
