package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultConfigPath   = "/app/screenshot_config.yaml"
	defaultRedisURLFile = "/app/.redis-url"
	defaultRedisURL     = "redis://keydb:6379"
)

// GetConfigPath returns the config file path from SCREENSHOT_CONFIG_FILE or the default
func GetConfigPath() string {
	if path := os.Getenv("SCREENSHOT_CONFIG_FILE"); path != "" {
		return path
	}
	return defaultConfigPath
}

// GetRedisURL returns the L2 index URL with the following priority:
// 1. REDIS_URL environment variable
// 2. SCREENSHOT_REDIS_URL_FILE file content
// 3. Default value
func GetRedisURL(logger *zap.Logger) string {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		logger.Debug("Using Redis URL from environment variable")
		return redisURL
	}

	connectionFile := os.Getenv("SCREENSHOT_REDIS_URL_FILE")
	if connectionFile == "" {
		connectionFile = defaultRedisURLFile
	}

	if content, err := os.ReadFile(connectionFile); err == nil {
		if redisURL := strings.TrimSpace(string(content)); redisURL != "" {
			logger.Debug("Using Redis URL from connection file", zap.String("file", connectionFile))
			return redisURL
		}
	} else {
		logger.Debug("Redis connection file not found", zap.String("file", connectionFile))
	}

	logger.Debug("Using default Redis URL")
	return defaultRedisURL
}
