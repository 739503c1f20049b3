package cache

import (
	"net/url"
	"strings"

	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/models"
)

// KeyPrefix is the root of the persisted key layout. Changing it orphans every stored capture.
const KeyPrefix = "screenshots"

// rootName replaces the empty path of a root URL
const rootName = "index"

// Ensure KeyDeriverImpl implements interfaces.KeyDeriver
var _ interfaces.KeyDeriver = (*KeyDeriverImpl)(nil)

// KeyDeriverImpl implements the KeyDeriver interface
type KeyDeriverImpl struct {
	format models.MediaType
}

// NewKeyDeriver creates a KeyDeriver producing keys with the extension of format
func NewKeyDeriver(format models.MediaType) interfaces.KeyDeriver {
	return &KeyDeriverImpl{format: format}
}

// Derive builds screenshots/<hostname>/<path-with-underscores>.<ext>
func (kd *KeyDeriverImpl) Derive(rawURL string) (string, error) {
	u, err := ParseTargetURL(rawURL)
	if err != nil {
		return "", err
	}

	// One slash each side, so "/blog//" keeps its inner empty segment
	path := strings.TrimSuffix(strings.TrimPrefix(u.EscapedPath(), "/"), "/")
	path = strings.ReplaceAll(path, "/", "_")
	if path == "" {
		path = rootName
	}

	host := strings.ToLower(u.Hostname())

	return KeyPrefix + "/" + host + "/" + path + "." + kd.format.Extension(), nil
}

// ParseTargetURL checks that rawURL is an absolute http(s) URL with a host
func ParseTargetURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &models.InvalidInputError{Reason: "url is required"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &models.InvalidInputError{URL: rawURL, Reason: err.Error()}
	}

	if !u.IsAbs() {
		return nil, &models.InvalidInputError{URL: rawURL, Reason: "url must be absolute"}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, &models.InvalidInputError{URL: rawURL, Reason: "scheme must be http or https"}
	}

	if u.Hostname() == "" {
		return nil, &models.InvalidInputError{URL: rawURL, Reason: "url must include a host"}
	}

	return u, nil
}
