package interfaces

// KeyDeriver turns capture URLs into deterministic storage keys
type KeyDeriver interface {
	// Derive returns the cache key for a URL or an InvalidInputError
	Derive(rawURL string) (string, error)
}
