package models

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists is returned by a conditional put when the key is already present
var ErrAlreadyExists = errors.New("object already exists")

// InvalidInputError reports a missing or malformed capture URL
type InvalidInputError struct {
	URL    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input %q: %s", e.URL, e.Reason)
}

// CaptureTimeoutError reports that navigation failed on every attempt
type CaptureTimeoutError struct {
	URL      string
	Attempts int
	Err      error // last navigation error
}

func (e *CaptureTimeoutError) Error() string {
	return fmt.Sprintf("failed to load %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *CaptureTimeoutError) Unwrap() error {
	return e.Err
}

// CaptureEngineError reports a browser failure unrelated to navigation
type CaptureEngineError struct {
	Stage string // launch, page, stabilize, render, encode
	Err   error
}

func (e *CaptureEngineError) Error() string {
	return fmt.Sprintf("capture engine %s failed: %v", e.Stage, e.Err)
}

func (e *CaptureEngineError) Unwrap() error {
	return e.Err
}

// StorageError reports an object storage failure other than not-found
type StorageError struct {
	Op  string // exists, store, reference
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err is or wraps an InvalidInputError
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
