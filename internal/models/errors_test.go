package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("net::ERR_TIMED_OUT")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing url",
			err:  &InvalidInputError{Reason: "url is required"},
			want: "invalid input: url is required",
		},
		{
			name: "malformed url",
			err:  &InvalidInputError{URL: "nope", Reason: "missing scheme"},
			want: `invalid input "nope": missing scheme`,
		},
		{
			name: "timeout",
			err:  &CaptureTimeoutError{URL: "https://example.com", Attempts: 3, Err: cause},
			want: "failed to load https://example.com after 3 attempts: net::ERR_TIMED_OUT",
		},
		{
			name: "engine",
			err:  &CaptureEngineError{Stage: "launch", Err: cause},
			want: "capture engine launch failed: net::ERR_TIMED_OUT",
		},
		{
			name: "storage",
			err:  &StorageError{Op: "exists", Key: "screenshots/a/index.jpg", Err: cause},
			want: "storage exists screenshots/a/index.jpg: net::ERR_TIMED_OUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, &CaptureTimeoutError{Err: cause}, cause)
	assert.ErrorIs(t, &CaptureEngineError{Err: cause}, cause)
	assert.ErrorIs(t, &StorageError{Err: cause}, cause)
}

func TestIsInvalidInput(t *testing.T) {
	wrapped := fmt.Errorf("derive key: %w", &InvalidInputError{Reason: "bad"})

	assert.True(t, IsInvalidInput(wrapped))
	assert.False(t, IsInvalidInput(&StorageError{Err: errors.New("x")}))
	assert.False(t, IsInvalidInput(nil))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "jpg", MediaTypeJPEG.Extension())
	assert.Equal(t, "png", MediaTypePNG.Extension())
	assert.Equal(t, "image/jpeg", MediaTypeJPEG.ContentType())
	assert.Equal(t, "image/png", MediaTypePNG.ContentType())
}
