package noop

import (
	"testing"
	"time"

	"go-screenshot-cache/internal/interfaces"
)

func TestNewNoOpIndex(t *testing.T) {
	idx := NewNoOpIndex()

	// Verify it implements the ExistenceIndex interface
	var _ interfaces.ExistenceIndex = idx

	if _, ok := idx.(*NoOpIndex); !ok {
		t.Errorf("NewNoOpIndex() should return a *NoOpIndex instance")
	}
}

func TestNoOpIndex_MarkThenHas(t *testing.T) {
	idx := NewNoOpIndex()

	testCases := []string{
		"screenshots/example.com/index.jpg",
		"",
		"key-with-special-characters-!@#$%^&*()",
	}

	for _, key := range testCases {
		t.Run("key="+key, func(t *testing.T) {
			idx.Mark(key, time.Hour)

			if idx.Has(key) {
				t.Errorf("Has(%q) = true, want false", key)
			}
		})
	}
}
