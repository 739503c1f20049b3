package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/models"
)

func TestWaitUntilState(t *testing.T) {
	tests := []struct {
		condition models.LoadCondition
		want      *playwright.WaitUntilState
	}{
		{models.LoadConditionLoad, playwright.WaitUntilStateLoad},
		{models.LoadConditionDOMContentLoaded, playwright.WaitUntilStateDomcontentloaded},
		{models.LoadConditionNetworkIdle, playwright.WaitUntilStateNetworkidle},
		{models.LoadConditionCommit, playwright.WaitUntilStateCommit},
		{"", playwright.WaitUntilStateDomcontentloaded},
	}

	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			assert.Equal(t, tt.want, waitUntilState(tt.condition))
		})
	}
}

func TestLaunchOptions(t *testing.T) {
	headless := false
	opts := launchOptions(&config.BrowserConfig{
		Headless:       &headless,
		ExecutablePath: "/usr/bin/chromium",
		Args:           config.DefaultBrowserArgs,
	})

	assert.Equal(t, []string{"--disable-gpu", "--disable-dev-shm-usage"}, opts.Args)
	if assert.NotNil(t, opts.Headless) {
		assert.False(t, *opts.Headless)
	}
	if assert.NotNil(t, opts.ExecutablePath) {
		assert.Equal(t, "/usr/bin/chromium", *opts.ExecutablePath)
	}
}

func TestLaunchOptions_Defaults(t *testing.T) {
	opts := launchOptions(&config.BrowserConfig{})

	assert.Nil(t, opts.Headless)
	assert.Nil(t, opts.ExecutablePath)
	assert.Empty(t, opts.Args)
}
