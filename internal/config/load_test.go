package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const sampleConfig = `
environments:
  live:
    base_url: https://shop.example.com
  dev:
    base_url: http://localhost:3000
execution:
  parallel: false
  max_concurrency: 2
  viewport: 1440x900
  navigation_timeout: 45s
comparison:
  threshold: 0.25
suite:
  path: suites/shop.hcl
settings:
  reporters: [text, json]
  reporter_config:
    json:
      path: out/report.json
publish:
  s3:
    bucket: drift-artifacts
    prefix: nightly
`

func readConfig(t *testing.T, content string) *viper.Viper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visual-drift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return v
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("File", func(t *testing.T) {
		cfg, err := Load(ctx, readConfig(t, sampleConfig))
		require.NoError(t, err)

		assert.Equal(t, "https://shop.example.com", cfg.BaseURL(domain.EnvironmentLive))
		assert.Equal(t, "http://localhost:3000", cfg.BaseURL(domain.EnvironmentDev))
		assert.False(t, cfg.Execution.Parallel)
		assert.Equal(t, 2, cfg.Execution.MaxConcurrency)
		assert.Equal(t, domain.Viewport{Width: 1440, Height: 900}, cfg.Execution.Viewport)
		assert.Equal(t, 45*time.Second, cfg.Execution.NavigationTimeout)
		assert.Equal(t, 0.25, cfg.Comparison.Threshold)
		assert.Equal(t, SuiteTypeHCL, cfg.SuiteType())
		assert.Equal(t, []string{"text", "json"}, cfg.Settings.Reporters)
		assert.Equal(t, "out/report.json", cfg.Settings.Reporter.JSON.Path)
		assert.True(t, cfg.PublishEnabled())
		assert.Equal(t, "nightly", cfg.Publish.S3.Prefix)

		assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
		assert.Equal(t, "chromium", cfg.Execution.Browser.Engine)
	})

	t.Run("Environment", func(t *testing.T) {
		t.Setenv("VISUALDRIFT_ENVIRONMENTS_LIVE_BASE_URL", "https://live.example.com")
		t.Setenv("VISUALDRIFT_ENVIRONMENTS_DEV_BASE_URL", "http://127.0.0.1:8080")
		t.Setenv("VISUALDRIFT_EXECUTION_NAVIGATION_TIMEOUT", "5s")

		v := viper.New()
		v.SetEnvPrefix("VISUALDRIFT")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		cfg, err := Load(ctx, v)
		require.NoError(t, err)
		assert.Equal(t, "https://live.example.com", cfg.Environments.Live.BaseURL)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.Environments.Dev.BaseURL)
		assert.Equal(t, 5*time.Second, cfg.Execution.NavigationTimeout)
		assert.False(t, cfg.PublishEnabled())
	})

	t.Run("Validation Errors", func(t *testing.T) {
		tests := []struct {
			name  string
			key   string
			value any
		}{
			{"bad url", "environments.live.base_url", "not a url"},
			{"negative concurrency", "execution.max_concurrency", -1},
			{"threshold above one", "comparison.threshold", 1.5},
			{"unknown reporter", "settings.reporters", []string{"html"}},
			{"unknown suite type", "suite.type", "toml"},
			{"unknown log level", "settings.log_level", "verbose"},
			{"zero viewport", "execution.viewport", "0x720"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v := readConfig(t, sampleConfig)
				v.Set(tt.key, tt.value)

				_, err := Load(ctx, v)
				require.Error(t, err)
				assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
				msg, _, userFacing := errors.GetUserFacingMessage(err)
				assert.True(t, userFacing)
				assert.Contains(t, msg, "Configuration validation failed")
			})
		}
	})

	t.Run("Bad Viewport", func(t *testing.T) {
		v := readConfig(t, sampleConfig)
		v.Set("execution.viewport", "wide")

		_, err := Load(ctx, v)
		assert.Equal(t, errors.CodeConfigParseError, errors.GetCode(err))
	})
}

func TestParseViewport(t *testing.T) {
	vp, err := ParseViewport(" 1920X1080 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Viewport{Width: 1920, Height: 1080}, vp)

	for _, bad := range []string{"", "1920", "ax1080", "1920xb"} {
		_, err := ParseViewport(bad)
		assert.Error(t, err, bad)
	}
}

func TestSuiteType(t *testing.T) {
	tests := []struct {
		path, explicit, expected string
	}{
		{"suite.yaml", "", SuiteTypeYAML},
		{"suite.yml", "", SuiteTypeYAML},
		{"Suite.HCL", "", SuiteTypeHCL},
		{"suite.txt", "", SuiteTypeYAML},
		{"suite.yaml", SuiteTypeHCL, SuiteTypeHCL},
	}
	for _, tt := range tests {
		cfg := Config{Suite: SuiteConfig{Path: tt.path, Type: tt.explicit}}
		assert.Equal(t, tt.expected, cfg.SuiteType(), tt.path)
	}
}
