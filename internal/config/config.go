package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/olusolaa/visual-drift-detector/internal/adapters/browser/playwright"
	"github.com/olusolaa/visual-drift-detector/internal/adapters/publish/s3"
	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/log"
	"github.com/olusolaa/visual-drift-detector/internal/reporting/json"
	"github.com/olusolaa/visual-drift-detector/internal/reporting/text"
)

const (
	SuiteTypeYAML = "yaml"
	SuiteTypeHCL  = "hcl"

	DefaultThreshold         = 0.1
	DefaultNavigationTimeout = 30 * time.Second
	DefaultOutputDir         = "visual-drift-results"
)

type Config struct {
	Settings     SettingsConfig     `yaml:"settings" mapstructure:"settings"`
	Environments EnvironmentsConfig `yaml:"environments" mapstructure:"environments"`
	Execution    ExecutionConfig    `yaml:"execution" mapstructure:"execution"`
	Comparison   ComparisonConfig   `yaml:"comparison" mapstructure:"comparison"`
	Suite        SuiteConfig        `yaml:"suite" mapstructure:"suite"`
	Publish      PublishConfig      `yaml:"publish" mapstructure:"publish"`
	OutputDir    string             `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
}

type SettingsConfig struct {
	LogLevel        log.Level       `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat       log.Format      `yaml:"log_format" mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	LogOutput       string          `yaml:"log_output" mapstructure:"log_output"`
	Reporters       []string        `yaml:"reporters" mapstructure:"reporters" validate:"dive,oneof=text json"`
	Reporter        ReporterConfigs `yaml:"reporter_config" mapstructure:"reporter_config"`
	FailOnDiff      bool            `yaml:"fail_on_diff" mapstructure:"fail_on_diff"`
	MetricsTextfile string          `yaml:"metrics_textfile" mapstructure:"metrics_textfile"`
	Progress        bool            `yaml:"progress" mapstructure:"progress"`
}

type EnvironmentsConfig struct {
	Live EnvironmentConfig `yaml:"live" mapstructure:"live"`
	Dev  EnvironmentConfig `yaml:"dev" mapstructure:"dev"`
}

type EnvironmentConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
}

type ExecutionConfig struct {
	Parallel          bool              `yaml:"parallel" mapstructure:"parallel"`
	MaxConcurrency    int               `yaml:"max_concurrency" mapstructure:"max_concurrency" validate:"gte=0"`
	Viewport          domain.Viewport   `yaml:"viewport" mapstructure:"viewport"`
	NavigationTimeout time.Duration     `yaml:"navigation_timeout" mapstructure:"navigation_timeout" validate:"gte=0"`
	NavigationRPS     int               `yaml:"navigation_rps" mapstructure:"navigation_rps" validate:"gte=0"`
	Browser           playwright.Config `yaml:"browser" mapstructure:"browser"`
}

type ComparisonConfig struct {
	// Threshold is the per-pixel colour delta sensitivity handed to the pixel
	// comparator. It does not affect the fixed 0.01% classification epsilon.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold" validate:"gte=0,lte=1"`
}

type SuiteConfig struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
	Type string `yaml:"type" mapstructure:"type" validate:"omitempty,oneof=yaml hcl"`
}

type PublishConfig struct {
	S3 *s3.Config `yaml:"s3,omitempty" mapstructure:"s3"`
}

type ReporterConfigs struct {
	Text *text.Config `yaml:"text,omitempty" mapstructure:"text"`
	JSON *json.Config `yaml:"json,omitempty" mapstructure:"json"`
}

// BaseURL returns the configured base URL for env.
func (c *Config) BaseURL(env domain.Environment) string {
	switch env {
	case domain.EnvironmentLive:
		return c.Environments.Live.BaseURL
	case domain.EnvironmentDev:
		return c.Environments.Dev.BaseURL
	}
	return ""
}

// SuiteType returns the explicit suite type or infers it from the file
// extension. Unknown extensions fall back to YAML.
func (c *Config) SuiteType() string {
	if c.Suite.Type != "" {
		return c.Suite.Type
	}
	switch strings.ToLower(filepath.Ext(c.Suite.Path)) {
	case ".hcl":
		return SuiteTypeHCL
	default:
		return SuiteTypeYAML
	}
}

// PublishEnabled reports whether an S3 bucket is configured.
func (c *Config) PublishEnabled() bool {
	return c.Publish.S3 != nil && c.Publish.S3.Bucket != ""
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:  log.LevelInfo,
			LogFormat: log.FormatText,
			Reporters: []string{text.ReporterTypeText},
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
				JSON: &json.Config{Path: ""},
			},
		},
		Execution: ExecutionConfig{
			Parallel:          true,
			MaxConcurrency:    4,
			Viewport:          domain.DefaultViewport(),
			NavigationTimeout: DefaultNavigationTimeout,
			Browser:           playwright.DefaultConfig(),
		},
		Comparison: ComparisonConfig{
			Threshold: DefaultThreshold,
		},
		Suite: SuiteConfig{
			Path: "visual-drift.suite.yaml",
		},
		OutputDir: DefaultOutputDir,
	}
}
