package config

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

// envKeys are bound explicitly so environment variables reach Unmarshal even
// when the key appears in no config file or flag.
var envKeys = []string{
	"environments.live.base_url",
	"environments.dev.base_url",
	"suite.path",
	"suite.type",
	"output_dir",
	"settings.log_level",
	"settings.log_format",
	"settings.log_output",
	"settings.fail_on_diff",
	"settings.metrics_textfile",
	"execution.parallel",
	"execution.max_concurrency",
	"execution.viewport",
	"execution.navigation_timeout",
	"execution.navigation_rps",
	"execution.browser.engine",
	"execution.browser.headless",
	"comparison.threshold",
	"publish.s3.bucket",
	"publish.s3.prefix",
	"publish.s3.region",
}

// Load decodes v over DefaultConfig and validates the result.
func Load(ctx context.Context, v *viper.Viper) (*Config, error) {
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigReadError, fmt.Sprintf("failed to bind environment for %s", key))
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(DecodeHook())); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}
	if err := Validate(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		viewportHook,
	)
}

// viewportHook accepts "1280x720" wherever a domain.Viewport is expected.
func viewportHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(domain.Viewport{}) {
		return data, nil
	}
	return ParseViewport(data.(string))
}

func ParseViewport(s string) (domain.Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return domain.Viewport{}, fmt.Errorf("viewport %q must look like WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return domain.Viewport{}, fmt.Errorf("viewport width %q: %w", w, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return domain.Viewport{}, fmt.Errorf("viewport height %q: %w", h, err)
	}
	return domain.Viewport{Width: width, Height: height}, nil
}

func Validate(ctx context.Context, cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.CodeConfigValidation, "configuration validation failed")
	}
	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	for _, fe := range validationErrors {
		details.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file, environment variables or flags.")
}
