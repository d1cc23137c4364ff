package yamlsuite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olusolaa/visual-drift-detector/internal/adapters/suite/steps"
	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const ProviderTypeYAML = "yaml"

type suiteFile struct {
	Router domain.RouterMode `yaml:"router"`
	Tests  []steps.Test      `yaml:"tests"`
}

type Provider struct {
	path   string
	logger ports.Logger
}

func NewProvider(path string, logger ports.Logger) (*Provider, error) {
	if path == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "YAML suite path is required",
			"Set suite.path in the configuration or pass --suite.")
	}
	return &Provider{
		path:   path,
		logger: logger.WithFields(map[string]any{"component": "yaml_suite", "path": path}),
	}, nil
}

func (p *Provider) Type() string {
	return ProviderTypeYAML
}

func (p *Provider) Load(ctx context.Context) ([]domain.TestCase, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeSuiteReadError,
			fmt.Sprintf("cannot read suite file %s", p.path), "Check suite.path and file permissions.")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file suiteFile
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, errors.WrapUserFacing(err, errors.CodeSuiteParseError,
			fmt.Sprintf("invalid suite file %s", p.path), "Fix the YAML syntax reported above.")
	}

	cases, err := steps.Compile(file.Tests, file.Router)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf(ctx, "Loaded %d tests", len(cases))
	return cases, nil
}
