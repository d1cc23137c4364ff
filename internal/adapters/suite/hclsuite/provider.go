package hclsuite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/olusolaa/visual-drift-detector/internal/adapters/suite/steps"
	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const ProviderTypeHCL = "hcl"

type suiteFile struct {
	Router string     `hcl:"router,optional"`
	Tests  []testSpec `hcl:"test,block"`
}

type testSpec struct {
	Name   string     `hcl:"name,label"`
	Route  string     `hcl:"route,optional"`
	Router string     `hcl:"router,optional"`
	Steps  []stepSpec `hcl:"step,block"`
}

type stepSpec struct {
	Action   string `hcl:"action,label"`
	Selector string `hcl:"selector,optional"`
	Value    string `hcl:"value,optional"`
	Path     string `hcl:"path,optional"`
	Duration string `hcl:"duration,optional"`
}

type Provider struct {
	path   string
	logger ports.Logger
}

func NewProvider(path string, logger ports.Logger) (*Provider, error) {
	if path == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "HCL suite path is required",
			"Set suite.path in the configuration or pass --suite.")
	}
	return &Provider{
		path:   path,
		logger: logger.WithFields(map[string]any{"component": "hcl_suite", "path": path}),
	}, nil
}

func (p *Provider) Type() string {
	return ProviderTypeHCL
}

func (p *Provider) Load(ctx context.Context) ([]domain.TestCase, error) {
	src, err := os.ReadFile(p.path)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeSuiteReadError,
			fmt.Sprintf("cannot read suite file %s", p.path), "Check suite.path and file permissions.")
	}

	// hclsimple picks the syntax from the extension.
	filename := p.path
	if ext := filepath.Ext(filename); ext != ".hcl" && ext != ".json" {
		filename += ".hcl"
	}

	var file suiteFile
	if err := hclsimple.Decode(filename, src, evalContext(), &file); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeSuiteParseError,
			fmt.Sprintf("invalid suite file %s", p.path), "Fix the HCL diagnostics reported above.")
	}

	tests, err := convert(file)
	if err != nil {
		return nil, err
	}

	cases, err := steps.Compile(tests, domain.RouterMode(file.Router))
	if err != nil {
		return nil, err
	}
	p.logger.Debugf(ctx, "Loaded %d tests", len(cases))
	return cases, nil
}

func convert(file suiteFile) ([]steps.Test, error) {
	tests := make([]steps.Test, 0, len(file.Tests))
	for _, t := range file.Tests {
		test := steps.Test{
			Name:   t.Name,
			Route:  t.Route,
			Router: domain.RouterMode(t.Router),
			Steps:  make([]steps.Step, 0, len(t.Steps)),
		}
		for i, s := range t.Steps {
			step := steps.Step{
				Action:   steps.Action(s.Action),
				Selector: s.Selector,
				Value:    s.Value,
				Path:     s.Path,
			}
			if s.Duration != "" {
				d, err := time.ParseDuration(s.Duration)
				if err != nil {
					return nil, errors.Newf(errors.CodeSuiteParseError, "test %q step %d: invalid duration %q", t.Name, i+1, s.Duration)
				}
				step.Duration = d
			}
			test.Steps = append(test.Steps, step)
		}
		tests = append(tests, test)
	}
	return tests, nil
}
