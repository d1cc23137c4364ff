// Package steps turns declarative suite entries into opaque test bodies.
package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

type Action string

const (
	ActionGoto       Action = "goto"
	ActionClick      Action = "click"
	ActionFill       Action = "fill"
	ActionHover      Action = "hover"
	ActionWaitFor    Action = "wait_for"
	ActionWait       Action = "wait"
	ActionScreenshot Action = "screenshot"
)

type Step struct {
	Action   Action        `yaml:"action"`
	Selector string        `yaml:"selector,omitempty"`
	Value    string        `yaml:"value,omitempty"`
	Path     string        `yaml:"path,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
}

type Test struct {
	Name   string            `yaml:"name"`
	Route  string            `yaml:"route"`
	Router domain.RouterMode `yaml:"router,omitempty"`
	Steps  []Step            `yaml:"steps,omitempty"`
}

func (s Step) Validate() error {
	switch s.Action {
	case ActionGoto, ActionScreenshot:
		return nil
	case ActionClick, ActionHover, ActionWaitFor:
		if s.Selector == "" {
			return fmt.Errorf("%s step requires a selector", s.Action)
		}
	case ActionFill:
		if s.Selector == "" {
			return fmt.Errorf("fill step requires a selector")
		}
	case ActionWait:
		if s.Duration <= 0 {
			return fmt.Errorf("wait step requires a positive duration")
		}
	case "":
		return fmt.Errorf("step has no action")
	default:
		return fmt.Errorf("unknown step action %q", s.Action)
	}
	return nil
}

// Compile validates the tests and builds one TestCase per entry. Names and
// routes must be unique because both key screenshot pairing.
func Compile(tests []Test, defaultRouter domain.RouterMode) ([]domain.TestCase, error) {
	if defaultRouter == "" {
		defaultRouter = domain.RouterBrowser
	}

	names := make(map[string]bool, len(tests))
	routes := make(map[string]string, len(tests))
	cases := make([]domain.TestCase, 0, len(tests))

	for i, t := range tests {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return nil, errors.Newf(errors.CodeSuiteParseError, "test #%d has no name", i+1)
		}
		fileName := domain.FileName(t.Name)
		if names[fileName] {
			return nil, errors.Newf(errors.CodeSuiteParseError, "test %q collides with another test name", t.Name)
		}
		names[fileName] = true

		if t.Route == "" {
			t.Route = "/"
		}
		if other, dup := routes[t.Route]; dup {
			return nil, errors.Newf(errors.CodeSuiteParseError, "tests %q and %q share route %s", other, t.Name, t.Route)
		}
		routes[t.Route] = t.Name

		if t.Router == "" {
			t.Router = defaultRouter
		}
		if t.Router != domain.RouterBrowser && t.Router != domain.RouterHash {
			return nil, errors.Newf(errors.CodeSuiteParseError, "test %q: unknown router mode %q", t.Name, t.Router)
		}

		for j, s := range t.Steps {
			if err := s.Validate(); err != nil {
				return nil, errors.Newf(errors.CodeSuiteParseError, "test %q step %d: %v", t.Name, j+1, err)
			}
		}

		cases = append(cases, domain.TestCase{
			Name:   t.Name,
			Route:  t.Route,
			Router: t.Router,
			Body:   body(t),
		})
	}
	return cases, nil
}

// body navigates first unless the steps start with an explicit goto, runs the
// steps in order and ends with a full-page capture to the primary path.
func body(t Test) domain.TestBody {
	steps := append([]Step(nil), t.Steps...)
	if len(steps) == 0 || steps[0].Action != ActionGoto {
		steps = append([]Step{{Action: ActionGoto}}, steps...)
	}

	return func(ctx context.Context, page domain.Page, baseURL, screenshotPath string, log domain.StepLogger) error {
		checkpoint := 0
		for i, s := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			switch s.Action {
			case ActionGoto:
				route := t.Route
				if s.Path != "" {
					route = s.Path
				}
				url := domain.BuildURL(baseURL, route, t.Router)
				log("goto %s", url)
				err = page.Goto(ctx, url)
			case ActionClick:
				log("click %s", s.Selector)
				err = page.Click(ctx, s.Selector)
			case ActionFill:
				log("fill %s", s.Selector)
				err = page.Fill(ctx, s.Selector, s.Value)
			case ActionHover:
				log("hover %s", s.Selector)
				err = page.Hover(ctx, s.Selector)
			case ActionWaitFor:
				log("wait for %s", s.Selector)
				err = page.WaitForSelector(ctx, s.Selector)
			case ActionWait:
				log("wait %s", s.Duration)
				err = page.Wait(ctx, float64(s.Duration.Milliseconds()))
			case ActionScreenshot:
				checkpoint++
				path := domain.SeriesPath(screenshotPath, checkpoint)
				log("screenshot %d -> %s", checkpoint, path)
				err = page.Screenshot(ctx, path, true)
			}
			if err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
			}
		}

		log("capture %s at %s", screenshotPath, page.URL())
		return page.Screenshot(ctx, screenshotPath, true)
	}
}
