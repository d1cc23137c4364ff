package hclsuite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	portsmocks "github.com/olusolaa/visual-drift-detector/internal/core/ports/mocks"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

func newLogger(t *testing.T) *portsmocks.Logger {
	l := portsmocks.NewLogger(t)
	l.On("WithFields", mock.Anything).Return(l).Maybe()
	l.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe()
	return l
}

func writeSuite(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProviderLoad(t *testing.T) {
	t.Setenv("VISUAL_DRIFT_SEARCH_TERM", "trail shoes")

	p, err := NewProvider("testdata/shop.suite.hcl", newLogger(t))
	require.NoError(t, err)
	assert.Equal(t, ProviderTypeHCL, p.Type())

	cases, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "search results", cases[1].Name)
	assert.Equal(t, "/account", cases[2].Route)
	assert.Equal(t, domain.RouterHash, cases[2].Router)

	ctx := context.Background()
	page := portsmocks.NewPage(t)
	page.On("Goto", ctx, "https://shop.example/search").Return(nil).Once()
	page.On("Fill", ctx, "#q", "trail shoes").Return(nil).Once()
	page.On("Click", ctx, "button[type=submit]").Return(nil).Once()
	page.On("Screenshot", ctx, "out/search_results-screenshot-1.png", true).Return(nil).Once()
	page.On("Wait", ctx, 500.0).Return(nil).Once()
	page.On("URL").Return("https://shop.example/search?q=trail+shoes").Once()
	page.On("Screenshot", ctx, "out/search_results.png", true).Return(nil).Once()

	err = cases[1].Body(ctx, page, "https://shop.example", "out/search_results.png", func(string, ...any) {})
	require.NoError(t, err)
}

func TestProviderLoadErrors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		p, err := NewProvider(filepath.Join(t.TempDir(), "missing.hcl"), newLogger(t))
		require.NoError(t, err)
		_, err = p.Load(context.Background())
		assert.Equal(t, errors.CodeSuiteReadError, errors.GetCode(err))
	})

	t.Run("Syntax Error", func(t *testing.T) {
		p, err := NewProvider(writeSuite(t, "bad.hcl", `test "a" {`), newLogger(t))
		require.NoError(t, err)
		_, err = p.Load(context.Background())
		assert.Equal(t, errors.CodeSuiteParseError, errors.GetCode(err))
	})

	t.Run("Bad Duration", func(t *testing.T) {
		src := "test \"a\" {\n  step \"wait\" {\n    duration = \"later\"\n  }\n}\n"
		p, err := NewProvider(writeSuite(t, "suite.hcl", src), newLogger(t))
		require.NoError(t, err)
		_, err = p.Load(context.Background())
		assert.Equal(t, errors.CodeSuiteParseError, errors.GetCode(err))
	})

	t.Run("Non HCL Extension", func(t *testing.T) {
		p, err := NewProvider(writeSuite(t, "suite.conf", "test \"a\" {\n  route = \"/a\"\n}\n"), newLogger(t))
		require.NoError(t, err)
		cases, err := p.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, cases, 1)
	})
}

func TestEnvFunc(t *testing.T) {
	t.Setenv("VISUAL_DRIFT_SET", "yes")

	v, err := EnvFunc.Call([]cty.Value{cty.StringVal("VISUAL_DRIFT_SET")})
	require.NoError(t, err)
	assert.Equal(t, "yes", v.AsString())

	v, err = EnvFunc.Call([]cty.Value{cty.StringVal("VISUAL_DRIFT_UNSET_VAR"), cty.StringVal("fallback")})
	require.NoError(t, err)
	assert.Equal(t, "fallback", v.AsString())

	v, err = EnvFunc.Call([]cty.Value{cty.StringVal("VISUAL_DRIFT_UNSET_VAR")})
	require.NoError(t, err)
	assert.Equal(t, "", v.AsString())
}
