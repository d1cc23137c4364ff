package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	ScreenshotsDir = "screenshots"
	DiffsDir       = "diffs"

	pngExt       = ".png"
	seriesSuffix = "-screenshot-"
	diffSuffix   = "-diff"
)

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")

// FileName makes a test name safe to use as a single path element.
func FileName(testName string) string {
	name := fileNameReplacer.Replace(strings.TrimSpace(testName))
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	return name
}

func ScreenshotDir(outputDir string, env Environment) string {
	return filepath.Join(outputDir, ScreenshotsDir, string(env))
}

func ScreenshotPath(outputDir string, env Environment, testName string) string {
	return filepath.Join(ScreenshotDir(outputDir, env), FileName(testName)+pngExt)
}

// SeriesPath derives the n-th checkpoint capture from a primary screenshot
// path: home.png -> home-screenshot-2.png.
func SeriesPath(primary string, n int) string {
	return fmt.Sprintf("%s%s%d%s", strings.TrimSuffix(primary, pngExt), seriesSuffix, n, pngExt)
}

func DiffPath(diffDir, liveScreenshot string) string {
	base := strings.TrimSuffix(filepath.Base(liveScreenshot), pngExt)
	return filepath.Join(diffDir, base+diffSuffix+pngExt)
}
