package service

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const (
	// DifferenceEpsilon is the diff percentage above which a pair is reported
	// as different. It is independent of the per-pixel threshold.
	DifferenceEpsilon = 0.01

	// MismatchPercentage is reported for pairs that could not be compared.
	MismatchPercentage = 100.0
)

// Comparator pairs live and dev results by route and classifies each
// screenshot pair.
type Comparator struct {
	pixels    ports.PixelComparator
	codec     ports.ImageCodec
	threshold float64
	logger    ports.Logger
}

func NewComparator(pixels ports.PixelComparator, codec ports.ImageCodec, threshold float64, logger ports.Logger) (*Comparator, error) {
	if pixels == nil || codec == nil {
		return nil, errors.New(errors.CodeConfigValidation, "comparator requires a pixel comparator and an image codec")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for comparator")
	}
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("comparison threshold %v is out of range", threshold), "Use a value between 0 and 1.")
	}
	return &Comparator{pixels: pixels, codec: codec, threshold: threshold, logger: logger}, nil
}

type screenshotPair struct {
	route string
	index int
	live  string
	dev   string
}

func (p screenshotPair) label() string {
	if p.index == 0 {
		return p.route
	}
	return fmt.Sprintf("%s (screenshot %d)", p.route, p.index)
}

// Compare emits one ComparisonResult per screenshot pair of every route
// present in both live and dev. Pairs that cannot be compared are reported
// as a total mismatch; only context cancellation stops the batch early.
func (c *Comparator) Compare(ctx context.Context, live, dev []domain.TestResult, outputDir string) ([]domain.ComparisonResult, error) {
	devByRoute := make(map[string]domain.TestResult, len(dev))
	for _, r := range dev {
		if _, dup := devByRoute[r.Route]; dup {
			c.logger.Warnf(ctx, "Duplicate dev result for route %s, keeping the first", r.Route)
			continue
		}
		devByRoute[r.Route] = r
	}

	diffDir := filepath.Join(outputDir, domain.DiffsDir)
	if err := os.MkdirAll(diffDir, 0o755); err != nil {
		c.logger.Errorf(ctx, err, "Cannot create diff directory %s", diffDir)
	}

	results := make([]domain.ComparisonResult, 0, len(live))
	for _, l := range live {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		d, ok := devByRoute[l.Route]
		if !ok {
			c.logger.Debugf(ctx, "No dev result for route %s, skipping", l.Route)
			continue
		}
		for _, pair := range c.resolvePairs(l, d) {
			results = append(results, c.comparePair(ctx, pair, diffDir))
		}
	}
	return results, nil
}

// resolvePairs probes for numbered checkpoint captures and falls back to the
// primary screenshots when there are none.
func (c *Comparator) resolvePairs(live, dev domain.TestResult) []screenshotPair {
	var series []screenshotPair
	for n := 1; ; n++ {
		lp, dp := domain.SeriesPath(live.Screenshot, n), domain.SeriesPath(dev.Screenshot, n)
		if !fileExists(lp) && !fileExists(dp) {
			break
		}
		series = append(series, screenshotPair{route: live.Route, index: n, live: lp, dev: dp})
	}
	if len(series) > 0 {
		return series
	}
	return []screenshotPair{{route: live.Route, live: live.Screenshot, dev: dev.Screenshot}}
}

func (c *Comparator) comparePair(ctx context.Context, p screenshotPair, diffDir string) (result domain.ComparisonResult) {
	result = domain.ComparisonResult{
		Route:          p.label(),
		SeriesIndex:    p.index,
		LiveScreenshot: p.live,
		DevScreenshot:  p.dev,
	}
	log := c.logger.WithFields(map[string]any{"route": result.Route})

	mismatch := func(err error) domain.ComparisonResult {
		log.Warnf(ctx, "Treating pair as total mismatch: %v", err)
		return domain.ComparisonResult{
			Route:          result.Route,
			SeriesIndex:    result.SeriesIndex,
			LiveScreenshot: result.LiveScreenshot,
			DevScreenshot:  result.DevScreenshot,
			DiffPercentage: MismatchPercentage,
			HasDifferences: true,
			Error:          err.Error(),
		}
	}

	for _, path := range []string{p.live, p.dev} {
		if !fileExists(path) {
			return mismatch(errors.Newf(errors.CodeComparisonError, "screenshot %s is missing", path))
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = mismatch(errors.Newf(errors.CodeComparisonError, "comparison panicked: %v", r))
		}
	}()

	pct, diff, err := c.measure(ctx, p)
	if err != nil {
		return mismatch(err)
	}
	result.DiffPercentage = pct
	result.HasDifferences = pct > DifferenceEpsilon

	diffPath := domain.DiffPath(diffDir, p.live)
	if !result.HasDifferences {
		// A stale artifact from an earlier run would contradict the verdict.
		if rmErr := os.Remove(diffPath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warnf(ctx, "Cannot remove stale diff %s: %v", diffPath, rmErr)
		}
		log.Debugf(ctx, "No differences (%.2f%%)", pct)
		return result
	}

	if err := c.codec.Encode(diffPath, diff); err != nil {
		return mismatch(err)
	}
	result.DiffScreenshot = diffPath
	log.Infof(ctx, "Differences found: %.2f%%, diff written to %s", pct, diffPath)
	return result
}

// measure decodes both screenshots, crops them to their shared area and
// returns the rounded differing-pixel percentage with the diff image.
func (c *Comparator) measure(ctx context.Context, p screenshotPair) (float64, image.Image, error) {
	a, err := c.codec.Decode(p.live)
	if err != nil {
		return 0, nil, err
	}
	b, err := c.codec.Decode(p.dev)
	if err != nil {
		return 0, nil, err
	}

	if a.Bounds().Size() != b.Bounds().Size() {
		c.logger.Debugf(ctx, "Size mismatch for %s: %v vs %v, comparing the intersection",
			p.label(), a.Bounds().Size(), b.Bounds().Size())
		a, b = cropToIntersection(a, b)
	}

	total := a.Bounds().Dx() * a.Bounds().Dy()
	if total == 0 {
		return 0, nil, nil
	}

	count, diff, err := c.pixels.Compare(a, b, c.threshold)
	if err != nil {
		return 0, nil, errors.Wrap(err, errors.CodeComparisonError, "pixel comparison failed")
	}
	return roundPercent(float64(count) / float64(total) * 100), diff, nil
}

func cropToIntersection(a, b image.Image) (image.Image, image.Image) {
	w := min(a.Bounds().Dx(), b.Bounds().Dx())
	h := min(a.Bounds().Dy(), b.Bounds().Dy())
	return crop(a, w, h), crop(b, w, h)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, w, h int) image.Image {
	origin := img.Bounds().Min
	r := image.Rect(origin.X, origin.Y, origin.X+w, origin.Y+h)
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, origin, draw.Src)
	return dst
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
