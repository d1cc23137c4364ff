// Package pixelmatch adapts github.com/orisano/pixelmatch to the
// PixelComparator port.
package pixelmatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	pm "github.com/orisano/pixelmatch"

	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

type Options struct {
	// IncludeAA counts anti-aliased pixels as differences.
	IncludeAA bool
	// Alpha fades unchanged pixels in the diff image.
	Alpha     float64
	AAColor   color.NRGBA
	DiffColor color.NRGBA
}

func DefaultOptions() Options {
	return Options{
		Alpha:     0.1,
		AAColor:   color.NRGBA{R: 255, G: 255, A: 255},
		DiffColor: color.NRGBA{R: 255, A: 255},
	}
}

type Comparator struct {
	opts Options
}

func NewComparator(opts Options) *Comparator {
	return &Comparator{opts: opts}
}

// Compare returns the number of differing pixels and a diff image anchored at
// the origin. Both images must have identical dimensions; their bounds may be
// offset.
func (c *Comparator) Compare(a, b image.Image, threshold float64) (int, image.Image, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, nil, errors.Newf(errors.CodeComparisonError,
			"image sizes do not match: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return 0, nil, errors.Newf(errors.CodeComparisonError, "threshold %v out of range [0,1]", threshold)
	}

	a, b = atOrigin(a), atOrigin(b)

	var out image.Image
	count, err := pm.MatchPixel(a, b, c.matchOptions(threshold, &out)...)
	if err != nil {
		return 0, nil, errors.Wrap(err, errors.CodeComparisonError, "pixel comparison failed")
	}
	if out == nil {
		// Identical images leave the output unset.
		out = image.NewRGBA(a.Bounds())
	}
	return count, out, nil
}

func (c *Comparator) matchOptions(threshold float64, out *image.Image) []pm.MatchOption {
	opts := []pm.MatchOption{
		pm.Threshold(threshold),
		pm.Alpha(c.opts.Alpha),
		pm.AntiAliasedColor(c.opts.AAColor),
		pm.DiffColor(c.opts.DiffColor),
		pm.WriteTo(out),
	}
	if c.opts.IncludeAA {
		opts = append(opts, pm.IncludeAntiAlias)
	}
	return opts
}

// atOrigin moves img so its bounds start at (0, 0). Cropped screenshots keep
// their parent's offset, which the matcher rejects.
func atOrigin(img image.Image) image.Image {
	r := img.Bounds()
	if r.Min == (image.Point{}) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// String describes the comparator configuration for logs.
func (c *Comparator) String() string {
	return fmt.Sprintf("pixelmatch(includeAA=%t, alpha=%.2f)", c.opts.IncludeAA, c.opts.Alpha)
}
