package ports

import "image"

// PixelComparator counts differing pixels between two equally sized images
// and renders a visual diff. threshold is the per-pixel colour delta
// sensitivity in [0, 1].
//
//go:generate mockery --name PixelComparator --output ./mocks --outpkg mocks --case underscore
type PixelComparator interface {
	Compare(a, b image.Image, threshold float64) (int, image.Image, error)
}

//go:generate mockery --name ImageCodec --output ./mocks --outpkg mocks --case underscore
type ImageCodec interface {
	Decode(path string) (image.Image, error)
	Encode(path string, img image.Image) error
}
