package pixelmatch

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

// PNGCodec reads and writes screenshots and diff artifacts.
type PNGCodec struct{}

func NewPNGCodec() *PNGCodec {
	return &PNGCodec{}
}

func (PNGCodec) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeImageDecodeError, fmt.Sprintf("cannot open %s", path))
	}
	defer f.Close()

	img, err := png.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeImageDecodeError, fmt.Sprintf("cannot decode %s", path))
	}
	return img, nil
}

func (PNGCodec) Encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeArtifactWriteError, fmt.Sprintf("cannot create %s", path))
	}

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeImageEncodeError, fmt.Sprintf("cannot encode %s", path))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, errors.CodeArtifactWriteError, fmt.Sprintf("cannot write %s", path))
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, errors.CodeArtifactWriteError, fmt.Sprintf("cannot close %s", path))
	}
	return nil
}
