package seamcarver

import (
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

// defaultQuality is the JPEG encoding quality.
const defaultQuality = 100

// Decode reads an image in any of the supported formats,
// applying the EXIF orientation tag when present.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "could not decode the source image")
	}
	return img, nil
}

// Encode writes the image in the format matching the file extension.
// An empty extension, as used for pipes, produces a PNG.
func Encode(w io.Writer, img image.Image, ext string) error {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return errors.Wrapf(err, "cannot encode %q images", ext)
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(defaultQuality))
}
