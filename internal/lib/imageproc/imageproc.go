package imageproc

import (
	"bytes"
	"image"
	"image/color"

	"photo_portfolio/internal/domain/models"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Thumbnail scales the image down so that neither dimension exceeds the
// given bounds, preserving aspect ratio (Lanczos). Images already within
// bounds are never upscaled. The result is re-encoded as JPEG.
func Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &models.ImageDecodeError{Err: err}
	}

	// imaging.Fit only scales down, which is exactly the contract here.
	thumb := imaging.Fit(src, maxWidth, maxHeight, imaging.Lanczos)

	return encodeJPEG(thumb, 85)
}

// Optimize prepares an image for full-size viewing: applies the embedded
// orientation so the output matches the intended viewing rotation,
// constrains both dimensions to maxDim and re-encodes as JPEG at the
// given quality.
func Optimize(data []byte, maxDim, quality int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &models.ImageDecodeError{Err: err}
	}

	fitted := imaging.Fit(src, maxDim, maxDim, imaging.Lanczos)

	return encodeJPEG(fitted, quality)
}

// Placeholder renders a flat gray JPEG of the given size. Callers serve
// it in place of images that fail to decode.
func Placeholder(width, height int) []byte {
	img := imaging.New(width, height, color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff})
	data, err := encodeJPEG(img, 75)
	if err != nil {
		// Encoding a freshly built NRGBA cannot fail.
		return nil
	}
	return data
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, &models.ImageDecodeError{Err: err}
	}
	return buf.Bytes(), nil
}
