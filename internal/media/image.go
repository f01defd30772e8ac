package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxWidth    = 800
	MaxUpload   = 5 << 20
	webpQuality = 80
)

var ErrUnsupportedImage = errors.New("unsupported image")

// ToWebP decodes a jpeg, png or webp image, shrinks it to MaxWidth and
// re-encodes it as WebP.
func ToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUpload))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := Fit(src, MaxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fit scales src down to maxWidth keeping the aspect ratio. Smaller images are returned as is.
func Fit(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
