// Package imaging normalises uploaded photos before they reach the photo store.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height of a stored photo.
const MaxDimension = 2048

// JPEGQuality is the compression quality for stored photos.
const JPEGQuality = 85

// Ext and MIME describe every photo produced by Normalize.
const (
	Ext  = ".jpg"
	MIME = "image/jpeg"
)

// MaxPixels bounds the declared width×height of an upload. Decoding allocates
// in proportion to the declared size, not the compressed size.
const MaxPixels = 40_000_000

// ErrUnsupportedFormat is returned for uploads that are not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type codec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

var codecs = map[string]codec{
	"image/jpeg": {jpeg.Decode, jpeg.DecodeConfig},
	"image/png":  {png.Decode, png.DecodeConfig},
	"image/gif":  {gif.Decode, gif.DecodeConfig},
}

// Normalize sniffs the upload, decodes it, shrinks it to fit MaxDimension and
// re-encodes it as JPEG so stored photos always match Ext and MIME.
func Normalize(data []byte) ([]byte, error) {
	detected := http.DetectContentType(data)
	c, ok := codecs[detected]
	if !ok {
		return nil, fmt.Errorf("%w: %s (JPEG, PNG or GIF expected)", ErrUnsupportedFormat, detected)
	}

	cfg, err := c.decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s header: %v", ErrUnsupportedFormat, detected, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUnsupportedFormat, cfg.Width, cfg.Height, MaxPixels)
	}

	img, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrUnsupportedFormat, detected, err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale resizes img so neither side exceeds maxDim, keeping the aspect ratio.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
