package codec

import (
	"fmt"
	"image"
	"image/draw"
)

// RGBA converts images into tightly packed 8-bit RGBA buffers of a fixed
// geometry. Safe for concurrent use.
type RGBA struct {
	width  int
	height int
}

// NewRGBA builds a converter for the given frame geometry.
func NewRGBA(width, height int) (*RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("codec: frame geometry must be positive, got %dx%d", width, height)
	}
	return &RGBA{width: width, height: height}, nil
}

// FrameSize returns the byte length of one converted frame.
func (c *RGBA) FrameSize() int {
	return c.width * c.height * 4
}

// Convert packs img into an RGBA buffer. Images whose bounds do not match
// the configured geometry are rejected rather than scaled or cropped.
func (c *RGBA) Convert(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("codec: nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() != c.width || bounds.Dy() != c.height {
		return nil, fmt.Errorf("codec: image is %dx%d, output is %dx%d",
			bounds.Dx(), bounds.Dy(), c.width, c.height)
	}

	if src, ok := img.(*image.RGBA); ok && src.Stride == c.width*4 {
		buf := make([]byte, c.FrameSize())
		copy(buf, src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y):])
		return buf, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst.Pix, nil
}
