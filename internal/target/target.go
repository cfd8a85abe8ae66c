// Package target resolves the image the grid evolves toward: a decoded and
// resampled input file, or a deterministic synthetic gradient when none is
// available.
package target

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

// DefaultSize is the square resolution the target is resampled to.
const DefaultSize = 100

// Load decodes the image at path and resamples it to size×size RGB using
// Catmull-Rom interpolation.
func Load(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Synthetic builds the fallback gradient: red rises with the column index,
// green with the row index, blue with the averaged sum of both.
func Synthetic(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*img.Stride + x*4
			img.Pix[i+0] = uint8(x * 255 / size)
			img.Pix[i+1] = uint8(y * 255 / size)
			img.Pix[i+2] = uint8((x + y) * 255 / (size * 2))
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Resolve loads the target from path, falling back to the synthetic
// gradient on any failure. The second return reports whether the file was
// used. An empty path always yields the synthetic target.
func Resolve(path string, size int) (*image.RGBA, bool) {
	if path == "" {
		return Synthetic(size), false
	}
	img, err := Load(path, size)
	if err != nil {
		return Synthetic(size), false
	}
	return img, true
}

// SavePNG writes the image to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
