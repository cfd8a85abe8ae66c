package anim

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
)

const (
	// MaxFrames bounds the encoded frame count. When the source sequence
	// is longer, every (total/MaxFrames)-th frame is kept, using integer
	// division for the stride.
	MaxFrames = 50

	// FrameDelay is the per-frame delay in hundredths of a second.
	FrameDelay = 20
)

// Stride returns the sampling stride for a sequence of n frames.
func Stride(n int) int {
	if n > MaxFrames {
		return n / MaxFrames
	}
	return 1
}

// Quantize maps every pixel of the frame into palette-index space.
func Quantize(frame *image.RGBA) *image.Paletted {
	bounds := frame.Bounds()
	out := image.NewPaletted(bounds, Palette())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := frame.RGBAAt(x, y)
			r := QuantizeChannel(c.R)
			g := QuantizeChannel(c.G)
			b := QuantizeChannel(c.B)
			out.SetColorIndex(x, y, PaletteIndex(r, g, b))
		}
	}
	return out
}

// Encode writes the strided, quantized frame sequence as an
// infinitely-looping GIF.
func Encode(w io.Writer, frames []*image.RGBA) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	anim := gif.GIF{LoopCount: 0}
	stride := Stride(len(frames))

	for i, frame := range frames {
		if i%stride != 0 {
			continue
		}
		anim.Image = append(anim.Image, Quantize(frame))
		anim.Delay = append(anim.Delay, FrameDelay)
	}

	return gif.EncodeAll(w, &anim)
}

// Save encodes the frame sequence to the given path.
func Save(path string, frames []*image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Encode(f, frames)
}
