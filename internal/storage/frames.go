package storage

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Frame archive layout, zstd-compressed: uint32 frame count, uint32 side
// length, then count*size*size RGB triples in row-major order.

func SaveFrames(path string, frames []*image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}

	size := 0
	if len(frames) > 0 {
		size = frames[0].Bounds().Dx()
	}

	if err := binary.Write(zw, binary.LittleEndian, uint32(len(frames))); err != nil {
		zw.Close()
		return err
	}
	if err := binary.Write(zw, binary.LittleEndian, uint32(size)); err != nil {
		zw.Close()
		return err
	}

	buf := make([]byte, size*size*3)
	for _, frame := range frames {
		i := 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := frame.RGBAAt(x, y)
				buf[i] = c.R
				buf[i+1] = c.G
				buf[i+2] = c.B
				i += 3
			}
		}
		if _, err := zw.Write(buf); err != nil {
			zw.Close()
			return err
		}
	}

	return zw.Close()
}

func LoadFrames(path string) ([]*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var count, size uint32
	if err := binary.Read(zr, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read frame archive header: %w", err)
	}
	if err := binary.Read(zr, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("read frame archive header: %w", err)
	}

	frames := make([]*image.RGBA, 0, count)
	buf := make([]byte, int(size)*int(size)*3)

	for n := uint32(0); n < count; n++ {
		if _, err := io.ReadFull(zr, buf); err != nil {
			return nil, fmt.Errorf("read frame %d: %w", n, err)
		}

		frame := image.NewRGBA(image.Rect(0, 0, int(size), int(size)))
		i := 0
		for y := 0; y < int(size); y++ {
			for x := 0; x < int(size); x++ {
				o := frame.PixOffset(x, y)
				frame.Pix[o] = buf[i]
				frame.Pix[o+1] = buf[i+1]
				frame.Pix[o+2] = buf[i+2]
				frame.Pix[o+3] = 255
				i += 3
			}
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
