// Package anim quantizes rendered frames to a fixed 216-color palette and
// serializes them into a looping GIF at a bounded frame count.
package anim

import "image/color"

// PaletteSize is the number of populated palette entries (6 levels per
// channel). The table is padded with zero entries to 256.
const PaletteSize = 6 * 6 * 6

// levelStep maps a palette level 0..5 to its byte value 0,51,...,255.
const levelStep = 51

// PaletteBytes returns the 768-byte RGB table: index = 36r + 6g + b,
// iterated red outer, green middle, blue inner, zero-padded past entry 215.
func PaletteBytes() []byte {
	table := make([]byte, 0, 768)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				table = append(table, byte(r*levelStep), byte(g*levelStep), byte(b*levelStep))
			}
		}
	}
	for len(table) < 768 {
		table = append(table, 0)
	}
	return table
}

// Palette returns the same table as a 256-entry color.Palette for use with
// image.Paletted frames.
func Palette() color.Palette {
	table := PaletteBytes()
	p := make(color.Palette, 256)
	for i := 0; i < 256; i++ {
		p[i] = color.RGBA{
			R: table[3*i],
			G: table[3*i+1],
			B: table[3*i+2],
			A: 255,
		}
	}
	return p
}

// PaletteIndex maps channel levels in [0,5] to the table index.
func PaletteIndex(r, g, b int) uint8 {
	return uint8(r*36 + g*6 + b)
}

// QuantizeChannel maps a byte to its palette level: round(v/51) clamped to
// a maximum level of 5.
func QuantizeChannel(v uint8) int {
	level := int(float32(v)/levelStep + 0.5)
	if level > 5 {
		level = 5
	}
	return level
}
