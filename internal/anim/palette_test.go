package anim

import (
	"image/color"
	"testing"
)

func TestPaletteBytesLayout(t *testing.T) {
	table := PaletteBytes()
	if len(table) != 768 {
		t.Fatalf("palette table length = %d, want 768", len(table))
	}

	idx := 0
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				off := idx * 3
				if table[off] != uint8(r*levelStep) ||
					table[off+1] != uint8(g*levelStep) ||
					table[off+2] != uint8(b*levelStep) {
					t.Fatalf("entry %d = (%d,%d,%d), want (%d,%d,%d)",
						idx, table[off], table[off+1], table[off+2],
						r*levelStep, g*levelStep, b*levelStep)
				}
				idx++
			}
		}
	}

	// Entries past the color cube stay zeroed.
	for i := PaletteSize * 3; i < len(table); i++ {
		if table[i] != 0 {
			t.Fatalf("padding byte %d = %d, want 0", i, table[i])
		}
	}
}

func TestPaletteMatchesBytes(t *testing.T) {
	pal := Palette()
	if len(pal) != 256 {
		t.Fatalf("palette length = %d, want 256", len(pal))
	}

	table := PaletteBytes()
	for i := 0; i < 256; i++ {
		c := pal[i].(color.RGBA)
		if c.R != table[i*3] || c.G != table[i*3+1] || c.B != table[i*3+2] {
			t.Fatalf("palette entry %d = %v disagrees with byte table", i, c)
		}
		if c.A != 255 {
			t.Fatalf("palette entry %d alpha = %d, want 255", i, c.A)
		}
	}
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		r, g, b int
		want    uint8
	}{
		{0, 0, 0, 0},
		{0, 0, 5, 5},
		{0, 1, 0, 6},
		{1, 0, 0, 36},
		{5, 5, 5, 215},
		{2, 3, 4, 2*36 + 3*6 + 4},
	}

	for _, tt := range tests {
		if got := PaletteIndex(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("PaletteIndex(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestQuantizeChannel(t *testing.T) {
	tests := []struct {
		in   uint8
		want int
	}{
		{0, 0},
		{25, 0},
		{26, 1},
		{51, 1},
		{102, 2},
		{128, 3},
		{204, 4},
		{230, 5},
		{255, 5},
	}

	for _, tt := range tests {
		if got := QuantizeChannel(tt.in); got != tt.want {
			t.Errorf("QuantizeChannel(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
