package genome

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

func TestChannelRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		bits := EncodeChannel(uint8(v))
		if got := DecodeChannel(bits); got != uint8(v) {
			t.Fatalf("round trip failed for %d: got %d", v, got)
		}
	}
}

func TestDecodeChannelMSBFirst(t *testing.T) {
	tests := []struct {
		bits [GeneLength]bool
		want uint8
	}{
		{[GeneLength]bool{}, 0},
		{[GeneLength]bool{true, false, false, false, false, false, false, false}, 128},
		{[GeneLength]bool{false, false, false, false, false, false, false, true}, 1},
		{[GeneLength]bool{true, false, false, false, false, false, false, true}, 129},
		{[GeneLength]bool{true, true, true, true, true, true, true, true}, 255},
	}

	for _, tt := range tests {
		if got := DecodeChannel(tt.bits); got != tt.want {
			t.Errorf("DecodeChannel(%v) = %d, want %d", tt.bits, got, tt.want)
		}
	}
}

func chromosomeFor(r, g, b uint8) Chromosome {
	var c Chromosome
	c.Gene[0] = EncodeChannel(r)
	c.Gene[1] = EncodeChannel(g)
	c.Gene[2] = EncodeChannel(b)
	return c
}

func TestFitnessOrdering(t *testing.T) {
	target := color.RGBA{R: 100, G: 150, B: 200, A: 255}

	// Candidates at increasing distance from the target.
	offsets := []uint8{0, 2, 5, 10, 30, 55, 100}

	prev := math.Inf(1)
	for _, off := range offsets {
		c := chromosomeFor(100+off, 150+off, 200-off)
		fit := c.Fitness(target)

		if fit <= 0 || fit > 2 {
			t.Errorf("offset %d: fitness %f out of range (0, 2]", off, fit)
		}
		if fit > prev {
			t.Errorf("offset %d: fitness %f increased from %f", off, fit, prev)
		}
		prev = fit
	}
}

func TestFitnessExactMatchBonus(t *testing.T) {
	target := color.RGBA{R: 128, G: 64, B: 200, A: 255}

	exact := chromosomeFor(128, 64, 200)
	if got := exact.Fitness(target); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("exact match fitness = %f, want 2.0", got)
	}

	// One channel off by one: RMSE = sqrt(1/3) < 1, bonus applies.
	near := chromosomeFor(129, 64, 200)
	rmse := math.Sqrt(1.0 / 3.0)
	want := 2.0 * math.Exp(-rmse/50.0)
	if got := near.Fitness(target); math.Abs(got-want) > 1e-12 {
		t.Errorf("near match fitness = %f, want %f", got, want)
	}
}

func TestFitnessNoBonusAtBoundary(t *testing.T) {
	target := color.RGBA{R: 100, G: 100, B: 100, A: 255}

	// Every channel off by one: RMSE is exactly 1.0, so no bonus.
	c := chromosomeFor(101, 101, 101)
	want := math.Exp(-1.0 / 50.0)
	if got := c.Fitness(target); math.Abs(got-want) > 1e-12 {
		t.Errorf("boundary fitness = %f, want %f (no bonus)", got, want)
	}
}

func TestNewRandomDeterministic(t *testing.T) {
	a := NewRandom(3, 7, rand.New(rand.NewSource(1)))
	b := NewRandom(3, 7, rand.New(rand.NewSource(1)))

	if a != b {
		t.Error("same seed produced different chromosomes")
	}
	if a.Row != 3 || a.Col != 7 {
		t.Errorf("coordinate not preserved: got (%d, %d)", a.Row, a.Col)
	}
}
