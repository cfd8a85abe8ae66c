// Package genome defines the bit-level encoding of a candidate pixel color
// and its fitness against a target color.
//
// A chromosome carries one gene per RGB channel, each a fixed run of 8
// booleans interpreted MSB-first. The channel and bit counts are fixed at
// the type level; a chromosome is never resized or edited in place once it
// has been scored.
package genome

import (
	"image/color"
	"math"
)

const (
	// Channels is the number of color channels encoded per chromosome.
	Channels = 3

	// GeneLength is the number of bits per channel.
	GeneLength = 8
)

// Rand is the source of randomness threaded through all stochastic
// operations. *math/rand.Rand satisfies it; tests substitute scripted
// sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Gene is a fixed-size bit genome: 3 channels of 8 bits each, MSB first.
type Gene [Channels][GeneLength]bool

// Chromosome is one candidate RGB value for a single pixel coordinate.
// Value semantics: copying a Chromosome copies its entire gene.
type Chromosome struct {
	Row, Col int
	Gene     Gene
}

// NewRandom builds a chromosome for the given coordinate with every bit
// drawn independently at 50/50.
func NewRandom(row, col int, rng Rand) Chromosome {
	c := Chromosome{Row: row, Col: col}
	for i := 0; i < Channels; i++ {
		for j := 0; j < GeneLength; j++ {
			c.Gene[i][j] = rng.Float64() < 0.5
		}
	}
	return c
}

// DecodeChannel folds 8 bits into an unsigned byte, first bit most
// significant.
func DecodeChannel(bits [GeneLength]bool) uint8 {
	var v uint8
	for _, b := range bits {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v
}

// EncodeChannel is the inverse of DecodeChannel.
func EncodeChannel(v uint8) [GeneLength]bool {
	var bits [GeneLength]bool
	for j := GeneLength - 1; j >= 0; j-- {
		bits[j] = v&1 == 1
		v >>= 1
	}
	return bits
}

// RGB decodes the three channel genes.
func (c Chromosome) RGB() (r, g, b uint8) {
	return DecodeChannel(c.Gene[0]), DecodeChannel(c.Gene[1]), DecodeChannel(c.Gene[2])
}

// Color decodes the chromosome to an opaque color.
func (c Chromosome) Color() color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Fitness scores the decoded color against the target color: exp(-RMSE/50)
// over the three channels, doubled when RMSE is strictly below 1.0. Higher
// is better; the range is (0, 2].
func (c Chromosome) Fitness(target color.RGBA) float64 {
	r, g, b := c.RGB()

	dr := float64(r) - float64(target.R)
	dg := float64(g) - float64(target.G)
	db := float64(b) - float64(target.B)

	rmse := math.Sqrt((dr*dr + dg*dg + db*db) / Channels)
	fitness := math.Exp(-rmse / 50.0)

	if rmse < 1.0 {
		return fitness * 2.0
	}
	return fitness
}
