package evolve

import "github.com/Yutarop/ga-pixel-art/internal/genome"

// Crossover performs uniform crossover. With probability 1-rate both
// parents pass through as exact clones. Otherwise every one of the 24 bit
// positions independently swaps between the children with probability 0.5;
// unswapped positions keep each child's own parent's bit.
func Crossover(a, b genome.Chromosome, rate float64, rng genome.Rand) (genome.Chromosome, genome.Chromosome) {
	if rng.Float64() > rate {
		return a, b
	}

	child1, child2 := a, b
	for i := 0; i < genome.Channels; i++ {
		for j := 0; j < genome.GeneLength; j++ {
			if rng.Float64() < 0.5 {
				child1.Gene[i][j] = b.Gene[i][j]
				child2.Gene[i][j] = a.Gene[i][j]
			}
		}
	}
	return child1, child2
}

// Mutate returns a mutated copy of c. Every bit flips independently with
// the given rate; then, with probability 0.1, one uniformly-random
// channel/bit position is force-flipped on top of the first pass, which can
// undo a flip already applied there.
func Mutate(c genome.Chromosome, rate float64, rng genome.Rand) genome.Chromosome {
	for i := 0; i < genome.Channels; i++ {
		for j := 0; j < genome.GeneLength; j++ {
			if rng.Float64() < rate {
				c.Gene[i][j] = !c.Gene[i][j]
			}
		}
	}

	if rng.Float64() < 0.1 {
		i := rng.Intn(genome.Channels)
		j := rng.Intn(genome.GeneLength)
		c.Gene[i][j] = !c.Gene[i][j]
	}

	return c
}
