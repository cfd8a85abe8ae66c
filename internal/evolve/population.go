// Package evolve implements the per-pixel population and its generational
// step: sort, elitism, tournament selection, uniform crossover, mutation.
package evolve

import (
	"image/color"
	"sort"

	"github.com/Yutarop/ga-pixel-art/internal/genome"
)

type member struct {
	chr genome.Chromosome
	fit float64
}

// Population owns a fixed-size pool of chromosomes for one pixel
// coordinate. The pool length equals Params.PopulationSize after
// construction and after every Step. Populations share nothing but the
// read-only target color they were built with.
type Population struct {
	row, col int
	target   color.RGBA
	params   Params
	rng      genome.Rand
	pool     []member
}

// NewPopulation builds a fully random pool for the given coordinate.
func NewPopulation(row, col int, target color.RGBA, params Params, rng genome.Rand) *Population {
	p := &Population{
		row:    row,
		col:    col,
		target: target,
		params: params,
		rng:    rng,
		pool:   make([]member, params.PopulationSize),
	}
	for i := range p.pool {
		chr := genome.NewRandom(row, col, rng)
		p.pool[i] = member{chr: chr, fit: chr.Fitness(target)}
	}
	return p
}

// Size returns the current pool length.
func (p *Population) Size() int { return len(p.pool) }

// Tournament picks a parent. The candidate at pool index 0 is a fixed
// baseline; TournamentSize-1 further members are drawn uniformly with
// replacement and the fittest of the lot wins. The baseline asymmetry is
// deliberate: after the sort in Step, slot 0 holds the current best.
func (p *Population) Tournament() genome.Chromosome {
	best := p.pool[0]
	for i := 1; i < p.params.TournamentSize; i++ {
		candidate := p.pool[p.rng.Intn(len(p.pool))]
		if candidate.fit > best.fit {
			best = candidate
		}
	}
	return best.chr
}

// Stats returns (average, maximum, minimum) fitness over the pool.
// Diagnostic only.
func (p *Population) Stats() (avg, max, min float64) {
	sum := 0.0
	max = 0.0
	min = p.pool[0].fit
	for _, m := range p.pool {
		sum += m.fit
		if m.fit > max {
			max = m.fit
		}
		if m.fit < min {
			min = m.fit
		}
	}
	return sum / float64(len(p.pool)), max, min
}

// Best returns the fittest pool member and its fitness, first encountered
// winning ties.
func (p *Population) Best() (genome.Chromosome, float64) {
	best := p.pool[0]
	for _, m := range p.pool[1:] {
		if m.fit > best.fit {
			best = m
		}
	}
	return best.chr, best.fit
}

// Step replaces the pool with the next generation: stable sort by fitness
// descending, carry the top EliteSize members bit-identical, then fill the
// remaining slots with mutated crossover children of tournament-selected
// parents. Pool size is invariant.
func (p *Population) Step() {
	sort.SliceStable(p.pool, func(i, j int) bool {
		return p.pool[i].fit > p.pool[j].fit
	})

	size := p.params.PopulationSize
	next := make([]member, 0, size+1)

	elite := p.params.EliteSize
	if elite > len(p.pool) {
		elite = len(p.pool)
	}
	for i := 0; i < elite; i++ {
		next = append(next, p.pool[i])
	}

	for len(next) < size {
		parent1 := p.Tournament()
		parent2 := p.Tournament()

		child1, child2 := Crossover(parent1, parent2, p.params.CrossoverRate, p.rng)
		child1 = Mutate(child1, p.params.MutationRate, p.rng)
		child2 = Mutate(child2, p.params.MutationRate, p.rng)

		next = append(next, member{chr: child1, fit: child1.Fitness(p.target)})
		if len(next) < size {
			next = append(next, member{chr: child2, fit: child2.Fitness(p.target)})
		}
	}

	next = next[:size]
	p.pool = next
}
