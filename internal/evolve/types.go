package evolve

import "fmt"

// Params holds the tunables of the evolutionary step. Validation happens at
// construction; the step itself has no recoverable error states.
type Params struct {
	PopulationSize int
	TournamentSize int
	EliteSize      int
	CrossoverRate  float64
	MutationRate   float64
}

func DefaultParams() Params {
	return Params{
		PopulationSize: 6,
		TournamentSize: 3,
		EliteSize:      2,
		CrossoverRate:  0.8,
		MutationRate:   0.05,
	}
}

func (p Params) Validate() error {
	if p.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive, got %d", p.PopulationSize)
	}
	if p.TournamentSize <= 0 {
		return fmt.Errorf("tournament size must be positive, got %d", p.TournamentSize)
	}
	if p.EliteSize < 0 {
		return fmt.Errorf("elite size must be non-negative, got %d", p.EliteSize)
	}
	if p.CrossoverRate < 0 || p.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0,1], got %f", p.CrossoverRate)
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0,1], got %f", p.MutationRate)
	}
	return nil
}
