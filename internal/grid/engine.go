// Package grid drives an N×N matrix of independent pixel populations
// through a fixed number of generations and assembles one rendered frame
// per generation from each cell's current best chromosome.
package grid

import (
	"context"
	"image"
	"math/rand"

	"github.com/Yutarop/ga-pixel-art/internal/evolve"
)

// ReportInterval is the checkpoint cadence in generations. The final
// generation always checkpoints regardless of cadence.
const ReportInterval = 25

// GenStats is the grid-wide summary recorded after every generation.
type GenStats struct {
	Generation      int
	AvgFitness      float64
	PerfectMatches  int
	PerfectFraction float64
}

// Checkpoint extends GenStats with pool statistics for the sample
// coordinate (the grid centre). Diagnostics only; nothing reads them back
// into the algorithm.
type Checkpoint struct {
	GenStats
	SampleAvg float64
	SampleMax float64
	SampleMin float64
}

// Observer receives progress callbacks during Run.
type Observer interface {
	OnGeneration(s GenStats)
	OnCheckpoint(c Checkpoint)
}

// Result is the output of a completed run.
type Result struct {
	Frames      []*image.RGBA
	Stats       []GenStats
	Checkpoints []Checkpoint
}

// Engine owns the population grid and the accumulated frame sequence.
// Cells never share mutable state; the target image is borrowed read-only
// by every fitness evaluation.
type Engine struct {
	size      int
	target    *image.RGBA
	cells     [][]*evolve.Population
	frames    []*image.RGBA
	stats     []GenStats
	observers []Observer
	gen       int
}

// New builds a size×size grid of freshly randomized populations over the
// target image. Each cell gets its own seeded random source so runs are
// reproducible even with the row-parallel step.
func New(target *image.RGBA, params evolve.Params, seed int64) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	size := target.Bounds().Dx()
	e := &Engine{
		size:   size,
		target: target,
		cells:  make([][]*evolve.Population, size),
	}

	for row := 0; row < size; row++ {
		e.cells[row] = make([]*evolve.Population, size)
		for col := 0; col < size; col++ {
			rng := rand.New(rand.NewSource(seed + int64(row*size+col)))
			want := e.target.RGBAAt(col, row)
			e.cells[row][col] = evolve.NewPopulation(row, col, want, params, rng)
		}
	}

	return e, nil
}

func (e *Engine) Size() int             { return e.size }
func (e *Engine) Generation() int       { return e.gen }
func (e *Engine) Frames() []*image.RGBA { return e.frames }
func (e *Engine) Stats() []GenStats     { return e.stats }

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// CurrentFrame returns the most recently assembled frame, or nil before the
// first generation.
func (e *Engine) CurrentFrame() *image.RGBA {
	if len(e.frames) == 0 {
		return nil
	}
	return e.frames[len(e.frames)-1]
}

// StepGeneration advances every cell by one generation and assembles the
// next frame. Cells step in parallel by row; the frame is only assembled
// after every cell has finished its step.
func (e *Engine) StepGeneration() GenStats {
	parallelFor(e.size, 1, func(start, end int) {
		for row := start; row < end; row++ {
			for col := 0; col < e.size; col++ {
				e.cells[row][col].Step()
			}
		}
	})

	e.gen++

	frame := image.NewRGBA(image.Rect(0, 0, e.size, e.size))
	totalFitness := 0.0
	perfect := 0

	for row := 0; row < e.size; row++ {
		for col := 0; col < e.size; col++ {
			best, fit := e.cells[row][col].Best()
			c := best.Color()
			frame.SetRGBA(col, row, c)

			totalFitness += fit

			want := e.target.RGBAAt(col, row)
			if c.R == want.R && c.G == want.G && c.B == want.B {
				perfect++
			}
		}
	}

	cellCount := e.size * e.size
	s := GenStats{
		Generation:      e.gen,
		AvgFitness:      totalFitness / float64(cellCount),
		PerfectMatches:  perfect,
		PerfectFraction: float64(perfect) / float64(cellCount),
	}

	e.frames = append(e.frames, frame)
	e.stats = append(e.stats, s)
	return s
}

// Checkpoint builds the cadence diagnostic for the current generation,
// sampling the centre cell's pool.
func (e *Engine) Checkpoint() Checkpoint {
	c := Checkpoint{}
	if len(e.stats) > 0 {
		c.GenStats = e.stats[len(e.stats)-1]
	}
	sample := e.cells[e.size/2][e.size/2]
	c.SampleAvg, c.SampleMax, c.SampleMin = sample.Stats()
	return c
}

// Run steps the grid through the given number of generations, notifying
// observers after every generation and at checkpoint cadence. The context
// is checked once per generation.
func (e *Engine) Run(ctx context.Context, generations int) (*Result, error) {
	checkpoints := make([]Checkpoint, 0, generations/ReportInterval+1)

	for g := 1; g <= generations; g++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		s := e.StepGeneration()
		for _, o := range e.observers {
			o.OnGeneration(s)
		}

		if g%ReportInterval == 0 || g == generations {
			cp := e.Checkpoint()
			checkpoints = append(checkpoints, cp)
			for _, o := range e.observers {
				o.OnCheckpoint(cp)
			}
		}
	}

	return &Result{
		Frames:      e.frames,
		Stats:       e.stats,
		Checkpoints: checkpoints,
	}, nil
}
