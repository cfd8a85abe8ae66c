package storage

import (
	"encoding/json"
	"io"

	"github.com/Yutarop/ga-pixel-art/internal/grid"
)

type ExportData struct {
	ID          string  `json:"id"`
	Seed        int64   `json:"seed"`
	Size        int     `json:"size"`
	Generations int     `json:"generations"`
	Population  int     `json:"population"`
	Crossover   float64 `json:"crossover"`
	Mutation    float64 `json:"mutation"`

	AvgFitness      []float64 `json:"avg_fitness"`
	PerfectFraction []float64 `json:"perfect_fraction"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, stats []grid.GenStats) error {
	data := ExportData{
		ID:              meta.ID,
		Seed:            meta.Seed,
		Size:            meta.Size,
		Generations:     meta.Generations,
		Population:      meta.Population,
		Crossover:       meta.Crossover,
		Mutation:        meta.Mutation,
		AvgFitness:      make([]float64, len(stats)),
		PerfectFraction: make([]float64, len(stats)),
	}

	for i, st := range stats {
		data.AvgFitness[i] = st.AvgFitness
		data.PerfectFraction[i] = st.PerfectFraction
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
