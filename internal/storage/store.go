package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Yutarop/ga-pixel-art/internal/grid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Seed        int64     `json:"seed"`
	Size        int       `json:"size"`
	Generations int       `json:"generations"`
	Population  int       `json:"population"`
	Tournament  int       `json:"tournament"`
	Elite       int       `json:"elite"`
	Crossover   float64   `json:"crossover"`
	Mutation    float64   `json:"mutation"`
	Target      string    `json:"target"`

	FinalAvgFitness float64 `json:"final_avg_fitness"`
	FinalPerfect    float64 `json:"final_perfect_fraction"`
}

// Save persists a completed run: metadata.json, one stats.csv row per
// generation, and the raw frame sequence as a compressed archive.
func (s *Store) Save(meta RunMetadata, result *grid.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	if n := len(result.Stats); n > 0 {
		meta.FinalAvgFitness = result.Stats[n-1].AvgFitness
		meta.FinalPerfect = result.Stats[n-1].PerfectFraction
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"generation", "avg_fitness", "perfect_matches", "perfect_fraction"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, st := range result.Stats {
		row := []string{
			strconv.Itoa(st.Generation),
			strconv.FormatFloat(st.AvgFitness, 'f', 6, 64),
			strconv.Itoa(st.PerfectMatches),
			strconv.FormatFloat(st.PerfectFraction, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if err := SaveFrames(filepath.Join(runDir, "frames.bin.zst"), result.Frames); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStats reads the per-generation statistics back from stats.csv.
func (s *Store) LoadStats(runID string) ([]grid.GenStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []grid.GenStats{}, nil
	}

	stats := make([]grid.GenStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		gen, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		avg, _ := strconv.ParseFloat(record[1], 64)
		matches, _ := strconv.Atoi(record[2])
		frac, _ := strconv.ParseFloat(record[3], 64)

		stats = append(stats, grid.GenStats{
			Generation:      gen,
			AvgFitness:      avg,
			PerfectMatches:  matches,
			PerfectFraction: frac,
		})
	}

	return stats, nil
}

// FramesPath returns the location of a run's frame archive.
func (s *Store) FramesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "frames.bin.zst")
}
