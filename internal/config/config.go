package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Yutarop/ga-pixel-art/internal/evolve"
)

const (
	DefaultSize        = 100
	DefaultGenerations = 50
	DefaultPopulation  = 6
	DefaultTournament  = 3
	DefaultElite       = 2
	DefaultCrossover   = 0.8
	DefaultMutation    = 0.05
)

type Config struct {
	Size        int     `yaml:"size"`
	Generations int     `yaml:"generations"`
	Population  int     `yaml:"population"`
	Tournament  int     `yaml:"tournament"`
	Elite       int     `yaml:"elite"`
	Crossover   float64 `yaml:"crossover"`
	Mutation    float64 `yaml:"mutation"`
	Seed        int64   `yaml:"seed"`
	Target      string  `yaml:"target"`

	Output OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	Still     string `yaml:"still"`
	Animation string `yaml:"animation"`
	Target    string `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		Generations: DefaultGenerations,
		Population:  DefaultPopulation,
		Tournament:  DefaultTournament,
		Elite:       DefaultElite,
		Crossover:   DefaultCrossover,
		Mutation:    DefaultMutation,
		Output: OutputConfig{
			Still:     "result.png",
			Animation: "result.gif",
			Target:    "target_sample.png",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() evolve.Params {
	return evolve.Params{
		PopulationSize: c.Population,
		TournamentSize: c.Tournament,
		EliteSize:      c.Elite,
		CrossoverRate:  c.Crossover,
		MutationRate:   c.Mutation,
	}
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	return c.Params().Validate()
}
