package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}

	if cfg.Size != 100 || cfg.Generations != 50 || cfg.Population != 6 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Output.Animation != "result.gif" {
		t.Errorf("default animation output = %q", cfg.Output.Animation)
	}
}

func TestParamsMapping(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()

	if p.PopulationSize != cfg.Population ||
		p.TournamentSize != cfg.Tournament ||
		p.EliteSize != cfg.Elite ||
		p.CrossoverRate != cfg.Crossover ||
		p.MutationRate != cfg.Mutation {
		t.Errorf("params mapping mismatch: %+v vs %+v", p, cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 64
	cfg.Generations = 75
	cfg.Mutation = 0.03
	cfg.Seed = 12345
	cfg.Target = "cat.png"
	cfg.Output.Still = "cat_result.png"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("size: 48\nseed: 7\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Size != 48 || cfg.Seed != 7 {
		t.Errorf("overridden fields not applied: %+v", cfg)
	}
	if cfg.Generations != DefaultGenerations || cfg.Population != DefaultPopulation {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero size", func(c *Config) { c.Size = 0 }, true},
		{"zero generations", func(c *Config) { c.Generations = 0 }, true},
		{"bad population", func(c *Config) { c.Population = -1 }, true},
		{"bad crossover", func(c *Config) { c.Crossover = 2.0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPresetsAllValid(t *testing.T) {
	for name, cfg := range Presets {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if GetPreset("quick") == nil {
		t.Error("quick preset missing")
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should return nil")
	}
	if len(ListPresets()) != len(Presets) {
		t.Error("ListPresets length mismatch")
	}
}
