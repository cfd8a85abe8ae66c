package config

var Presets = map[string]*Config{
	"quick": {
		Size: 32, Generations: 30,
		Population: 6, Tournament: 3, Elite: 2,
		Crossover: 0.8, Mutation: 0.05,
	},
	"standard": {
		Size: 100, Generations: 50,
		Population: 6, Tournament: 3, Elite: 2,
		Crossover: 0.8, Mutation: 0.05,
	},
	"fine": {
		Size: 100, Generations: 120,
		Population: 10, Tournament: 3, Elite: 2,
		Crossover: 0.9, Mutation: 0.02,
	},
	"hires": {
		Size: 160, Generations: 80,
		Population: 8, Tournament: 4, Elite: 2,
		Crossover: 0.8, Mutation: 0.04,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
