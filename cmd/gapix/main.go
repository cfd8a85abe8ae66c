package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"image"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Yutarop/ga-pixel-art/internal/anim"
	"github.com/Yutarop/ga-pixel-art/internal/config"
	"github.com/Yutarop/ga-pixel-art/internal/evolve"
	"github.com/Yutarop/ga-pixel-art/internal/export"
	"github.com/Yutarop/ga-pixel-art/internal/grid"
	"github.com/Yutarop/ga-pixel-art/internal/storage"
	"github.com/Yutarop/ga-pixel-art/internal/target"
	"github.com/Yutarop/ga-pixel-art/internal/viz"
)

var (
	dataDir     string
	targetPath  string
	size        int
	generations int
	population  int
	tournament  int
	elite       int
	crossover   float64
	mutation    float64
	seed        int64
	outStill    string
	outGIF      string
	outTarget   string
	configFile  string
	preset      string
	plotPNG     string
	gifOut      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gapix",
		Short: "per-pixel genetic image approximation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gapix", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evolve an image and write the outputs",
		RunE:  runEvolution,
	}
	addEvolutionFlags(runCmd)
	runCmd.Flags().StringVar(&outStill, "out", "result.png", "final frame output path")
	runCmd.Flags().StringVar(&outGIF, "gif", "result.gif", "animation output path")
	runCmd.Flags().StringVar(&outTarget, "save-target", "target_sample.png", "resolved target copy path")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "evolve with a live terminal view",
		RunE:  runLive,
	}
	addEvolutionFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run fitness history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotPNG, "png", "", "also save the plot as an image file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run statistics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	gifCmd := &cobra.Command{
		Use:   "gif [run_id]",
		Short: "re-encode the animation from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  encodeStoredGIF,
	}
	gifCmd.Flags().StringVar(&gifOut, "out", "result.gif", "animation output path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d, %d generations, pop %d\n",
					name, cfg.Size, cfg.Size, cfg.Generations, cfg.Population)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, gifCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEvolutionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&targetPath, "target", "target.png", "target image path")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "grid side length")
	cmd.Flags().IntVar(&generations, "generations", config.DefaultGenerations, "generation count")
	cmd.Flags().IntVar(&population, "pop", config.DefaultPopulation, "population size per pixel")
	cmd.Flags().IntVar(&tournament, "tournament", config.DefaultTournament, "tournament size")
	cmd.Flags().IntVar(&elite, "elite", config.DefaultElite, "elite count")
	cmd.Flags().Float64Var(&crossover, "crossover", config.DefaultCrossover, "crossover rate")
	cmd.Flags().Float64Var(&mutation, "mutation", config.DefaultMutation, "per-bit mutation rate")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveSettings applies preset values, then config file values for flags
// the user did not set explicitly. CLI flags always win.
func resolveSettings(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		size = cfg.Size
		generations = cfg.Generations
		population = cfg.Population
		tournament = cfg.Tournament
		elite = cfg.Elite
		crossover = cfg.Crossover
		mutation = cfg.Mutation
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if !cmd.Flags().Changed("size") {
			size = cfg.Size
		}
		if !cmd.Flags().Changed("generations") {
			generations = cfg.Generations
		}
		if !cmd.Flags().Changed("pop") {
			population = cfg.Population
		}
		if !cmd.Flags().Changed("tournament") {
			tournament = cfg.Tournament
		}
		if !cmd.Flags().Changed("elite") {
			elite = cfg.Elite
		}
		if !cmd.Flags().Changed("crossover") {
			crossover = cfg.Crossover
		}
		if !cmd.Flags().Changed("mutation") {
			mutation = cfg.Mutation
		}
		if !cmd.Flags().Changed("target") && cfg.Target != "" {
			targetPath = cfg.Target
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		if cmd.Flags().Lookup("out") != nil {
			if !cmd.Flags().Changed("out") && cfg.Output.Still != "" {
				outStill = cfg.Output.Still
			}
			if !cmd.Flags().Changed("gif") && cfg.Output.Animation != "" {
				outGIF = cfg.Output.Animation
			}
			if !cmd.Flags().Changed("save-target") && cfg.Output.Target != "" {
				outTarget = cfg.Output.Target
			}
		}
	}

	return nil
}

func evolutionParams() evolve.Params {
	return evolve.Params{
		PopulationSize: population,
		TournamentSize: tournament,
		EliteSize:      elite,
		CrossoverRate:  crossover,
		MutationRate:   mutation,
	}
}

func resolveTarget() *image.RGBA {
	img, loaded := target.Resolve(targetPath, size)
	if loaded {
		fmt.Println("target image loaded successfully")
	} else {
		fmt.Printf("could not load %s, using generated sample image\n", targetPath)
	}
	return img
}

type consoleReporter struct {
	generations int
}

func (r *consoleReporter) OnGeneration(s grid.GenStats) {
	fmt.Printf("generation %d/%d\n", s.Generation, r.generations)
}

func (r *consoleReporter) OnCheckpoint(c grid.Checkpoint) {
	fmt.Printf("  average fitness: %.4f, perfect matches: %.2f%% (%d)\n",
		c.AvgFitness, c.PerfectFraction*100, c.PerfectMatches)
	fmt.Printf("  sample pixel fitness - avg: %.4f, max: %.4f, min: %.4f\n",
		c.SampleAvg, c.SampleMax, c.SampleMin)
}

func runEvolution(cmd *cobra.Command, args []string) error {
	if err := resolveSettings(cmd); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	img := resolveTarget()

	engine, err := grid.New(img, evolutionParams(), seed)
	if err != nil {
		return err
	}
	engine.AddObserver(&consoleReporter{generations: generations})

	fmt.Printf("evolving %dx%d grid for %d generations...\n", size, size, generations)
	start := time.Now()

	result, err := engine.Run(context.Background(), generations)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	// Output failures are reported but never abort: the computation is
	// already done.
	if len(result.Frames) > 0 {
		final := result.Frames[len(result.Frames)-1]
		if err := target.SavePNG(outStill, final); err != nil {
			fmt.Printf("failed to save result image: %v\n", err)
		} else {
			fmt.Printf("result saved as %s\n", outStill)
		}
	}

	if err := anim.Save(outGIF, result.Frames); err != nil {
		fmt.Printf("failed to create animation: %v\n", err)
	} else {
		fmt.Printf("animation saved as %s\n", outGIF)
	}

	if err := target.SavePNG(outTarget, img); err != nil {
		fmt.Printf("failed to save target image: %v\n", err)
	} else {
		fmt.Printf("target image saved as %s\n", outTarget)
	}

	meta := storage.RunMetadata{
		Seed:        seed,
		Size:        size,
		Generations: generations,
		Population:  population,
		Tournament:  tournament,
		Elite:       elite,
		Crossover:   crossover,
		Mutation:    mutation,
		Target:      targetPath,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := resolveSettings(cmd); err != nil {
		return err
	}

	img := resolveTarget()

	engine, err := grid.New(img, evolutionParams(), seed)
	if err != nil {
		return err
	}

	m := viz.NewModel(engine, generations)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tGENS\tPOP\tAVG_FIT\tPERFECT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.4f\t%.2f%%\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Generations,
			run.Population,
			run.FinalAvgFitness,
			run.FinalPerfect*100,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, %d generations\n\n", meta.Size, meta.Size, meta.Generations)

	avg := make([]float64, len(stats))
	perfect := make([]float64, len(stats))
	for i, s := range stats {
		avg[i] = s.AvgFitness
		perfect[i] = s.PerfectFraction
	}

	fmt.Println(asciigraph.Plot(avg,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("average fitness"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(perfect,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("perfect-match fraction"),
	))

	if plotPNG != "" {
		title := fmt.Sprintf("%s (%dx%d)", meta.ID, meta.Size, meta.Size)
		if err := export.WriteFitnessPlot(stats, title, plotPNG); err != nil {
			return err
		}
		fmt.Printf("\nplot saved as %s\n", plotPNG)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, stats)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"generation", "avg_fitness", "perfect_matches", "perfect_fraction"}); err != nil {
		return err
	}

	for _, s := range stats {
		row := []string{
			strconv.Itoa(s.Generation),
			strconv.FormatFloat(s.AvgFitness, 'f', 6, 64),
			strconv.Itoa(s.PerfectMatches),
			strconv.FormatFloat(s.PerfectFraction, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func encodeStoredGIF(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := storage.LoadFrames(st.FramesPath(runID))
	if err != nil {
		return err
	}

	if err := anim.Save(gifOut, frames); err != nil {
		return err
	}

	fmt.Printf("animation saved as %s\n", gifOut)
	return nil
}
