package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/experiment"
	"github.com/san-kum/mdsim/internal/potential"
	"github.com/san-kum/mdsim/internal/storage"
	"github.com/san-kum/mdsim/internal/sweep"
	"github.com/san-kum/mdsim/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile  string
	preset      string
	seed        int64
	species     string
	ensembleArg string
	integ       string
	dt          float64
	steps       int
	sampleEvery int
	initTemp    float64
	thermoKind  string
	temperature float64
	frequency   float64
	tau         float64
	zeroSpeed   string

	outFile   string
	plotWidth int

	sweepAxes   []string
	replicas    int
	workers     int
	sweepMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mdsim",
		Short:         "molecular dynamics toolkit: lattices, liquids and thermostats",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mdsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run and store a simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot temperature and energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "graph width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the thermodynamic samples of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a configuration over a parameter grid",
		Long: "Runs every combination of the --param axes with seeded replicas and " +
			"reports the mean and standard deviation of each metric.\n" +
			"Parameters: " + strings.Join(sweep.Parameters(), ", "),
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "param", nil, "sweep axis name=v1,v2,... (repeatable)")
	sweepCmd.Flags().IntVar(&replicas, "replicas", 1, "replicas per grid point")
	sweepCmd.Flags().IntVar(&workers, "workers", 1, "independent runs in flight")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "temperature_rmsd", "metric to minimise")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "list Lennard-Jones parameters",
		Args:  cobra.NoArgs,
		RunE:  listSpecies,
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCmd, exportCSVCmd,
		presetsCmd, speciesCmd, newLatticeCmd(), newLiquidCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "start from a named preset")
	f.Int64Var(&seed, "seed", d.Seed, "random seed")
	f.StringVar(&species, "species", d.Species, "particle species")
	f.StringVar(&ensembleArg, "ensemble", d.Ensemble, "ensemble (nve, nvt)")
	f.StringVar(&integ, "integrator", d.Integrator, "integrator (verlet, leapfrog)")
	f.Float64Var(&dt, "dt", d.Dt, "time step in ps")
	f.IntVar(&steps, "steps", d.Steps, "number of steps")
	f.IntVar(&sampleEvery, "sample-every", d.SampleEvery, "record every n-th step")
	f.Float64Var(&initTemp, "init-temperature", d.InitTemperature, "initial temperature in K")
	f.StringVar(&thermoKind, "thermostat", d.Thermostat.Kind, "thermostat (andersen, berendsen, none)")
	f.Float64Var(&temperature, "temperature", d.Thermostat.Temperature, "thermostat target in K")
	f.Float64Var(&frequency, "frequency", d.Thermostat.Frequency, "andersen collision frequency in 1/ps")
	f.Float64Var(&tau, "tau", d.Thermostat.Tau, "berendsen relaxation time in ps")
	f.StringVar(&zeroSpeed, "zero-speed", d.Thermostat.ZeroSpeed, "andersen policy for resting particles (skip, error)")
}

// loadConfig layers defaults, preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("species") {
		cfg.Species = species
		cfg.Mass = 0
	}
	if flags.Changed("ensemble") {
		cfg.Ensemble = ensembleArg
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integ
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("init-temperature") {
		cfg.InitTemperature = initTemp
	}
	if flags.Changed("thermostat") {
		cfg.Thermostat.Kind = thermoKind
	}
	if flags.Changed("temperature") {
		cfg.Thermostat.Temperature = temperature
	}
	if flags.Changed("frequency") {
		cfg.Thermostat.Frequency = frequency
	}
	if flags.Changed("tau") {
		cfg.Thermostat.Tau = tau
	}
	if flags.Changed("zero-speed") {
		cfg.Thermostat.ZeroSpeed = zeroSpeed
	}
	return cfg, cfg.Validate()
}

func setupExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := exp.Run(ctx)
	if result == nil {
		return runErr
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	cfg := exp.Config()
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("system: %s, %d particles, %s\n", cfg.Species, exp.System().Len(), cfg.Ensemble)
	fmt.Printf("steps: %d/%d (dt=%g ps)\n", result.StepsTaken, cfg.Steps, cfg.Dt)
	if n := len(result.Samples); n > 0 {
		last := result.Samples[n-1]
		fmt.Printf("final: T=%.3f K  KE=%.5f  PE=%.5f kcal/mol\n", last.Temperature, last.Kinetic, last.Potential)
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	m, err := viz.NewModel(exp.Ensemble(), exp.System(), cfg.Dt, cfg.Name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(sweepAxes) == 0 {
		return fmt.Errorf("at least one --param axis is required")
	}
	grid := sweep.NewGrid()
	for _, axis := range sweepAxes {
		name, values, err := sweep.ParseAxis(axis)
		if err != nil {
			return err
		}
		grid.Add(name, values...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, runErr := sweep.NewRunner(cfg, replicas, workers).Run(ctx, grid)
	summaries := sweep.Summarize(outcomes)
	names := sweep.MetricNames(summaries)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "POINT\tRUNS\tFAILED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(name))
	}
	fmt.Fprintln(w)
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%d", s.Point, s.Runs, s.Failed)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4g±%.2g", s.Mean[name], s.StdDev[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sweep.Best(summaries, sweepMetric); ok {
		fmt.Printf("\nbest %s: %s (%.6g)\n", sweepMetric, best.Point, best.Mean[sweepMetric])
	} else {
		fmt.Printf("\nno run reported %s\n", sweepMetric)
	}
	return runErr
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSPECIES\tN\tENSEMBLE\tTHERMOSTAT\tSTEPS\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%d\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Species,
			run.Particles,
			run.Ensemble,
			orDash(run.Thermostat),
			run.StepsTaken,
			run.Dt,
		)
	}
	return w.Flush()
}

func loadRun(arg string) (*storage.RunMetadata, *storage.Store, error) {
	st := storage.New(dataDir)
	runID, err := st.Resolve(arg)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, st, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s (%s, %d particles)\n", meta.Name, meta.Species, meta.Particles)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Print(viz.PlotSamples(samples, plotWidth))
	return nil
}

func output() (*os.File, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	out, done, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(out, *meta, samples); err != nil {
		done()
		return err
	}
	return done()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return err
	}
	out, done, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(out, samples); err != nil {
		done()
		return err
	}
	return done()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSPECIES\tSYSTEM\tENSEMBLE\tTHERMOSTAT\tTARGET\tSTEPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\t%d\n",
			name, p.Species, describeSystem(p), p.Ensemble, orDash(p.Thermostat.Kind), p.Thermostat.Temperature, p.Steps)
	}
	return w.Flush()
}

func describeSystem(c *config.Config) string {
	if c.Liquid != nil {
		return fmt.Sprintf("liquid %.4g g/ml", c.Liquid.Density)
	}
	return fmt.Sprintf("%s %v", c.Lattice.Kind, c.Lattice.Cells)
}

func listSpecies(cmd *cobra.Command, args []string) error {
	table := potential.DefaultTable()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tEPSILON/kB (K)\tSIGMA (A)\tMASS (g/mol)")
	for _, name := range table.Names() {
		p, _ := table.Lookup(name)
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n", name, p.Epsilon, p.Sigma, p.Mass)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
