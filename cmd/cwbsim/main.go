package main

import (
	"fmt"
	"math"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bbw7561135/Stellar-winds/internal/config"
	"github.com/bbw7561135/Stellar-winds/internal/driver"
	"github.com/bbw7561135/Stellar-winds/internal/export"
	"github.com/bbw7561135/Stellar-winds/internal/grid"
	"github.com/bbw7561135/Stellar-winds/internal/metrics"
	"github.com/bbw7561135/Stellar-winds/internal/storage"
	"github.com/bbw7561135/Stellar-winds/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	orbits      float64
	steps       int
	gridN       int
	metricsAddr string
	frameRate   int
	verbose     bool
	samples     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cwbsim",
		Short: "colliding-wind binary source conditions on a standalone grid",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cwbsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "initialize and refresh the winds over a number of orbits",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&orbits, "orbits", 0, "orbits to simulate (overrides config)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "steps per orbit (overrides config)")
	runCmd.Flags().IntVar(&gridN, "n", 0, "interior cells per axis (overrides config)")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view of the mid-plane density",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&gridN, "n", 0, "interior cells per axis (overrides config)")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "print the orbit track over one period",
		RunE:  printOrbit,
	}
	orbitCmd.Flags().IntVar(&samples, "samples", 24, "samples per period")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's radial density profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, orbitCmd, plotCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadConfig() (*config.Config, error) {
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
	if orbits > 0 {
		cfg.Run.Orbits = orbits
	}
	if steps > 0 {
		cfg.Run.StepsPerOrbit = steps
	}
	if gridN > 0 {
		cfg.Grid.N = gridN
	}
	return cfg, nil
}

func setup(cfg *config.Config, log zerolog.Logger) (*driver.Driver, *grid.Block, error) {
	b, err := cfg.NewBlock()
	if err != nil {
		return nil, nil, err
	}
	d, err := driver.New(cfg.DriverConfig(), log)
	if err != nil {
		return nil, nil, err
	}
	return d, b, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		log.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	d, b, err := setup(cfg, log)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := d.Initialize(b); err != nil {
		return err
	}

	period := cfg.Scales().TimeFromYears(cfg.Orbit.PeriodYr)
	nSteps := int(float64(cfg.Run.StepsPerOrbit) * cfg.Run.Orbits)
	dt := period / float64(cfg.Run.StepsPerOrbit)

	track := make([]storage.OrbitSample, 0, nSteps+1)
	for i := 0; i <= nSteps; i++ {
		t := float64(i) * dt
		if i > 0 {
			if err := d.Refresh(b, t); err != nil {
				return err
			}
		}
		w1, w2 := d.Sources()
		track = append(track, storage.OrbitSample{
			Time:       t,
			Phase:      d.Phase(),
			X1:         w1.Center().X,
			Y1:         w1.Center().Y,
			X2:         w2.Center().X,
			Y2:         w2.Center().Y,
			Separation: w1.Center().DistanceTo(w2.Center()),
		})
	}
	// One extra pass purely to count cells; imposition is idempotent.
	cells := d.Inject(b)
	elapsed := time.Since(start)

	runID, err := st.Create("cwb")
	if err != nil {
		return err
	}
	w1, _ := d.Sources()
	radii, dens := viz.RadialProfile(b, grid.Rho, w1.Center().X, w1.Center().Y)
	if err := st.SaveProfile(runID, radii, dens); err != nil {
		return err
	}
	if err := st.SaveSlice(runID, "midplane", viz.MidplaneSlice(b, grid.Rho)); err != nil {
		return err
	}
	if err := st.SaveOrbitTrack(runID, track); err != nil {
		return err
	}
	_, w2 := d.Sources()
	if svg := export.OrbitToSVG(track, w1.Radius(), w2.Radius(), 600, 600); svg != "" {
		if err := st.SaveRaw(runID, "orbit.svg", []byte(svg)); err != nil {
			return err
		}
	}
	if err := st.SaveMetadata(runID, storage.RunMetadata{
		ID:            runID,
		Preset:        preset,
		Timestamp:     time.Now(),
		Steps:         nSteps,
		Orbits:        cfg.Run.Orbits,
		Eccentricity:  cfg.Orbit.Eccentricity,
		FinalPhase:    d.Phase(),
		CellsInjected: cells,
	}); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", nSteps)
	fmt.Printf("final phase: %.4f\n", d.Phase())
	fmt.Printf("cells injected per pass: %d\n", cells)
	fmt.Printf("kepler non-convergences: %d\n", d.Orbit().NonConverged())

	fmt.Println()
	fmt.Print(viz.RenderSlice(viz.MidplaneSlice(b, grid.Rho), "midplane density", 72))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	log := newLogger().Level(zerolog.Disabled) // keep the alt screen clean
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, b, err := setup(cfg, log)
	if err != nil {
		return err
	}
	if err := d.Initialize(b); err != nil {
		return err
	}

	period := cfg.Scales().TimeFromYears(cfg.Orbit.PeriodYr)
	dt := period / float64(cfg.Run.StepsPerOrbit)

	model := viz.NewModel(d, b, dt, frameRate)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func printOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, _, err := setup(cfg, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "phase\tx1\ty1\tx2\ty2\tseparation")
	for i := 0; i < samples; i++ {
		phase := float64(i) / float64(samples)
		st := d.Orbit().Binary(phase)
		fmt.Fprintf(w, "%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			st.Phase, st.Pos1.X, st.Pos1.Y, st.Pos2.X, st.Pos2.Y, st.Separation())
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	radii, dens, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}
	if len(dens) == 0 {
		return fmt.Errorf("run %s has no profile data", args[0])
	}

	logDens := make([]float64, len(dens))
	for i, v := range dens {
		if v > 0 {
			logDens[i] = math.Log10(v)
		}
	}
	fmt.Printf("radial density profile, r = %.2f .. %.2f (log10 density)\n",
		radii[0], radii[len(radii)-1])
	fmt.Println(asciigraph.Plot(logDens, asciigraph.Height(16), asciigraph.Width(70)))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\twhen\tsteps\torbits\te\tfinal phase\tcells")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.3f\t%.3f\t%d\n",
			r.ID, r.Timestamp.Format(time.RFC3339), r.Steps, r.Orbits,
			r.Eccentricity, r.FinalPhase, r.CellsInjected)
	}
	return w.Flush()
}
