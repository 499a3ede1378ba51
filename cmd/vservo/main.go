package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/davrolle/vservo/internal/analysis"
	"github.com/davrolle/vservo/internal/config"
	"github.com/davrolle/vservo/internal/export"
	"github.com/davrolle/vservo/internal/geom"
	"github.com/davrolle/vservo/internal/metrics"
	"github.com/davrolle/vservo/internal/scenario"
	"github.com/davrolle/vservo/internal/servo"
	"github.com/davrolle/vservo/internal/sim"
	"github.com/davrolle/vservo/internal/storage"
	"github.com/davrolle/vservo/internal/tune"
)

var (
	dataDir     string
	dt          float64
	iterations  int
	threshold   float64
	gain        float64
	adaptive    bool
	gainZero    float64
	gainInf     float64
	gainSlope   float64
	mode        string
	interaction string
	initialPose string
	desiredPose string
	// Config file
	configFile string
	// Preset name
	preset string
	// Diagnostic log target
	logFile string
	// Plot output
	svgFile      string
	plotVelocity bool
	// Stats settling band
	settleBand float64
	// Tune grid
	gainGrid   string
	tuneMetric string
	// Sweep ensemble
	sweepRuns   int
	sweepSpread float64
)

// main wires up the vservo CLI: it registers commands and flags and
// executes the root command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "vservo",
		Short: "visual servoing control lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vservo", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a servo loop",
		Args:  cobra.ExactArgs(1),
		RunE:  runServo,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "control period in seconds")
	runCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "cycle budget")
	runCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "convergence threshold on the error norm")
	runCmd.Flags().Float64Var(&gain, "gain", config.DefaultGain, "constant control gain")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "use an adaptive gain")
	runCmd.Flags().Float64Var(&gainZero, "gain-zero", config.DefaultGainZero, "adaptive gain at zero error")
	runCmd.Flags().Float64Var(&gainInf, "gain-inf", config.DefaultGainInf, "adaptive gain at large error")
	runCmd.Flags().Float64Var(&gainSlope, "gain-slope", config.DefaultGainSlope, "adaptive gain slope at zero")
	runCmd.Flags().StringVar(&mode, "mode", "eye-in-hand-camera", "servo mode")
	runCmd.Flags().StringVar(&interaction, "interaction", "current", "interaction matrix type")
	runCmd.Flags().StringVar(&initialPose, "initial", "", "starting camera-from-object pose tx,ty,tz,tux,tuy,tuz")
	runCmd.Flags().StringVar(&desiredPose, "desired", "", "goal camera-from-object pose tx,ty,tz,tux,tuy,tuz")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&logFile, "log", "", "write per-cycle diagnostics to a file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write an svg instead of drawing in the terminal")
	plotCmd.Flags().BoolVar(&plotVelocity, "velocity", false, "plot velocity components instead of the error norm")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "trace statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}
	statsCmd.Flags().Float64Var(&settleBand, "band", 1e-3, "settling band on the error norm")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "grid-search the control gain",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneScenario,
	}
	tuneCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "control period in seconds")
	tuneCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "cycle budget per grid point")
	tuneCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "convergence threshold on the error norm")
	tuneCmd.Flags().StringVar(&mode, "mode", "eye-in-hand-camera", "servo mode")
	tuneCmd.Flags().StringVar(&interaction, "interaction", "current", "interaction matrix type")
	tuneCmd.Flags().StringVar(&gainGrid, "gains", "0.2,0.5,1.0,2.0", "comma-separated gain candidates")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "convergence_time", "metric to minimize")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "run an ensemble of perturbed starts",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "control period in seconds")
	sweepCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "cycle budget per run")
	sweepCmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "convergence threshold on the error norm")
	sweepCmd.Flags().Float64Var(&gain, "gain", config.DefaultGain, "constant control gain")
	sweepCmd.Flags().StringVar(&mode, "mode", "eye-in-hand-camera", "servo mode")
	sweepCmd.Flags().StringVar(&interaction, "interaction", "current", "interaction matrix type")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of perturbed starts")
	sweepCmd.Flags().Float64Var(&sweepSpread, "spread", 0.1, "largest pose perturbation in meters")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := scenario.NewRegistry()
			for _, name := range registry.List() {
				fmt.Printf("  %-8s %s\n", name, registry.Describe(name))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, statsCmd, exportCmd, exportCSVCmd, exportJSONCmd, benchCmd, tuneCmd, sweepCmd, presetsCmd, scenariosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServo(cmd *cobra.Command, args []string) error {
	name := args[0]

	defaults := config.DefaultConfig()
	initial := geom.Vector(defaults.InitialPose)
	desired := geom.Vector(defaults.DesiredPose)

	// Load preset if specified
	if preset != "" {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		if cfg.Dt != 0 {
			dt = cfg.Dt
		}
		if cfg.Iterations != 0 {
			iterations = cfg.Iterations
		}
		adaptive = cfg.Gain.Adaptive
		if cfg.Gain.Constant != 0 {
			gain = cfg.Gain.Constant
		}
		if adaptive {
			gainZero = cfg.Gain.Zero
			gainInf = cfg.Gain.Inf
			gainSlope = cfg.Gain.Slope
		}
		if cfg.Mode != "" {
			mode = cfg.Mode
		}
		if cfg.Interaction != "" {
			interaction = cfg.Interaction
		}
		if len(cfg.InitialPose) == 6 {
			initial = cfg.InitialPose
		}
		if len(cfg.DesiredPose) == 6 {
			desired = cfg.DesiredPose
		}
	}

	// Load config file if specified (overrides preset, CLI flags win)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("iterations") {
			iterations = cfg.Iterations
		}
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.Threshold
		}
		if !cmd.Flags().Changed("mode") {
			mode = cfg.Mode
		}
		if !cmd.Flags().Changed("interaction") {
			interaction = cfg.Interaction
		}
		if !cmd.Flags().Changed("adaptive") {
			adaptive = cfg.Gain.Adaptive
		}
		if !cmd.Flags().Changed("gain") && cfg.Gain.Constant != 0 {
			gain = cfg.Gain.Constant
		}
		if !cmd.Flags().Changed("gain-zero") && cfg.Gain.Zero != 0 {
			gainZero = cfg.Gain.Zero
		}
		if !cmd.Flags().Changed("gain-inf") && cfg.Gain.Inf != 0 {
			gainInf = cfg.Gain.Inf
		}
		if !cmd.Flags().Changed("gain-slope") && cfg.Gain.Slope != 0 {
			gainSlope = cfg.Gain.Slope
		}
		if !cmd.Flags().Changed("initial") && len(cfg.InitialPose) == 6 {
			initial = cfg.InitialPose
		}
		if !cmd.Flags().Changed("desired") && len(cfg.DesiredPose) == 6 {
			desired = cfg.DesiredPose
		}
	}

	// Pose flags beat both preset and config file
	if cmd.Flags().Changed("initial") {
		v, err := parsePose(initialPose)
		if err != nil {
			return fmt.Errorf("invalid --initial: %w", err)
		}
		initial = v
	}
	if cmd.Flags().Changed("desired") {
		v, err := parsePose(desiredPose)
		if err != nil {
			return fmt.Errorf("invalid --desired: %w", err)
		}
		desired = v
	}

	servoMode, err := servo.ParseMode(mode)
	if err != nil {
		return err
	}
	itype, err := servo.ParseInteractionType(interaction)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := scenario.NewRegistry()

	params := scenario.Params{
		Mode:        servoMode,
		Interaction: itype,
		Gain:        gain,
		Adaptive:    adaptive,
		GainZero:    gainZero,
		GainInf:     gainInf,
		GainSlope:   gainSlope,
		InitialPose: initial,
		DesiredPose: desired,
		Dt:          dt,
	}

	sc, err := registry.Get(name, params)
	if err != nil {
		return err
	}

	loop := sim.New(sc.Task, sc.Robot, sc.Update)
	loop.AddMetric(metrics.NewControlEffort())
	loop.AddMetric(metrics.NewConvergenceTime(threshold))
	loop.AddMetric(metrics.NewFinalError())

	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		loop.AddObserver(sim.NewDiagnostic(f))
	}

	fmt.Printf("running %s servo...\n", name)
	start := time.Now()

	result, err := loop.Run(context.Background(), sim.Config{
		Iterations: iterations,
		Dt:         dt,
		Threshold:  threshold,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, servoMode.String(), itype.String(), gainLabel(), dt, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("cycles: %d\n", result.Iterations)
	fmt.Printf("converged: %v\n", result.Converged)
	if result.Degraded {
		fmt.Println("warning: the feature stack lost rank during the run")
	}
	fmt.Println("\nmetrics:")
	for metric, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", metric, val)
	}

	return nil
}

func gainLabel() string {
	if adaptive {
		return fmt.Sprintf("adaptive(%.2f,%.2f,%.2f)", gainZero, gainInf, gainSlope)
	}
	return fmt.Sprintf("%.2f", gain)
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parsePose(s string) (geom.Vector, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return nil, err
	}
	if len(vals) != 6 {
		return nil, fmt.Errorf("expected 6 comma-separated values, got %d", len(vals))
	}
	return vals, nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tMODE\tINTERACTION\tCYCLES\tCONVERGED\tFINAL_ERROR")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%v\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Interaction,
			run.Iterations,
			run.Converged,
			run.FinalError,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	if plotVelocity {
		return plotVelocities(series)
	}

	if svgFile != "" {
		svg := export.TraceToSVG(series.Times, series.Norms, 800, 400, export.DefaultPalette[0])
		if svg == "" {
			return fmt.Errorf("not enough samples for an svg")
		}
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	graph := asciigraph.Plot(series.Norms,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("error norm vs cycle"),
	)
	fmt.Println(graph)

	return nil
}

func plotVelocities(series *storage.Series) error {
	if len(series.Velocities) == 0 || len(series.Velocities[0]) == 0 {
		return fmt.Errorf("no velocity data")
	}

	numVars := len(series.Velocities[0])

	cols := make([][]float64, numVars)
	for v := 0; v < numVars; v++ {
		col := make([]float64, len(series.Velocities))
		for i := range series.Velocities {
			col[i] = series.Velocities[i][v]
		}
		cols[v] = col
	}

	if svgFile != "" {
		svg := export.MultiTraceToSVG(series.Times, cols, 800, 400, nil)
		if svg == "" {
			return fmt.Errorf("not enough samples for an svg")
		}
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
		return nil
	}

	names := []string{"vx", "vy", "vz", "wx", "wy", "wz"}
	for v := 0; v < numVars; v++ {
		caption := fmt.Sprintf("v%d vs cycle", v)
		if numVars == 6 {
			caption = names[v] + " vs cycle"
		}

		graph := asciigraph.Plot(cols[v],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("trace statistics: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	rate := analysis.DecayRate(series.Times, series.Norms)
	fmt.Printf("decay rate: %.4f /s\n", rate)

	peak, cycle := analysis.PeakVelocity(series.Velocities)
	fmt.Printf("peak velocity: %.4f (cycle %d)\n", peak, cycle)

	fmt.Printf("overshoot: %.1f%%\n", analysis.Overshoot(series.Norms)*100)

	if at, ok := analysis.SettlingTime(series.Times, series.Norms, settleBand); ok {
		fmt.Printf("settled below %.1e at t=%.3fs\n", settleBand, at)
	} else {
		fmt.Printf("never settled below %.1e\n", settleBand)
	}

	fmt.Println()
	graph := asciigraph.Plot(series.Norms,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("error norm vs cycle"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	// Header
	header := []string{"time"}
	for i := range series.Velocities[0] {
		header = append(header, fmt.Sprintf("v%d", i))
	}
	for i := range series.Errors[0] {
		header = append(header, fmt.Sprintf("e%d", i))
	}
	header = append(header, "error_norm")
	if err := w.Write(header); err != nil {
		return err
	}

	// Data rows
	for i := range series.Times {
		row := []string{strconv.FormatFloat(series.Times[i], 'f', 6, 64)}
		for _, val := range series.Velocities[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		for _, val := range series.Errors[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row, strconv.FormatFloat(series.Norms[i], 'f', 6, 64))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, series)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := scenario.NewRegistry()
	defaults := config.DefaultConfig()

	counts := []int{200, 1000}
	dts := []float64{0.01, 0.04, 0.1}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CYCLES\tDT\tTIME\tCYCLES/SEC")

	for _, n := range counts {
		for _, step := range dts {
			params := scenario.Params{
				Mode:        servo.EyeInHandCamera,
				Interaction: servo.InteractionCurrent,
				Gain:        defaults.Gain.Constant,
				InitialPose: defaults.InitialPose,
				DesiredPose: defaults.DesiredPose,
				Dt:          step,
			}

			sc, err := registry.Get(name, params)
			if err != nil {
				return err
			}

			loop := sim.New(sc.Task, sc.Robot, sc.Update)

			start := time.Now()
			result, err := loop.Run(context.Background(), sim.Config{Iterations: n, Dt: step, Threshold: 0})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			cyclesPerSec := float64(result.Iterations) / elapsed.Seconds()

			fmt.Fprintf(w, "%d\t%.4fs\t%v\t%.0f\n",
				result.Iterations, step, elapsed, cyclesPerSec)
		}
	}

	return w.Flush()
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	values, err := parseFloats(gainGrid)
	if err != nil {
		return fmt.Errorf("invalid --gains: %w", err)
	}

	servoMode, err := servo.ParseMode(mode)
	if err != nil {
		return err
	}
	itype, err := servo.ParseInteractionType(interaction)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	defaults := config.DefaultConfig()

	build := func(params map[string]float64) (*sim.Loop, sim.Config, error) {
		p := scenario.Params{
			Mode:        servoMode,
			Interaction: itype,
			Gain:        params["gain"],
			InitialPose: defaults.InitialPose,
			DesiredPose: defaults.DesiredPose,
			Dt:          dt,
		}

		sc, err := registry.Get(name, p)
		if err != nil {
			return nil, sim.Config{}, err
		}

		loop := sim.New(sc.Task, sc.Robot, sc.Update)
		loop.AddMetric(metrics.NewControlEffort())
		loop.AddMetric(metrics.NewConvergenceTime(threshold))
		loop.AddMetric(metrics.NewFinalError())

		return loop, sim.Config{Iterations: iterations, Dt: dt, Threshold: threshold}, nil
	}

	gs := tune.NewGridSearch([]string{"gain"}, [][]float64{values})

	fmt.Printf("tuning %s over %d gain candidates...\n", name, len(values))
	best, bestVal, err := gs.Search(context.Background(), build, tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best gain: %.3f\n", best["gain"])
	fmt.Printf("%s: %.6f\n", tuneMetric, bestVal)

	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	name := args[0]

	servoMode, err := servo.ParseMode(mode)
	if err != nil {
		return err
	}
	itype, err := servo.ParseInteractionType(interaction)
	if err != nil {
		return err
	}

	registry := scenario.NewRegistry()
	defaults := config.DefaultConfig()

	build := func(idx int) (*sim.Loop, error) {
		initial := append(geom.Vector{}, defaults.InitialPose...)

		// Alternate starts on both sides of the nominal pose
		offset := sweepSpread * float64(idx+1) / float64(sweepRuns)
		if idx%2 == 1 {
			offset = -offset
		}
		initial[0] += offset
		initial[1] -= offset / 2

		p := scenario.Params{
			Mode:        servoMode,
			Interaction: itype,
			Gain:        gain,
			InitialPose: initial,
			DesiredPose: defaults.DesiredPose,
			Dt:          dt,
		}

		sc, err := registry.Get(name, p)
		if err != nil {
			return nil, err
		}
		return sim.New(sc.Task, sc.Robot, sc.Update), nil
	}

	ensemble := sim.NewEnsemble(build, sweepRuns)

	fmt.Printf("sweeping %s over %d starts...\n", name, sweepRuns)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), sim.Config{
		Iterations: iterations,
		Dt:         dt,
		Threshold:  threshold,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	converged := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tCYCLES\tCONVERGED\tFINAL_ERROR")

	for i, r := range results {
		if r.Converged {
			converged++
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.2e\n", i, r.Iterations, r.Converged, r.FinalError)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d/%d converged in %v\n", converged, sweepRuns, elapsed)

	return nil
}
