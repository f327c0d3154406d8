package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/emit"
	"github.com/san-kum/algoviz/internal/input"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/stepper"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	logFile    string
	dataDir    string
	// Algorithm input
	values        string
	amount        string
	denominations string
	boardSize     string
	capacity      string
	items         string
	// Playback
	speedLevel int
	instant    bool
	// Output
	outFile    string
	saveRun    bool
	plotHeight int
	plotWidth  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "step-by-step algorithm visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset input")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")
	pf.StringVar(&dataDir, "data", ".algoviz", "directory for saved runs")
	pf.StringVar(&values, "values", "", "merge sort array, e.g. \"5, 2, 8\"")
	pf.StringVar(&amount, "amount", "", "coin change amount")
	pf.StringVar(&denominations, "denominations", "", "descending coin values, e.g. \"100, 50, 20\"")
	pf.StringVar(&boardSize, "size", "", "N-Queens board size")
	pf.StringVar(&capacity, "capacity", "", "knapsack capacity")
	pf.StringVar(&items, "items", "", "knapsack items as \"w, v; w, v\"")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "play an algorithm and log every step",
		Args:  cobra.ExactArgs(1),
		RunE:  runAlgorithm,
	}
	runCmd.Flags().IntVar(&speedLevel, "speed", config.DefaultSpeedLevel, "speed level (5-100)")
	runCmd.Flags().BoolVar(&instant, "instant", false, "skip playback delays")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "write the step transcript as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  traceAlgorithm,
	}
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	traceCmd.Flags().BoolVar(&saveRun, "save", false, "also save the run to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the steps of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot algorithm progress per step",
		Args:  cobra.ExactArgs(1),
		RunE:  plotAlgorithm,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")

	scriptCmd := &cobra.Command{
		Use:   "script [file.yaml]",
		Short: "run a scenario of algorithm runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tPRESETS")
			for _, name := range reg.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, reg.Title(name), strings.Join(config.ListPresets(name), ", "))
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, traceCmd, plotCmd, scriptCmd, presetsCmd, listCmd, runsCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		var verr *algo.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "invalid %s: %s\n", verr.Field, verr.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and then any
// input flags.
func loadConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && algorithm != "" {
		if err := cfg.ApplyPreset(algorithm, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(algorithm))
		}
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("values") {
		if cfg.MergeSort.Values, err = input.ParseValues(values); err != nil {
			return nil, err
		}
	}
	if flags.Changed("amount") {
		if cfg.Coins.Amount, err = input.ParseAmount(amount); err != nil {
			return nil, err
		}
	}
	if flags.Changed("denominations") {
		if cfg.Coins.Denominations, err = input.ParseDenominations(denominations); err != nil {
			return nil, err
		}
	}
	if flags.Changed("size") {
		if cfg.NQueens.Size, err = input.ParseBoardSize(boardSize); err != nil {
			return nil, err
		}
	}
	if flags.Changed("capacity") {
		if cfg.Knapsack.Capacity, err = input.ParseCapacity(capacity); err != nil {
			return nil, err
		}
	}
	if flags.Changed("items") {
		if cfg.Knapsack.Items, err = input.ParseItems(items); err != nil {
			return nil, err
		}
	}
	if flags.Changed("speed") {
		cfg.SpeedLevel = speedLevel
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	// The terminal belongs to the TUI; logs only go to an explicit file.
	var logger *slog.Logger
	if logFile == "" {
		logger, err = newLogger(cfg.Log, io.Discard)
	} else {
		var closeLog func()
		logger, closeLog, err = openLogger(cfg.Log)
		if closeLog != nil {
			defer closeLog()
		}
	}
	if err != nil {
		return err
	}
	var sink emit.Sink
	if logFile != "" {
		sink = emit.NewLogSink(logger, levelDebug)
	}
	return viz.RunInteractive(registry.NewRegistry(), cfg, sink, logger)
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	seq, err := registry.NewRegistry().New(name, cfg)
	if err != nil {
		return err
	}
	sink := emit.NewLogSink(logger, levelInfo)

	if instant {
		tr := trace.Record(seq, nil)
		for _, ev := range tr.Events {
			sink.Emit(ev)
		}
		fmt.Println(viz.Summary(tr.Result))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := playback.New(sink,
		playback.WithSettle(time.Duration(cfg.SettleMs)*time.Millisecond),
		playback.WithLogger(logger),
	)
	ctrl.SetSpeed(cfg.SpeedLevel)
	ctrl.Start(seq)
	ctrl.TogglePlayPause()

	select {
	case <-ctrl.Done():
		fmt.Println(viz.Summary(ctrl.Result()))
		return nil
	case <-ctx.Done():
		ctrl.Reset()
		return ctx.Err()
	}
}

func traceAlgorithm(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}
	seq, err := registry.NewRegistry().New(name, cfg)
	if err != nil {
		return err
	}
	tr := trace.Record(seq, cfg.Section(name))
	if saveRun {
		id, err := storage.New(dataDir).Save(tr)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved run %s\n", id)
	}
	if outFile == "" {
		return trace.ExportJSONStdout(tr)
	}
	if err := trace.ExportJSON(outFile, tr); err != nil {
		return err
	}
	fmt.Printf("wrote %d steps to %s\n", tr.Steps, outFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSTEPS\tSUCCESS\tBACKTRACK")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Counts[string(stepper.KindSuccess)],
			run.Counts[string(stepper.KindBacktrack)],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	events, err := storage.New(dataDir).LoadEvents(args[0])
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Println(ev)
	}
	return nil
}

func plotAlgorithm(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}
	seq, err := registry.NewRegistry().New(name, cfg)
	if err != nil {
		return err
	}
	tr := trace.Record(seq, nil)
	fmt.Println(trace.Plot(name, tr.Events, plotWidth, plotHeight))
	fmt.Println(viz.Summary(tr.Result))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(base.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, registry.NewRegistry(), base, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tEVENTS\tRESULT\tSAVED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, r.Algorithm, r.Transcript.Steps, viz.Summary(r.Transcript.Result), r.SavedTo)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	return err
}
