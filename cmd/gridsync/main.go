package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridsync/internal/config"
	"github.com/yourusername/gridsync/internal/geometry"
	"github.com/yourusername/gridsync/internal/logging"
	"github.com/yourusername/gridsync/internal/output"
	"github.com/yourusername/gridsync/internal/scenario"
	"github.com/yourusername/gridsync/internal/tween"
)

var (
	configPath string
	logFile    string
	logStderr  bool
	jsonOutput bool
	noColor    bool
	debugMode  bool

	cfg *config.Config

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "gridsync",
	Short: "Window group geometry coordination engine",
	Long: `gridsync keeps groups of windows moving and resizing together.

It replays scripted window sessions against an in-memory host, renders the
result, and drives real X11 windows through the same engine.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		setupLogging(os.Stderr)
		return nil
	},
}

// setupLogging configures the logger from flags and config. Problems are
// reported to warn and never stop the command.
func setupLogging(warn io.Writer) {
	switch {
	case logStderr:
		logging.InitWriter(os.Stderr)
	default:
		path := logFile
		if path == "" {
			path = cfg.Logging.File
		}
		if err := logging.Init(path); err != nil {
			fmt.Fprintf(warn, "warning: logging disabled: %v\n", err)
		}
	}
	if cfg.Logging.Level != "" {
		if err := logging.SetLevel(cfg.Logging.Level); err != nil {
			fmt.Fprintf(warn, "warning: %v\n", err)
		}
	}
	if debugMode {
		logging.SetDebug(true)
	}
}

// easingsCmd lists the easing functions
var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List easing functions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(tween.Names())
		}
		output.PrintEasingsTable(os.Stdout)
		return nil
	},
}

// simulateCmd replays a scenario
var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>",
	Short: "Replay a scripted window session",
	Long: `Replays a scenario file against an in-memory window system and a virtual
clock, then prints every bounds event the engine emitted and where each window
ended up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := runScenario(args[0])
		if err != nil {
			return err
		}

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			if err := scenario.WriteReport(out, rep); err != nil {
				return err
			}
			if !jsonOutput {
				successColor.Printf("✓ Report written to %s\n", out)
			}
		}

		if jsonOutput {
			return printJSON(rep)
		}

		keyColor.Print("Scenario: ")
		fmt.Printf("%s (%dms simulated, %d batches)\n\n", rep.Name, rep.DurationMs, rep.Batches)
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			output.PrintEventsTable(os.Stdout, rep.Events)
			fmt.Println()
		}
		output.PrintWindowsTable(os.Stdout, output.ViewsFromReport(rep))
		printStepErrors(rep)
		return nil
	},
}

// showCmd renders the final layout of a scenario or a stored report
var showCmd = &cobra.Command{
	Use:   "show <scenario.yaml|report>",
	Short: "Visualize window positions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rep *scenario.Report
		var screen *geometry.Rect
		var err error

		if isReport, _ := cmd.Flags().GetBool("report"); isReport {
			rep, err = scenario.LoadReport(args[0])
		} else {
			var sc *scenario.Scenario
			sc, err = scenario.Load(args[0])
			if err == nil {
				if sc.Screen != nil {
					r := sc.Screen.Geometry()
					screen = &r
				}
				rep, err = scenario.Run(sc, cfg.ManagerOptions())
			}
		}
		if err != nil {
			return err
		}

		views := output.ViewsFromReport(rep)
		if jsonOutput {
			return printJSON(views)
		}

		opts := output.DefaultVisualizationOptions()
		opts.Screen = screen
		if ascii, _ := cmd.Flags().GetBool("ascii"); ascii {
			opts.UseUnicode = false
		}
		output.PrintVisualization(os.Stdout, views, opts)
		return nil
	},
}

// adjacencyCmd prints shared edges of a scenario's windows
var adjacencyCmd = &cobra.Command{
	Use:   "adjacency <scenario.yaml>",
	Short: "Show which windows share edges",
	Long: `Prints every pair of windows whose edges lie within the configured
tolerance, and the cluster each window belongs to. With --final the scenario
is replayed first and the final positions are used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		var views []output.WindowView
		if final, _ := cmd.Flags().GetBool("final"); final {
			rep, err := scenario.Run(sc, cfg.ManagerOptions())
			if err != nil {
				return err
			}
			views = output.ViewsFromReport(rep)
		} else {
			for _, w := range sc.Windows {
				views = append(views, output.WindowView{Name: w.Name, Group: w.Group, Bounds: w.Bounds.Geometry(), Opacity: 1})
			}
		}

		tolerance := cfg.Engine.Tolerance
		if cmd.Flags().Changed("tolerance") {
			tolerance, _ = cmd.Flags().GetInt("tolerance")
		}
		if jsonOutput {
			rects := make([]geometry.Rect, len(views))
			for i, v := range views {
				rects[i] = v.Bounds
			}
			return printJSON(geometry.AdjacencyList(rects, tolerance))
		}
		output.PrintAdjacencyTable(os.Stdout, views, tolerance)
		return nil
	},
}

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

// configShowCmd shows current config
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(cfg)
		}
		data, err := cfg.Marshal("yaml")
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configValidateCmd validates config file
var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if len(args) > 0 {
			var err error
			c, err = config.LoadConfig(args[0])
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}

		if err := c.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Backend: %s\n", c.Backend.Kind)
		fmt.Printf("  Tick: %dms\n", c.Engine.TickIntervalMs)
		fmt.Printf("  Default easing: %s\n", c.Engine.DefaultEasing)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/gridsync/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default ~/.local/state/gridsync/gridsync.log)")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "Log to stderr instead of a file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(easingsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(adjacencyCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	rootCmd.AddCommand(x11Cmd)
	x11Cmd.AddCommand(x11MoveCmd)
	x11Cmd.AddCommand(x11AnimateCmd)

	simulateCmd.Flags().String("out", "", "Write the report to a .json or .yaml file")
	simulateCmd.Flags().BoolP("quiet", "q", false, "Omit the event table")
	showCmd.Flags().Bool("report", false, "Argument is a report written by simulate --out")
	showCmd.Flags().Bool("ascii", false, "Draw with ASCII characters only")
	adjacencyCmd.Flags().Bool("final", false, "Use positions after replaying the scenario")
	adjacencyCmd.Flags().Int("tolerance", 0, "Edge tolerance in px (default from config)")

	x11MoveCmd.Flags().IntVar(&x11Left, "x", 0, "Left edge")
	x11MoveCmd.Flags().IntVar(&x11Top, "y", 0, "Top edge")
	x11MoveCmd.Flags().IntVar(&x11Width, "width", 0, "Width (default: keep)")
	x11MoveCmd.Flags().IntVar(&x11Height, "height", 0, "Height (default: keep)")

	x11AnimateCmd.Flags().IntVar(&x11Left, "x", 0, "Target left edge")
	x11AnimateCmd.Flags().IntVar(&x11Top, "y", 0, "Target top edge")
	x11AnimateCmd.Flags().IntVar(&x11Width, "width", 0, "Target width")
	x11AnimateCmd.Flags().IntVar(&x11Height, "height", 0, "Target height")
	x11AnimateCmd.Flags().Float64Var(&x11Opacity, "opacity", 1, "Target opacity")
	x11AnimateCmd.Flags().BoolVar(&x11Relative, "relative", false, "Targets are offsets from the current values")
	x11AnimateCmd.Flags().DurationVar(&x11Duration, "duration", 0, "Duration (default 300ms)")
	x11AnimateCmd.Flags().StringVar(&x11Easing, "easing", "", "Easing name (default from config)")

	for _, c := range []*cobra.Command{x11MoveCmd, x11AnimateCmd} {
		c.Flags().StringVar(&x11Group, "group", "cli", "Group name for the listed windows")
	}
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// Helper functions

func runScenario(path string) (*scenario.Report, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("scenario", sc.Name).Int("steps", len(sc.Steps)).Msg("running scenario")
	return scenario.Run(sc, cfg.ManagerOptions())
}

func printStepErrors(rep *scenario.Report) {
	if len(rep.Errors) == 0 {
		return
	}
	fmt.Println()
	errorColor.Printf("%d step(s) failed:\n", len(rep.Errors))
	for _, e := range rep.Errors {
		keyColor.Printf("  step %d: ", e.Step)
		fmt.Println(e.Error)
	}
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}
