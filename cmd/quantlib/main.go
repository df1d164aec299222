// Command quantlib simulates paths of one-dimensional stochastic processes
// from YAML scenario files and exports them as CSV or JSON.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quanttiger/quantlib/internal/config"
	"github.com/quanttiger/quantlib/internal/domain"
	"github.com/quanttiger/quantlib/internal/historical"
	"github.com/quanttiger/quantlib/internal/output"
	"github.com/quanttiger/quantlib/internal/simulation"
	"github.com/quanttiger/quantlib/pkg/rate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// slogLogger adapts slog to the simulation logging interface.
type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debugf(format string, args ...any) { l.logger.Debug(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Infof(format string, args ...any)  { l.logger.Info(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Warnf(format string, args ...any)  { l.logger.Warn(fmt.Sprintf(format, args...)) }
func (l *slogLogger) Errorf(format string, args ...any) { l.logger.Error(fmt.Sprintf(format, args...)) }

func newLogger(verbose bool) *slogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &slogLogger{logger: slog.New(handler)}
}

type generateOptions struct {
	configPath      string
	outputPath      string
	calibratePath   string
	calibratePeriod float64
	seed            uint64
	verbose         bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quantlib",
		Short: "Monte Carlo path generation toolkit",
		Long: `quantlib simulates trajectories of stochastic processes (geometric and
arithmetic Brownian motion, Ornstein-Uhlenbeck) described by YAML scenario
files. Variates come from a seeded pseudo-random source or a Halton
sequence, optionally routed through a Brownian bridge, and results are
exported as CSV or JSON.`,
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInitCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Simulate paths from a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "scenario YAML file (required)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "output file (defaults to the scenario setting, then stdout)")
	cmd.Flags().StringVar(&opts.calibratePath, "calibrate", "", "CSV return series to calibrate drift and volatility from")
	cmd.Flags().Float64Var(&opts.calibratePeriod, "calibrate-period", 1.0/12.0, "observation spacing of the calibration series in years")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "override the scenario seed")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	logger := newLogger(opts.verbose)

	parser := config.NewInputParser()
	scenario, err := parser.LoadScenario(opts.configPath)
	if err != nil {
		return err
	}

	if opts.calibratePath != "" {
		if err := applyCalibration(logger, parser, scenario, opts); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("seed") {
		scenario.Simulation.Seed = opts.seed
	}

	runner := simulation.NewRunner()
	runner.SetLogger(logger)
	result, err := runner.Run(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	writer, err := output.ForFormat(scenario.Output.Format, scenario.Output.Precision)
	if err != nil {
		return err
	}

	target := opts.outputPath
	if target == "" {
		target = scenario.Output.Path
	}
	if target == "" {
		return writer.Write(cmd.OutOrStdout(), result)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := writer.Write(file, result); err != nil {
		return err
	}

	logger.Infof("Wrote %d paths to %s", len(result.Paths), target)
	return nil
}

// applyCalibration replaces the scenario's drift and volatility with
// estimates from a historical return series, then revalidates.
func applyCalibration(logger *slogLogger, parser *config.InputParser, scenario *domain.Scenario, opts *generateOptions) error {
	series, err := historical.LoadReturnSeries(opts.calibratePath)
	if err != nil {
		return fmt.Errorf("failed to load calibration data: %w", err)
	}

	var drift, volatility float64
	if scenario.Process.Model == domain.ModelGeometric {
		drift, volatility, err = series.CalibrateGBM(opts.calibratePeriod)
	} else {
		drift, volatility, err = series.CalibrateArithmetic(opts.calibratePeriod)
	}
	if err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}

	scenario.Process.Drift = rate.New(drift)
	scenario.Process.Volatility = rate.New(volatility)
	logger.Infof("Calibrated %s from %d observations: drift %.4f, volatility %.4f",
		scenario.Process.Model, series.Count(), drift, volatility)

	return parser.ValidateScenario(scenario)
}

func newInitCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			data, err := yaml.Marshal(parser.CreateExampleScenario())
			if err != nil {
				return fmt.Errorf("failed to marshal example scenario: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote example scenario to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "scenario.yaml", "destination file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
