package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/annealing-core/internal/metrics"
	"github.com/GoSim-25-26J-441/annealing-core/internal/tsp"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/anneal"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/config"
	"github.com/GoSim-25-26J-441/annealing-core/pkg/logger"
	"github.com/spf13/cobra"
)

type tspOptions struct {
	maxTemps     int
	itersPerTemp int
	alpha        float64
	tol          float64
	scale        float64
	seed         int64
	verbose      bool
	interactive  bool
	trace        bool
}

func newTSPCommand(global *globalOptions) *cobra.Command {
	opts := &tspOptions{}

	cmd := &cobra.Command{
		Use:   "tsp",
		Short: "Solve a closed traveling-salesman tour",
		Long: `Solve a closed tour that starts and ends at city 0.

Without a config file the built-in 41-city table is used. Flags override
values from the config file. With --interactive the command prompts for max
temps, iterations per temperature and alpha, and runs with verbose output
off and early stopping disabled.`,
		Example: `  # Prompt for parameters
  anneal tsp --interactive

  # Fixed seed, JSON output with a per-temperature trace
  anneal tsp --seed 42 --max-temps 200 --alpha 0.95 --json --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			applyTSPFlags(cmd, opts, cfg)

			if opts.interactive {
				if err := promptParameters(cmd.InOrStdin(), cmd.OutOrStdout(), cfg); err != nil {
					return err
				}
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid parameters: %w", err)
			}

			problem := tsp.Problem{
				Cities: citiesFromConfig(cfg),
				Params: cfg.Parameters(),
				Scale:  cfg.Acceptance.Scale,
				Seed:   cfg.Seed,
			}

			runOpts := []anneal.Option{anneal.WithLogger(logger.Default)}
			var trace *metrics.Trace
			if opts.trace {
				trace = metrics.NewTrace()
				runOpts = append(runOpts, anneal.WithObserver(trace))
			}

			logger.Debug("starting run",
				"cities", len(problem.Cities),
				"max_temps", problem.Params.MaxTemps,
				"iters_per_temp", problem.Params.ItersPerTemp,
				"alpha", problem.Params.Alpha)

			report, err := tsp.Solve(problem, runOpts...)
			if err != nil {
				return err
			}

			if global.jsonOutput {
				return writeReportJSON(cmd.OutOrStdout(), report, trace)
			}
			return writeReportText(cmd.OutOrStdout(), report, trace)
		},
	}

	cmd.Flags().IntVar(&opts.maxTemps, "max-temps", 0, "number of temperature stages")
	cmd.Flags().IntVar(&opts.itersPerTemp, "iters-per-temp", 0, "iterations per temperature")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0, "geometric cooling factor in (0,1)")
	cmd.Flags().Float64Var(&opts.tol, "tol", 0, "cost reduction tolerance (0 disables early stop)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "acceptance temperature scale")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "log every accepted move")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for parameters")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "include a per-temperature trace")

	return cmd
}

// applyTSPFlags copies explicitly set flags over cfg
func applyTSPFlags(cmd *cobra.Command, opts *tspOptions, cfg *config.RunConfig) {
	flags := cmd.Flags()
	if flags.Changed("max-temps") {
		cfg.Annealing.MaxTemps = opts.maxTemps
	}
	if flags.Changed("iters-per-temp") {
		cfg.Annealing.ItersPerTemp = opts.itersPerTemp
	}
	if flags.Changed("alpha") {
		cfg.Annealing.Alpha = opts.alpha
	}
	if flags.Changed("tol") {
		cfg.Annealing.CostReductionTol = opts.tol
	}
	if flags.Changed("scale") {
		cfg.Acceptance.Scale = opts.scale
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("verbose") {
		cfg.Annealing.Verbose = opts.verbose
	}
}

// promptParameters asks for the three run parameters the demo has always asked for
func promptParameters(in io.Reader, out io.Writer, cfg *config.RunConfig) error {
	r := bufio.NewReader(in)

	maxTemps, err := promptInt(r, out, "Enter max temps: ")
	if err != nil {
		return err
	}
	iters, err := promptInt(r, out, "Enter iterations per temperature: ")
	if err != nil {
		return err
	}
	alpha, err := promptFloat(r, out, "Enter alpha: ")
	if err != nil {
		return err
	}

	cfg.Annealing.MaxTemps = maxTemps
	cfg.Annealing.ItersPerTemp = iters
	cfg.Annealing.Alpha = alpha
	cfg.Annealing.Verbose = false
	cfg.Annealing.CostReductionTol = 0
	return nil
}

func promptInt(r *bufio.Reader, out io.Writer, prompt string) (int, error) {
	s, err := promptLine(r, out, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s expected an integer, got %q", strings.TrimSuffix(prompt, ": "), s)
	}
	return v, nil
}

func promptFloat(r *bufio.Reader, out io.Writer, prompt string) (float64, error) {
	s, err := promptLine(r, out, prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s expected a number, got %q", strings.TrimSuffix(prompt, ": "), s)
	}
	return v, nil
}

func promptLine(r *bufio.Reader, out io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return "", err
	}
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading %q: %w", strings.TrimSuffix(prompt, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

func citiesFromConfig(cfg *config.RunConfig) []tsp.City {
	if len(cfg.Cities) == 0 {
		return tsp.DefaultCities()
	}
	cities := make([]tsp.City, len(cfg.Cities))
	for i, p := range cfg.Cities {
		cities[i] = tsp.City{X: p.X, Y: p.Y}
	}
	return cities
}

func writeReportText(w io.Writer, report tsp.Report, trace *metrics.Trace) error {
	parts := make([]string, len(report.Tour))
	for i, c := range report.Tour {
		parts[i] = strconv.Itoa(c)
	}
	if _, err := fmt.Fprintf(w, "Tour length: %d\nComputed tour: %s\n", report.Length, strings.Join(parts, " ")); err != nil {
		return err
	}
	if trace == nil {
		return nil
	}
	for _, p := range trace.Points() {
		if _, err := fmt.Fprintf(w, "stage %4d  T=%.6f  accepted=%d/%d  best=%.0f\n",
			p.Outer, p.Temperature, p.Accepted, p.Steps, p.BestCost); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Acceptance rate: %.4f\n", trace.AcceptanceRate())
	return err
}

func writeReportJSON(w io.Writer, report tsp.Report, trace *metrics.Trace) error {
	out := struct {
		tsp.Report
		Trace          []metrics.StagePoint `json:"trace,omitempty"`
		AcceptanceRate *float64             `json:"acceptance_rate,omitempty"`
	}{Report: report}
	if trace != nil {
		rate := trace.AcceptanceRate()
		out.Trace = trace.Points()
		out.AcceptanceRate = &rate
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
