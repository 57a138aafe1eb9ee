package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/juanalytics/scf-lite/internal/config"
	"github.com/juanalytics/scf-lite/internal/logger"
	"github.com/juanalytics/scf-lite/internal/molecule"
	"github.com/juanalytics/scf-lite/internal/output"
	"github.com/juanalytics/scf-lite/internal/scan"
	"github.com/juanalytics/scf-lite/internal/scf"
)

// newSolver builds the SCF backend from the loaded config. Tests swap it
// for a stub so CLI behavior can be exercised without a python installation.
var newSolver = func(cfg *config.Config) scf.Solver {
	return &scf.PySCF{
		PythonPath: cfg.PythonPath,
		ScratchDir: cfg.ScratchDir,
	}
}

// runRoot implements the root command: resolve configuration and input,
// then dispatch to a scan mode or the single-point calculation.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format := output.Format(mustString(cmd, "format"))
	if !format.Valid() {
		return fmt.Errorf("unknown output format %q: use dict or json", format)
	}

	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)

	solver := newSolver(cfg)
	ctx := cmd.Context()

	// The fixed convenience scans need no molecule input.
	if scanH2, _ := cmd.Flags().GetBool("scan-h2"); scanH2 {
		curve, err := scan.H2(ctx, solver, log)
		if err != nil {
			return err
		}
		return reportScan(cmd, cfg, log, curve)
	}
	if scanOH, _ := cmd.Flags().GetBool("scan-oh"); scanOH {
		curve, err := scan.OH(ctx, solver, log)
		if err != nil {
			return err
		}
		return reportScan(cmd, cfg, log, curve)
	}

	spec, err := resolveInput(cmd)
	if err != nil {
		return err
	}

	if v := molecule.Validate(spec); !v.Valid {
		return fmt.Errorf("validation failed: %s", v.Reason)
	}

	if bond, _ := cmd.Flags().GetIntSlice("scan-bond"); len(bond) > 0 {
		if len(bond) != 2 {
			return fmt.Errorf("--scan-bond needs exactly two atom indices, got %d", len(bond))
		}
		// CLI indices are 1-based.
		curve, err := scan.Bond(ctx, solver, log, spec, bond[0]-1, bond[1]-1)
		if err != nil {
			return err
		}
		return reportScan(cmd, cfg, log, curve)
	}

	log.Debugf("running %s with %s", spec, cfg.PythonPath)
	res, err := scf.Calculate(ctx, solver, spec)
	if err != nil {
		return err
	}
	log.Debugf("solve finished in %.2fs (%d iterations, converged=%v)",
		res.ElapsedSeconds, res.Iterations, res.Converged)

	return reportResult(cmd, format, res)
}

// loadConfig loads tool settings from --config, or from .scflite/config.yaml
// in the working directory when the flag is unset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveInput builds the unvalidated molecule spec from whichever input
// mode is in use. A file takes precedence over direct arguments; when
// neither mode is usable the usage text is shown and an error returned.
func resolveInput(cmd *cobra.Command) (*molecule.Spec, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		// File contents win over --charge/--spin/--basis; those flags only
		// apply to direct input.
		return molecule.LoadFile(path)
	}

	symbols, _ := cmd.Flags().GetStringSlice("symbols")
	coords, _ := cmd.Flags().GetFloat64Slice("coordinates")
	if len(symbols) > 0 && len(coords) > 0 {
		if len(coords)%3 != 0 {
			return nil, fmt.Errorf("the number of coordinate values must be a multiple of 3, got %d", len(coords))
		}
		charge, _ := cmd.Flags().GetInt("charge")
		spin, _ := cmd.Flags().GetInt("spin")
		basis, _ := cmd.Flags().GetString("basis")

		spec := &molecule.Spec{
			Symbols: symbols,
			Charge:  charge,
			Spin:    spin,
			Basis:   basis,
		}
		for i := 0; i < len(coords); i += 3 {
			spec.Coordinates = append(spec.Coordinates, []float64{coords[i], coords[i+1], coords[i+2]})
		}
		return spec, nil
	}

	_ = cmd.Usage()
	return nil, fmt.Errorf("provide a molecule file (-f) or symbols and coordinates (-s, -c)")
}

// reportResult formats a single-point result and prints it, optionally
// writing the serialized report to the --output file as well.
func reportResult(cmd *cobra.Command, format output.Format, res *scf.Result) error {
	report := output.New(res)

	var rendered string
	switch format {
	case output.FormatJSON:
		s, err := report.JSON()
		if err != nil {
			return err
		}
		rendered = s
	case output.FormatDict:
		// The native-mapping mode still prints JSON on the console.
		data, err := json.MarshalIndent(report.Map(), "", "  ")
		if err != nil {
			return err
		}
		rendered = string(data)
	}

	if path := mustString(cmd, "output"); path != "" {
		if err := report.WriteFile(path); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// reportScan prints the tabulated curve and renders the plot image.
func reportScan(cmd *cobra.Command, cfg *config.Config, log *logger.ConsoleLogger, curve *scan.Curve) error {
	scan.WriteReport(cmd.OutOrStdout(), curve)
	if err := scan.RenderPlot(curve, cfg.PlotFile); err != nil {
		return fmt.Errorf("failed to render scan plot: %w", err)
	}
	log.Infof("scan plot written to %s", cfg.PlotFile)
	return nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
