package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/drmlgentry/Golden-Unification/adapters/battery"
	"github.com/drmlgentry/Golden-Unification/adapters/excel"
	"github.com/drmlgentry/Golden-Unification/adapters/report"
	"github.com/drmlgentry/Golden-Unification/adapters/rng"
	"github.com/drmlgentry/Golden-Unification/app"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/domain/run"
	"github.com/drmlgentry/Golden-Unification/internal/config"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "gu",
		Short:         "Anchored golden-ratio lattice fits and null-ensemble tests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", os.Getenv("GU_CONFIG"), "YAML run file")
	rootCmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Environment file loaded before configuration")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE (default: LOG_LEVEL or INFO)")

	rootCmd.AddCommand(
		newFitCmd(g),
		newDiagnoseCmd(g),
		newNullCmd(g),
		newRunCmd(g),
		newReferenceCmd(),
	)
	return rootCmd
}

func newFitCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit every particle to its nearest lattice exponent",
		Long: `Fit each particle's mass ratio to the anchor against the feasible exponents
q = 8a + 15b + 24c of the search box and report the mean error.

Example: gu fit --dataset masses.csv --anchor electron --box -80:20,-40:40,-40:60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			set, unit, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			svc := app.NewExperimentService(rng.NewStreamAdapter(), newLogger(cfg))
			prep, fit, err := svc.Fit(app.ExperimentRequest{Dataset: set, Unit: unit, Box: cfg.Run.Box, Strategy: cfg.Run.Strategy})
			if err != nil {
				return err
			}
			printFit(cmd.OutOrStdout(), cfg, prep.Feasible.Len(), fit)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newDiagnoseCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Show predicted masses, canonical triples and multiplicities",
		Long: `Fit the dataset and list, per particle, the predicted mass of the best
exponent, its minimal-norm (a,b,c) triple, the signed fractional error and how
many exponents fall within the tolerance of the observed mass.

Example: gu diagnose --tolerance 0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			set, unit, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			svc := app.NewExperimentService(rng.NewStreamAdapter(), newLogger(cfg))
			prep, fit, err := svc.Fit(app.ExperimentRequest{Dataset: set, Unit: unit, Box: cfg.Run.Box, Strategy: cfg.Run.Strategy})
			if err != nil {
				return err
			}
			diag, err := app.NewDiagnosticsService(prep.Feasible, cfg.Run.Tolerance)
			if err != nil {
				return err
			}
			rows, err := diag.Diagnose(set, fit)
			if err != nil {
				return err
			}
			printDiagnostics(cmd.OutOrStdout(), unit, rows)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newNullCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	var kind string
	var sigma float64

	cmd := &cobra.Command{
		Use:   "null",
		Short: "Run a single null ensemble against the observed fit",
		Long: `Draw --trials synthetic spectra from one null ensemble, score each one and
report the empirical lower-tail probability of the observed score.

Ensembles: log_uniform, jitter (with --sigma), permutation.

Example: gu null --kind jitter --sigma 0.3 --trials 2000 --seed 1 --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			set, unit, err := loadDataset(cfg)
			if err != nil {
				return err
			}
			gen, err := battery.NewGenerator(kind, sigma)
			if err != nil {
				return errors.WithCode(errors.CodeConfigInvalid, err)
			}

			logger := newLogger(cfg)
			svc := app.NewExperimentService(rng.NewStreamAdapter(), logger)
			prep, fit, err := svc.Fit(app.ExperimentRequest{Dataset: set, Unit: unit, Box: cfg.Run.Box, Strategy: cfg.Run.Strategy})
			if err != nil {
				return err
			}
			runner := app.NewNullTestRunner(prep.Scorer, rng.NewStreamAdapter(), logger)
			runner.SetWorkers(cfg.Run.Workers)
			dist, err := runner.RunNullTest(cmd.Context(), set, gen, cfg.Run.Trials, cfg.Run.Seed, fit.MeanError)
			if err != nil {
				return err
			}
			printNulls(cmd.OutOrStdout(), fit.MeanError, []*run.NullDistribution{dist})
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", battery.KindLogUniform, "Null ensemble: log_uniform|jitter|permutation")
	cmd.Flags().Float64Var(&sigma, "sigma", 0.15, "Jitter scale (jitter only)")
	return cmd
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pre-registered battery and write reports",
		Long: `Fit the observed spectrum, run the log-uniform null and one jitter null per
sigma (optionally the permutation null), and write the report in every
requested format.

Example: gu run --trials 2000 --seed 1 --sigmas 0.15,0.30,0.50 --format latex,markdown --out ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			set, unit, err := loadDataset(cfg)
			if err != nil {
				return err
			}

			svc := app.NewExperimentService(rng.NewStreamAdapter(), newLogger(cfg))
			rep, err := svc.Run(cmd.Context(), app.ExperimentRequest{
				Dataset:            set,
				Unit:               unit,
				Box:                cfg.Run.Box,
				Strategy:           cfg.Run.Strategy,
				Trials:             cfg.Run.Trials,
				Seed:               cfg.Run.Seed,
				Sigmas:             cfg.Run.Sigmas,
				IncludePermutation: cfg.Run.IncludePermutation,
				Tolerance:          cfg.Run.Tolerance,
				Workers:            cfg.Run.Workers,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printFit(out, cfg, rep.Manifest.FeasibleSize, rep.Observed)
			printNulls(out, rep.Observed.MeanError, rep.Nulls)

			paths, err := report.WriteReports(cfg.Output.Dir, "null_tests", rep, cfg.Output.Formats)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n✅ Run %s (fingerprint %s)\n", rep.Manifest.RunID, rep.Manifest.Fingerprint.Short())
			for _, p := range paths {
				fmt.Fprintf(out, "   wrote %s\n", p)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newReferenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference [output-file]",
		Short: "Write the built-in reference spectrum as CSV, XLSX or YAML",
		Long: `Write the built-in reference masses (MeV, electron anchor) to a file whose
format follows its extension. The file is a starting point for custom datasets.

Example: gu reference masses.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := &excel.Dataset{
				Anchor:    particle.ReferenceAnchor,
				Unit:      particle.UnitMeV,
				Particles: particle.ReferenceParticles(),
			}
			if err := excel.WriteDataset(args[0], ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d particles to %s\n", len(ds.Particles), args[0])
			return nil
		},
	}
}

func printFit(w io.Writer, cfg *config.Config, feasible int, fit run.SetFit) {
	fmt.Fprintf(w, "📊 Anchored fit (anchor %s, box %s, %d feasible exponents, %s search)\n",
		fit.Anchor, cfg.Run.Box, feasible, cfg.Run.Strategy)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICLE\tBEST q\tERROR")
	for _, name := range fit.Order {
		r := fit.PerParticle[name]
		fmt.Fprintf(tw, "%s\t%d\t%.6e\n", name, r.BestExponent, r.Error)
	}
	tw.Flush()
	fmt.Fprintf(w, "Mean error: %.6e\n", fit.MeanError)
}

func printDiagnostics(w io.Writer, unit particle.Unit, rows []run.MassDiagnostic) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PARTICLE\tOBSERVED [%s]\tPREDICTED [%s]\tq\t(a,b,c)\tFRAC ERROR\tNOTE\n", unit, unit)
	for _, d := range rows {
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%d\t%s\t%+.3e\t%s (%d)\n",
			d.Name, d.ObservedMass, d.PredictedMass, d.BestExponent, d.Canonical, d.FracError, d.Note(), d.Multiplicity)
	}
	tw.Flush()
}

func printNulls(w io.Writer, observed float64, nulls []*run.NullDistribution) {
	fmt.Fprintf(w, "\n🎯 Null ensembles (observed %.6e)\n", observed)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENSEMBLE\tN\tMIN\tMEDIAN\t[16%, 84%]\tP_EMP")
	for _, n := range nulls {
		s := n.Summary
		fmt.Fprintf(tw, "%s\t%d\t%.4e\t%.4e\t[%.4e, %.4e]\t%.6g\n",
			n.StreamName, s.N, s.Min, s.Median, s.P16, s.P84, s.EmpiricalP)
	}
	tw.Flush()
	for _, n := range nulls {
		if n.Degenerate {
			fmt.Fprintf(w, "⚠️  %s: %s\n", n.StreamName, n.Caveat)
		}
	}
}
