package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/drmlgentry/Golden-Unification/adapters/excel"
	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/domain/particle"
	"github.com/drmlgentry/Golden-Unification/internal"
	"github.com/drmlgentry/Golden-Unification/internal/config"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	envFile    string
	logLevel   string
}

// runFlags mirror config.RunConfig and the dataset/output settings; a flag
// only overrides the loaded configuration when it was set explicitly.
type runFlags struct {
	dataset            string
	anchor             string
	unit               string
	box                string
	strategy           string
	trials             int
	seed               int64
	sigmas             string
	includePermutation bool
	tolerance          float64
	workers            int
	outDir             string
	formats            string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dataset, "dataset", "", "Dataset file (.csv, .xlsx, .yaml); empty uses the built-in reference table")
	fs.StringVar(&f.anchor, "anchor", "", "Anchor particle name (default: first row or the file's anchor)")
	fs.StringVar(&f.unit, "unit", "MeV", "Mass unit for rows without one: MeV|GeV")
	fs.StringVar(&f.box, "box", "", "Search box as aMin:aMax,bMin:bMax,cMin:cMax")
	fs.StringVar(&f.strategy, "strategy", lattice.StrategyBinary, "Nearest-exponent search: linear|binary")
	fs.IntVar(&f.trials, "trials", config.DefaultTrials, "Null trials per ensemble")
	fs.Int64Var(&f.seed, "seed", config.DefaultSeed, "Random seed for deterministic operations")
	fs.StringVar(&f.sigmas, "sigmas", "0.15,0.30,0.50", "Comma-separated jitter scales")
	fs.BoolVar(&f.includePermutation, "permutation", false, "Also run the (degenerate) permutation null")
	fs.Float64Var(&f.tolerance, "tolerance", config.DefaultTolerance, "Fractional mass window for multiplicity")
	fs.IntVar(&f.workers, "workers", config.DefaultWorkers, "Concurrent null trials")
	fs.StringVar(&f.outDir, "out", config.DefaultOutputDir, "Report directory")
	fs.StringVar(&f.formats, "format", "markdown", "Comma-separated report formats: latex,markdown,html,json")
}

// loadConfig resolves defaults < run file < environment < flags.
func loadConfig(cmd *cobra.Command, g *globalFlags, f *runFlags) (*config.Config, error) {
	if g.envFile != "" {
		if err := godotenv.Load(g.envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.IOError("failed to load env file", err)
		}
	}

	cfg, err := config.LoadFile(g.configPath)
	if err != nil {
		return nil, err
	}

	if f != nil {
		if err := f.apply(cmd, cfg); err != nil {
			return nil, err
		}
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("dataset") {
		cfg.Dataset.Path = f.dataset
	}
	if changed("anchor") {
		cfg.Dataset.Anchor = f.anchor
	}
	if changed("unit") {
		cfg.Dataset.Unit = f.unit
	}
	if changed("box") {
		box, err := parseBox(f.box)
		if err != nil {
			return err
		}
		cfg.Run.Box = box
	}
	if changed("strategy") {
		cfg.Run.Strategy = f.strategy
	}
	if changed("trials") {
		cfg.Run.Trials = f.trials
	}
	if changed("seed") {
		cfg.Run.Seed = f.seed
	}
	if changed("sigmas") {
		sigmas, err := config.ParseFloatList(f.sigmas)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("--sigmas: %v", err))
		}
		cfg.Run.Sigmas = sigmas
	}
	if changed("permutation") {
		cfg.Run.IncludePermutation = f.includePermutation
	}
	if changed("tolerance") {
		cfg.Run.Tolerance = f.tolerance
	}
	if changed("workers") {
		cfg.Run.Workers = f.workers
	}
	if changed("out") {
		cfg.Output.Dir = f.outDir
	}
	if changed("format") {
		cfg.Output.Formats = cfg.Output.Formats[:0]
		for _, format := range strings.Split(f.formats, ",") {
			if format = strings.TrimSpace(format); format != "" {
				cfg.Output.Formats = append(cfg.Output.Formats, format)
			}
		}
	}
	return nil
}

// parseBox parses "aMin:aMax,bMin:bMax,cMin:cMax".
func parseBox(s string) (lattice.SearchBox, error) {
	axes := strings.Split(s, ",")
	if len(axes) != 3 {
		return lattice.SearchBox{}, errors.ConfigInvalid(fmt.Sprintf("--box %q: want aMin:aMax,bMin:bMax,cMin:cMax", s))
	}
	var bounds [6]int
	for i, axis := range axes {
		lo, hi, ok := strings.Cut(strings.TrimSpace(axis), ":")
		if !ok {
			return lattice.SearchBox{}, errors.ConfigInvalid(fmt.Sprintf("--box axis %q: want min:max", axis))
		}
		var err error
		if bounds[2*i], err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
			return lattice.SearchBox{}, errors.ConfigInvalid(fmt.Sprintf("--box axis %q: %v", axis, err))
		}
		if bounds[2*i+1], err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
			return lattice.SearchBox{}, errors.ConfigInvalid(fmt.Sprintf("--box axis %q: %v", axis, err))
		}
	}
	return lattice.SearchBox{
		AMin: bounds[0], AMax: bounds[1],
		BMin: bounds[2], BMax: bounds[3],
		CMin: bounds[4], CMax: bounds[5],
	}, nil
}

// loadDataset returns the configured particle set, or the reference table
func loadDataset(cfg *config.Config) (*particle.Set, particle.Unit, error) {
	unit, err := particle.ParseUnit(cfg.Dataset.Unit)
	if err != nil {
		return nil, "", errors.Config(err)
	}

	if cfg.Dataset.Path == "" {
		ds := &excel.Dataset{
			Anchor:    particle.ReferenceAnchor,
			Unit:      particle.UnitMeV,
			Particles: particle.ReferenceParticles(),
		}
		set, err := ds.Set(cfg.Dataset.Anchor)
		return set, particle.UnitMeV, err
	}

	set, err := excel.NewDataReader(cfg.Dataset.Path, unit).ReadSet(cfg.Dataset.Anchor)
	if err != nil {
		return nil, "", err
	}
	// Readers normalise every row to MeV.
	return set, particle.UnitMeV, nil
}

func newLogger(cfg *config.Config) *internal.Logger {
	return internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
}
