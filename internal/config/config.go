package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/drmlgentry/Golden-Unification/domain/lattice"
	"github.com/drmlgentry/Golden-Unification/internal/errors"
)

// Defaults of a pre-registered run.
const (
	DefaultTrials    = 2000
	DefaultSeed      = 1
	DefaultTolerance = 0.05
	DefaultWorkers   = 1
	DefaultOutputDir = "./out"
)

// DefaultSigmas are the jitter scales of the standard battery.
func DefaultSigmas() []float64 {
	return []float64{0.15, 0.30, 0.50}
}

// Config represents the complete application configuration
type Config struct {
	Run      RunConfig     `yaml:"run"`
	Dataset  DatasetConfig `yaml:"dataset"`
	Output   OutputConfig  `yaml:"output"`
	LogLevel string        `yaml:"log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
}

// RunConfig holds the parameters that determine a run's results
type RunConfig struct {
	Box                lattice.SearchBox `yaml:"box"`
	Strategy           string            `yaml:"strategy" validate:"oneof=linear binary"`
	Trials             int               `yaml:"trials" validate:"gt=0"`
	Seed               int64             `yaml:"seed"`
	Sigmas             []float64         `yaml:"sigmas" validate:"dive,gte=0"`
	IncludePermutation bool              `yaml:"include_permutation"`
	Tolerance          float64           `yaml:"tolerance" validate:"gt=0"`
	Workers            int               `yaml:"workers" validate:"gte=1"`
}

// DatasetConfig locates the particle masses. An empty path means the
// built-in reference table.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	Anchor string `yaml:"anchor"`
	Unit   string `yaml:"unit" validate:"omitempty,oneof=MeV GeV mev gev"`
}

// OutputConfig holds report destinations
type OutputConfig struct {
	Dir     string   `yaml:"dir" validate:"required"`
	Formats []string `yaml:"formats" validate:"dive,oneof=latex markdown html json"`
}

var validate = validator.New()

// Default returns the configuration of the reference run
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Box:       lattice.DefaultSearchBox(),
			Strategy:  lattice.StrategyBinary,
			Trials:    DefaultTrials,
			Seed:      DefaultSeed,
			Sigmas:    DefaultSigmas(),
			Tolerance: DefaultTolerance,
			Workers:   DefaultWorkers,
		},
		Dataset: DatasetConfig{Unit: "MeV"},
		Output: OutputConfig{
			Dir:     DefaultOutputDir,
			Formats: []string{"markdown"},
		},
		LogLevel: "INFO",
	}
}

// Load reads configuration from environment variables and validates it.
// GU_CONFIG names an optional YAML run file applied before the environment.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("GU_CONFIG"))
}

// LoadFile applies defaults, the YAML file at path (if any) and then the
// environment, and validates the result.
func LoadFile(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.IOError("failed to read run file", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, fmt.Errorf("parse run file %s: %w", path, err))
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, errors.Wrap(err, "failed to load environment configuration")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks struct tags and the search box
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if err := c.Run.Box.Validate(); err != nil {
		return errors.Config(err)
	}
	return nil
}

func applyEnv(c *Config) error {
	c.Run.Strategy = getEnvOrDefault("GU_STRATEGY", c.Run.Strategy)
	c.Run.Trials = getEnvIntOrDefault("GU_TRIALS", c.Run.Trials)
	c.Run.Seed = int64(getEnvIntOrDefault("GU_SEED", int(c.Run.Seed)))
	c.Run.Tolerance = getEnvFloatOrDefault("GU_TOLERANCE", c.Run.Tolerance)
	c.Run.Workers = getEnvIntOrDefault("GU_WORKERS", c.Run.Workers)
	c.Run.IncludePermutation = getEnvBoolOrDefault("GU_INCLUDE_PERMUTATION", c.Run.IncludePermutation)

	if value := os.Getenv("GU_SIGMAS"); value != "" {
		sigmas, err := ParseFloatList(value)
		if err != nil {
			return errors.ConfigInvalid(fmt.Sprintf("GU_SIGMAS: %v", err))
		}
		c.Run.Sigmas = sigmas
	}

	c.Dataset.Path = getEnvOrDefault("GU_DATASET", c.Dataset.Path)
	c.Dataset.Anchor = getEnvOrDefault("GU_ANCHOR", c.Dataset.Anchor)
	c.Dataset.Unit = getEnvOrDefault("GU_UNIT", c.Dataset.Unit)

	c.Output.Dir = getEnvOrDefault("GU_OUTPUT_DIR", c.Output.Dir)
	if value := os.Getenv("GU_FORMATS"); value != "" {
		c.Output.Formats = splitList(value)
	}

	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	return nil
}

// ParseFloatList parses a comma-separated list such as "0.15,0.3,0.5"
func ParseFloatList(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
