// Package runconfig assembles and validates the one RunConfig every
// pipeline stage is handed instead of reading ambient/global state.
package runconfig

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RunConfig is the fully-assembled, validated set of parameters for one
// invocation of the pipeline.
type RunConfig struct {
	RecordFile         string `validate:"required,file"`
	MaxChainSize       int    `validate:"gte=1"`
	NumRecommendations int    `validate:"gte=0"`
	Workers            int    `validate:"gte=0"`
	Seed               uint64
	MetricsAddr        string
	LogLevel           string `validate:"required"`
}

// Defaults holds the struct-tag-free defaults layered under environment
// variables and CLI input, mirroring the distilled prototype's own
// defaults (chain size 20, recommendations 0 meaning "output everything").
var Defaults = RunConfig{
	MaxChainSize:       20,
	NumRecommendations: 0,
	Workers:            0,
	Seed:               1,
	LogLevel:           "info",
}

// FromEnv overlays DICTREC_* environment variables on top of base,
// wherever set and parseable; an unparseable value is left as base's.
func FromEnv(base RunConfig) RunConfig {
	cfg := base
	if v, ok := os.LookupEnv("DICTREC_RECORD_FILE"); ok {
		cfg.RecordFile = v
	}
	if v, ok := os.LookupEnv("DICTREC_MAX_CHAIN_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxChainSize = n
		}
	}
	if v, ok := os.LookupEnv("DICTREC_NUM_RECOMMENDATIONS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.NumRecommendations = n
		}
	}
	if v, ok := os.LookupEnv("DICTREC_WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v, ok := os.LookupEnv("DICTREC_SEED"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if v, ok := os.LookupEnv("DICTREC_METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := os.LookupEnv("DICTREC_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return cfg
}

// Validate runs struct-tag validation and returns one aggregated error
// naming every violated constraint, so a malformed configuration fails
// before any pipeline stage runs rather than panicking deep inside one.
func Validate(cfg RunConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("runconfig: invalid configuration: %w", err)
	}
	return nil
}
