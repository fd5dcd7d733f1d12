package cli

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/YeenieBeans/Tools-For-Artists/internal/colour"
	"github.com/YeenieBeans/Tools-For-Artists/internal/seed"
)

// Environment variables that override built-in flag defaults.
const (
	EnvSeedMode  = "ARTTOOLS_SEED_MODE"
	EnvAlgorithm = "ARTTOOLS_ALGORITHM"
)

// Config holds flag defaults.
type Config struct {
	SeedMode  seed.Mode
	Algorithm colour.Algorithm
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		SeedMode:  seed.ModeContent,
		Algorithm: colour.AlgorithmKMeans,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by the ARTTOOLS_*
// environment variables. Invalid values are ignored here and left to flag
// validation, so the error names the offending flag.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv(EnvSeedMode)); v != "" {
		cfg.SeedMode = seed.Mode(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv(EnvAlgorithm)); v != "" {
		cfg.Algorithm = colour.Algorithm(strings.ToLower(v))
	}
	return cfg
}

// newLogger builds the command logger from the persistent verbosity flags.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return buildLogger(cmd.ErrOrStderr(), verbose, quiet)
}

func buildLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	if quiet {
		return hclog.NewNullLogger()
	}
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "arttools",
		Output: w,
		Level:  level,
	})
}
