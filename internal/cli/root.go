// Package cli provides the command-line interface for arttools.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YeenieBeans/Tools-For-Artists/internal/version"
)

// NewRootCmd builds the arttools command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arttools",
		Short: "Small tools for artists",
		Long: `arttools is a collection of small tools for artists.

Analyse the colour distribution of a reference image, or place yourself and
your friends in a three-dimensional space of artistic styles.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newColoursCmd(ConfigFromEnv()))
	rootCmd.AddCommand(newStylespaceCmd())

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
