package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YeenieBeans/Tools-For-Artists/internal/stylespace"
)

type stylespaceOptions struct {
	roster string
	output string
}

func newStylespaceCmd() *cobra.Command {
	opts := &stylespaceOptions{}

	cmd := &cobra.Command{
		Use:   "stylespace",
		Short: "Build the 3D artistic style space figure",
		Long: `Build the 3D artistic style space as a chart figure in JSON.

The space has three axes, each running from -10 to 10:
  x  Realistic - Cartoony
  y  Feral - Anthro
  z  Simple - Detailed

A roster file places a user and friends in the space:

  {"user": {"name": "me", "x": 2, "y": -4, "z": 7},
   "friends": [{"name": "pal", "x": -3, "y": 1, "z": 0, "show": true}]}

The output uses the plotly.js figure format ({"data": [...], "layout": {...}}).

Examples:
  # The empty style space
  arttools stylespace

  # Place a roster and save the figure
  arttools stylespace --roster friends.json -o space.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStylespace(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.roster, "roster", "", "roster JSON file with the user and friends")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runStylespace(cmd *cobra.Command, opts *stylespaceOptions) error {
	logger := newLogger(cmd)

	roster := stylespace.NewRoster()
	if opts.roster != "" {
		f, err := os.Open(opts.roster) // #nosec G304 - User-specified roster path
		if err != nil {
			return fmt.Errorf("failed to open roster: %w", err)
		}
		defer f.Close()

		roster, err = stylespace.LoadRoster(f)
		if err != nil {
			return err
		}
		_, hasUser := roster.User()
		logger.Debug("roster loaded", "user", hasUser, "friends", len(roster.Friends()))
	}

	fig := stylespace.Plot(roster)
	data, err := fig.ToJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if opts.output != "" {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil { // #nosec G306 - figure output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote figure", "path", opts.output, "traces", len(fig.Data))
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
