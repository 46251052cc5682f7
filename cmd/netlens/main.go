package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/netlens/am"
	"github.com/teranos/netlens/cmd/netlens/commands"
	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/logger"
)

var rootCmd = &cobra.Command{
	Use:   "netlens",
	Short: "netlens - Self-centric views over network snapshots",
	Long: `netlens - Self-centric visibility engine for network snapshots.

netlens loads a network snapshot (nodes, links, components and table rows)
and answers "what should be visible" for a selection and a filter mode.

Available commands:
  inspect - Summarise a snapshot: features, components, integrity issues
  filter  - Apply a visibility mode and print what stays visible
  watch   - Re-apply a mode every time the snapshot file changes
  am      - Manage netlens configuration ("I am")
  version - Show version information

Examples:
  netlens inspect graph.json
  netlens filter graph.json --mode DIRECT --origin alice
  netlens filter graph.json --select a,b --mode INTERSECTION --threshold 2
  netlens watch graph.json --mode NEIGHBOURS --origin alice --depth 2`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 'am show' prints raw config to stdout and stays quiet
		if cmd.Name() == "show" {
			return nil
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonOutput := false
		if cfg, err := am.Load(); err == nil {
			jsonOutput = cfg.Log.JSON
			if verbosity == 0 {
				verbosity = cfg.Log.Verbosity
			}
		}
		if err := logger.InitializeWithVerbosity(jsonOutput, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.FilterCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
