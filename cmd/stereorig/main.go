// Stereorig is the fleet configuration utility for stereo capture rigs.
//
// It maintains the rig's INI configuration file (stereorig.ini): the
// camera slots, their orientations, mounting geometry and processing
// parameters. It discovers camera heads over mDNS, reconciles the
// configured fleet against what is actually on the network, and prepares
// the artifact directory tree a capture run will write into.
//
// Usage:
//
//	stereorig [command] [flags]
//
// Running without arguments launches the interactive wizard on a
// terminal, or prints the fleet status otherwise.
// See 'stereorig --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arrvision/stereorig/internal/logging"
	"github.com/arrvision/stereorig/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stereorig",
	Short: "Stereo camera fleet configuration utility",
	Long: `A standalone utility for configuring stereo capture rigs.

Maintains the rig's fleet configuration: which camera serials occupy
which slots, their orientation (left, right, top), mounting geometry
and processing parameters. Cameras are discovered over mDNS and
reconciled into the persisted configuration.

If no command is specified, the interactive wizard launches when run
on a terminal; otherwise the fleet status is printed.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
	RunE: runDefault,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Banner())
	},
}
