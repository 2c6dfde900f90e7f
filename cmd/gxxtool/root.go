package gxxtool

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagRCFile     string
	flagServer     string
	flagJSON       bool
	flagNoColor    bool
	flagSelfUpdate bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the gxxtool CLI.
var rootCmd = &cobra.Command{
	Use:           "gxxtool",
	Short:         "Query Gaussian cluster configuration",
	Long:          "Gxxtool reads the site's gxxconfig.ini, hpcnodes.ini and gxxversions.ini files, resolves their cross-references and answers questions about paths, queues and installed Gaussian versions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagSelfUpdate {
			return selfUpdate()
		}
		return cmd.Help()
	},
}

// Execute runs the gxxtool CLI. It should be called by the main
// package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "gxxconfig.ini path (skips run-control lookup)")
	rootCmd.PersistentFlags().StringVar(&flagRCFile, "rcfile", "", "run-control file path (default: $GXXTOOLSRC, then XDG locations)")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "head-node hostname for run-control section matching (default: this host)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.Flags().BoolVar(&flagSelfUpdate, "self-update", false, "update gxxtool to the latest release")
}
