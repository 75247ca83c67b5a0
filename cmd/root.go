package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time or from the embedded VERSION file.
var Version = "dev"

var configFlag string

var rootCmd = &cobra.Command{
	Use:           "imgcorpus",
	Short:         "Generate random PNG test corpora with known duplicates",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion copies Version onto the root command so --version reports it.
func ApplyVersion() {
	rootCmd.Version = Version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: <user config dir>/imgcorpus/imgcorpus.toml)")
	ApplyVersion()
}
