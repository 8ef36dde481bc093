// Package cmd provides the CLI commands for presolar.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presolar/internal/config"
	"presolar/internal/logging"
)

// Version is the tool version
const Version = "0.3.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "presolar",
	Short: "Classify presolar SiC stardust grains",
	Long: `presolar assigns presolar silicon carbide grains to genetic types
(M, AB, Y, Z, X, C, D, N) from their carbon, nitrogen, silicon and
aluminium isotope measurements, using the probabilistic scheme of the
Presolar Grain Database.

Examples:
  presolar classify --si29 50:1 --si30 50:1
  presolar classify --c12c13 4.83:0.048 --si29 32.5:13.9 --si30 52.9:17.4 --probabilities
  presolar batch grains.csv --compare --format json`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or HCL (default is $HOME/.presolar/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "presolar version %s\n", Version)
	},
}
