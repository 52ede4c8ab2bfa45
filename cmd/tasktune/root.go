// tasktune is the main CLI: generate-data, evaluate, optimize, compare,
// demo, stats, runs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasktune/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "tasktune",
	Short: "Prompt tuning harness for family speech commands",
	Long: "Tasktune measures and tunes speech-to-task prompt pipelines against\n" +
		"simulated family commands, using a rule-based oracle or a live model.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.Init(rootFlags.logLevel, rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(generateDataCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
