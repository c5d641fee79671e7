// Command seed publishes articles from a YAML manifest through the same
// validation and publish pipeline the dashboard uses.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"easyfindshub/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Seed the EasyFinds Hub article store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		level := cfg.SlogLevel()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}
