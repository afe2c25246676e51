// Package cli contains the command line interface for generating,
// aggregating, and verifying wormhole proofs.
package cli

import (
	"os"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wormhole-circuit",
	Short: "Generate, aggregate, and verify wormhole storage proofs",
	Long: "wormhole-circuit proves that a ledger entry is included in a blockchain storage trie\n" +
		"without revealing the accounts or amount involved, and aggregates batches of such\n" +
		"proofs into a single recursive proof.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
		logger.Set(log)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
