package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quantus-Network/wormhole-circuit/aggregator"
	"github.com/Quantus-Network/wormhole-circuit/core"
)

var (
	aggregateSize int
	aggregateOut  string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [proof.json ...]",
	Short: "Aggregate storage proofs into a single recursive proof",
	Long: "Verifies each given storage proof inside one outer circuit and produces a single\n" +
		"proof attesting to all of them. Unused slots up to the aggregation size are padded\n" +
		"internally, so fewer proofs than the size is fine; more is an error.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inner := make([]aggregator.InnerProof, len(args))
		for i, path := range args {
			completed := core.ReadDataFromFile[core.CompletedProof](path)
			p, err := core.DecodeInnerProof(completed)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			inner[i] = p
		}

		proof, err := core.AggregateProofs(inner, aggregateSize)
		if err != nil {
			return err
		}
		core.WriteDataToFile(aggregateOut, proof)
		fmt.Println("Aggregated proof written to", aggregateOut)
		return nil
	},
}

func init() {
	aggregateCmd.Flags().IntVarP(&aggregateSize, "size", "n", 8, "aggregation capacity (number of slots in the outer circuit)")
	aggregateCmd.Flags().StringVarP(&aggregateOut, "out", "o", core.AGGREGATED_PROOF_SUFFIX, "output file for the aggregated proof")
	rootCmd.AddCommand(aggregateCmd)
}
