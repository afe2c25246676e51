package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quantus-Network/wormhole-circuit/core"
)

var dummyOut string

var dummyCmd = &cobra.Command{
	Use:   "dummy",
	Short: "Export the aggregator's padding proof",
	Long: "Compiles and sets up the storage-proof circuit, then writes the padding proof used\n" +
		"for unused aggregation slots to a file. The blob is only valid alongside the proving\n" +
		"setup that produced it.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := core.ExportDummyProof(dummyOut); err != nil {
			return err
		}
		fmt.Println("Padding proof written to", dummyOut)
		return nil
	},
}

func init() {
	dummyCmd.Flags().StringVarP(&dummyOut, "out", "o", "dummy_proof.bin", "output file for the padding proof")
	rootCmd.AddCommand(dummyCmd)
}
