package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quantus-Network/wormhole-circuit/core"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [proof.json ...]",
	Short: "Verify completed proofs",
	Long: "Verifies each given proof against the verifying key and public witness embedded in\n" +
		"its file. Works for both storage proofs and aggregated proofs; the file records\n" +
		"which system produced it.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			proof := core.ReadDataFromFile[core.CompletedProof](path)
			if err := core.VerifyCompletedProof(proof); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Println(path, "OK")
		}
		fmt.Println("Verification succeeded!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
