package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Quantus-Network/wormhole-circuit/core"
)

var proveOut string

var proveCmd = &cobra.Command{
	Use:   "prove [path/to/proof_input.json]",
	Short: "Generate a storage proof from a raw proof input file",
	Long: "Generates a zk-SNARK proving that the leaf committed to by the private inputs in the\n" +
		"given file is included in the storage trie under the file's root hash. The private\n" +
		"inputs never leave this machine; the written proof exposes only the root hash.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := core.ReadDataFromFile[core.RawProofInput](args[0])
		sp, err := core.ConvertRawInputToStorageProof(raw)
		if err != nil {
			return fmt.Errorf("invalid proof input: %w", err)
		}

		proof, err := core.GenerateStorageProof(sp)
		if err != nil {
			return err
		}
		core.WriteDataToFile(proveOut, proof)
		fmt.Println("Storage proof written to", proveOut)
		return nil
	},
}

func init() {
	proveCmd.Flags().StringVarP(&proveOut, "out", "o", "storage_proof.json", "output file for the completed proof")
	rootCmd.AddCommand(proveCmd)
}
