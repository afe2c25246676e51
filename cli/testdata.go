package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Quantus-Network/wormhole-circuit/core"
)

var testdataOutDir string

var testdataCmd = &cobra.Command{
	Use:   "testdata [count]",
	Short: "Generate test proof input files",
	Long: "Generates honestly constructed trie proofs with random accounts and amounts and\n" +
		"writes them as raw proof input files, for development and testing. Proof lengths\n" +
		"cycle through the full supported range.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parsing count: %w", err)
		}
		if err := os.MkdirAll(testdataOutDir, 0o755); err != nil {
			return err
		}
		core.GenerateData(count, testdataOutDir)
		fmt.Printf("Wrote %d proof input files to %s\n", count, testdataOutDir)
		return nil
	},
}

func init() {
	testdataCmd.Flags().StringVarP(&testdataOutDir, "out-dir", "d", "out/", "directory for generated input files")
	rootCmd.AddCommand(testdataCmd)
}
