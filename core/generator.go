package core

import (
	"strconv"

	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

// File name prefixes for generated inputs and completed proofs.
const (
	PROOF_INPUT_PREFIX      = "proof_input_"
	STORAGE_PROOF_PREFIX    = "storage_proof_"
	AGGREGATED_PROOF_SUFFIX = "aggregated_proof.json"
)

// GenerateData generates test proof inputs and writes them to files for
// development/testing purposes. Each file holds one honestly constructed trie
// proof whose length cycles through 0..MAX_PROOF_LEN.
func GenerateData(count int, outDir string) {
	// derive a base seed from outDir so different output dirs get different data
	baseSeed := int64(0)
	for i := range outDir {
		baseSeed ^= int64(outDir[i])
	}

	for i := 0; i < count; i++ {
		filePath := outDir + PROOF_INPUT_PREFIX + strconv.Itoa(i) + ".json"

		length := i % (circuit.MAX_PROOF_LEN + 1)
		nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(length, baseSeed+int64(i))

		WriteDataToFile(filePath, ConvertStorageProofToRawInput(nodes, rootHash, leafInputs))
	}
}
