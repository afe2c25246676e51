package core

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

// ConvertRawInputToStorageProof decodes a JSON prover input into a validated
// storage-proof instance.
func ConvertRawInputToStorageProof(raw RawProofInput) (*circuit.StorageProof, error) {
	nodes := make([]circuit.ProofNode, len(raw.Nodes))
	for i, n := range raw.Nodes {
		prefix, err := decodeHexField(fmt.Sprintf("node %d prefix", i), n.Prefix)
		if err != nil {
			return nil, err
		}
		suffix, err := decodeHexField(fmt.Sprintf("node %d suffix", i), n.Suffix)
		if err != nil {
			return nil, err
		}
		nodes[i] = circuit.ProofNode{Prefix: prefix, Suffix: suffix}
	}

	rootBytes, err := decodeHexField("root hash", raw.RootHash)
	if err != nil {
		return nil, err
	}
	if len(rootBytes) != circuit.HASH_BYTES {
		return nil, fmt.Errorf("root hash must be %d bytes, got %d", circuit.HASH_BYTES, len(rootBytes))
	}
	var rootHash [circuit.HASH_BYTES]byte
	copy(rootHash[:], rootBytes)

	fundingBytes, err := decodeHexField("funding account", raw.FundingAccount)
	if err != nil {
		return nil, err
	}
	fundingAccount, err := circuit.NewSubstrateAccountFromBytes(fundingBytes)
	if err != nil {
		return nil, fmt.Errorf("funding account: %w", err)
	}

	toBytes, err := decodeHexField("to account", raw.ToAccount)
	if err != nil {
		return nil, err
	}
	toAccount, err := circuit.NewUnspendableAccountFromBytes(toBytes)
	if err != nil {
		return nil, fmt.Errorf("to account: %w", err)
	}

	amount, ok := new(big.Int).SetString(raw.FundingAmount, 10)
	if !ok {
		return nil, fmt.Errorf("funding amount %q is not a decimal integer", raw.FundingAmount)
	}

	leafInputs := circuit.NewLeafInputs(raw.Nonce, fundingAccount, toAccount, amount)

	// catch broken inputs here rather than as an opaque proving failure
	if err := circuit.GoVerifyProofChain(nodes, rootHash, leafInputs); err != nil {
		return nil, fmt.Errorf("proof chain check: %w", err)
	}
	return circuit.NewStorageProof(nodes, rootHash, leafInputs)
}

// ConvertStorageProofToRawInput is the inverse of ConvertRawInputToStorageProof,
// used when generating test input files.
func ConvertStorageProofToRawInput(nodes []circuit.ProofNode, rootHash [circuit.HASH_BYTES]byte, leafInputs circuit.LeafInputs) RawProofInput {
	rawNodes := make([]RawProofNode, len(nodes))
	for i, n := range nodes {
		rawNodes[i] = RawProofNode{
			Prefix: hex.EncodeToString(n.Prefix),
			Suffix: hex.EncodeToString(n.Suffix),
		}
	}
	return RawProofInput{
		Nodes:          rawNodes,
		RootHash:       hex.EncodeToString(rootHash[:]),
		Nonce:          leafInputs.Nonce,
		FundingAccount: hex.EncodeToString(leafInputs.FundingAccount[:]),
		ToAccount:      hex.EncodeToString(leafInputs.ToAccount[:]),
		FundingAmount:  leafInputs.FundingAmount.String(),
	}
}

func decodeHexField(name, value string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return data, nil
}

func writeJson(filePath string, data interface{}) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			panic("Couldn't close file" + err.Error())
		}
	}(file)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func WriteDataToFile[D RawProofInput | CompletedProof](filePath string, data D) {
	err := writeJson(filePath, data)
	if err != nil {
		panic("Error writing data to file: " + err.Error())
	}
}

func readJson(filePath string, data interface{}) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			panic("Error closing file: " + err.Error())
		}
	}(file)

	decoder := json.NewDecoder(file)
	return decoder.Decode(data)
}

func ReadDataFromFile[D RawProofInput | CompletedProof](filePath string) D {
	var data D
	err := readJson(filePath, &data)
	if err != nil {
		panic("Error reading data from file: " + err.Error())
	}
	return data
}

func ReadDataFromFiles[D RawProofInput | CompletedProof](count int, prefix string) []D {
	out := make([]D, count)
	for i := 0; i < count; i++ {
		out[i] = ReadDataFromFile[D](prefix + strconv.Itoa(i) + ".json")
	}
	return out
}
