package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Quantus-Network/wormhole-circuit/aggregator"
	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

func TestRawInputConversionRoundTrip(t *testing.T) {
	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(3, 1)
	raw := ConvertStorageProofToRawInput(nodes, rootHash, leafInputs)

	sp, err := ConvertRawInputToStorageProof(raw)
	require.NoError(t, err)
	require.Equal(t, 3, sp.Len())
	require.Equal(t, rootHash, sp.RootHash())
}

func TestRawInputConversionAccepts0xPrefix(t *testing.T) {
	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(1, 2)
	raw := ConvertStorageProofToRawInput(nodes, rootHash, leafInputs)
	raw.RootHash = "0x" + raw.RootHash
	raw.FundingAccount = "0x" + raw.FundingAccount

	sp, err := ConvertRawInputToStorageProof(raw)
	require.NoError(t, err)
	require.Equal(t, rootHash, sp.RootHash())
}

func TestRawInputConversionRejectsBadFields(t *testing.T) {
	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(1, 3)
	base := ConvertStorageProofToRawInput(nodes, rootHash, leafInputs)

	raw := base
	raw.RootHash = "zz"
	_, err := ConvertRawInputToStorageProof(raw)
	require.Error(t, err)

	raw = base
	raw.RootHash = "abcd"
	_, err = ConvertRawInputToStorageProof(raw)
	require.Error(t, err)

	raw = base
	raw.FundingAccount = "00"
	_, err = ConvertRawInputToStorageProof(raw)
	require.ErrorIs(t, err, circuit.ErrInvalidAccountLength)

	raw = base
	raw.FundingAmount = "not a number"
	_, err = ConvertRawInputToStorageProof(raw)
	require.Error(t, err)
}

func TestRawInputConversionRejectsBrokenChain(t *testing.T) {
	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(2, 7)
	nodes[1].Suffix[0] ^= 0xFF
	raw := ConvertStorageProofToRawInput(nodes, rootHash, leafInputs)

	_, err := ConvertRawInputToStorageProof(raw)
	require.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(2, 4)
	raw := ConvertStorageProofToRawInput(nodes, rootHash, leafInputs)

	path := filepath.Join(t.TempDir(), "input.json")
	WriteDataToFile(path, raw)
	readBack := ReadDataFromFile[RawProofInput](path)
	require.Equal(t, raw, readBack)
}

func TestGenerateDataWritesReadableInputs(t *testing.T) {
	dir := t.TempDir() + "/"
	GenerateData(3, dir)

	inputs := ReadDataFromFiles[RawProofInput](3, dir+PROOF_INPUT_PREFIX)
	for i, raw := range inputs {
		sp, err := ConvertRawInputToStorageProof(raw)
		require.NoError(t, err)
		require.Equal(t, i%(circuit.MAX_PROOF_LEN+1), sp.Len())
	}
}

func TestVerifyCompletedProofRejectsUnknownCurve(t *testing.T) {
	err := VerifyCompletedProof(CompletedProof{Curve: "bn254"})
	require.Error(t, err)
}

func TestDecodeInnerProofRejectsAggregatedProof(t *testing.T) {
	_, err := DecodeInnerProof(CompletedProof{Curve: AGGREGATED_PROOF_CURVE})
	require.Error(t, err)
}

// TestStorageProofEndToEnd compiles, sets up, proves, and verifies one real
// storage proof. It is slow and skipped in short mode.
func TestStorageProofEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full proving run in short mode")
	}

	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(2, 5)
	sp, err := circuit.NewStorageProof(nodes, rootHash, leafInputs)
	require.NoError(t, err)

	completed, err := GenerateStorageProof(sp)
	require.NoError(t, err)
	require.Equal(t, STORAGE_PROOF_CURVE, completed.Curve)
	require.Equal(t, rootHash[:], completed.RootHash)

	require.NoError(t, VerifyStorageProof(completed))
	require.Error(t, VerifyAggregatedProof(completed))

	// the serialized proof survives a file round trip and re-aggregation decode
	path := filepath.Join(t.TempDir(), "proof.json")
	WriteDataToFile(path, completed)
	readBack := ReadDataFromFile[CompletedProof](path)
	require.NoError(t, VerifyCompletedProof(readBack))

	inner, err := DecodeInnerProof(readBack)
	require.NoError(t, err)
	require.NotNil(t, inner.Proof)
}

// TestAggregationEndToEnd runs the full two-curve pipeline with one real
// proof padded to a batch of two. It is very slow and skipped in short mode.
func TestAggregationEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping recursive proving run in short mode")
	}

	nodes, rootHash, leafInputs := circuit.GenerateTestStorageProof(1, 6)
	sp, err := circuit.NewStorageProof(nodes, rootHash, leafInputs)
	require.NoError(t, err)

	inner, err := ProveStorageProof(sp)
	require.NoError(t, err)

	aggregated, err := AggregateProofs([]aggregator.InnerProof{inner}, 2)
	require.NoError(t, err)
	require.Equal(t, AGGREGATED_PROOF_CURVE, aggregated.Curve)
	require.NoError(t, VerifyAggregatedProof(aggregated))
}
