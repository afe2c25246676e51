package circuit

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStorageProofRejectsTooManyNodes(t *testing.T) {
	nodes, rootHash, leafInputs := GenerateTestStorageProof(MAX_PROOF_LEN, 1)
	nodes = append(nodes, nodes[0])

	_, err := NewStorageProof(nodes, rootHash, leafInputs)
	require.ErrorIs(t, err, ErrProofTooLong)
}

func TestNewStorageProofRejectsOversizedNode(t *testing.T) {
	nodes, rootHash, leafInputs := GenerateTestStorageProof(1, 2)
	nodes[0].Prefix = make([]byte, PROOF_NODE_MAX_SIZE_BYTES+1-len(nodes[0].Suffix))

	_, err := NewStorageProof(nodes, rootHash, leafInputs)
	require.ErrorIs(t, err, ErrNodeTooLarge)
}

func TestNewStorageProofRejectsShortSuffix(t *testing.T) {
	nodes, rootHash, leafInputs := GenerateTestStorageProof(1, 3)

	// one byte short of a full embedded hash
	nodes[0].Suffix = nodes[0].Suffix[:HASH_BYTES-1]
	_, err := NewStorageProof(nodes, rootHash, leafInputs)
	require.ErrorIs(t, err, ErrSuffixTooShort)

	nodes[0].Suffix = nodes[0].Suffix[:0]
	_, err = NewStorageProof(nodes, rootHash, leafInputs)
	require.ErrorIs(t, err, ErrSuffixTooShort)
}

func TestLeafInputFeltOrder(t *testing.T) {
	amount := new(big.Int).Lsh(big.NewInt(3), 64)
	amount.Add(amount, big.NewInt(7))

	var funding SubstrateAccount
	var to UnspendableAccount
	for i := 0; i < ACCOUNT_BYTES; i++ {
		funding[i] = byte(0x11 + i)
		to[i] = byte(0x22 + i)
	}

	felts, err := NewLeafInputs(42, funding, to, amount).Felts()
	require.NoError(t, err)

	require.Equal(t, big.NewInt(42), felts[0])
	fundingFelts := funding.Felts()
	toFelts := to.Felts()
	for y := 0; y < HASH_FELTS; y++ {
		require.Equal(t, fundingFelts[y], felts[1+y])
		require.Equal(t, toFelts[y], felts[1+HASH_FELTS+y])
	}
	require.Equal(t, big.NewInt(7), felts[LEAF_INPUT_FELTS-2])
	require.Equal(t, big.NewInt(3), felts[LEAF_INPUT_FELTS-1])
}

func TestLeafInputFeltsRejectsOversizedAmount(t *testing.T) {
	inputs := DefaultLeafInputs()
	inputs.FundingAmount = new(big.Int).Lsh(big.NewInt(1), 128)

	_, err := inputs.Felts()
	require.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestAssignZeroFillsUnusedSlots(t *testing.T) {
	const length = 3
	nodes, rootHash, leafInputs := GenerateTestStorageProof(length, 4)
	sp, err := NewStorageProof(nodes, rootHash, leafInputs)
	require.NoError(t, err)
	require.Equal(t, length, sp.Len())

	assignment, err := sp.Assign()
	require.NoError(t, err)
	require.Equal(t, length, assignment.ProofLen)

	rootFelts := HashToFelts(rootHash)
	for y := 0; y < HASH_FELTS; y++ {
		require.Equal(t, rootFelts[y], assignment.RootHash[y])
	}
	for i := length; i < MAX_PROOF_LEN; i++ {
		for j := 0; j < PROOF_NODE_MAX_SIZE_FELTS; j++ {
			require.Equal(t, 0, assignment.ProofData[i][j])
		}
		for y := 0; y < HASH_FELTS; y++ {
			require.Equal(t, 0, assignment.Hashes[i][y])
		}
	}
}

func TestGeneratedProofChainsHonestly(t *testing.T) {
	nodes, rootHash, leafInputs := GenerateTestStorageProof(5, 5)

	// the root node hashes to the root commitment
	raw := append(append([]byte{}, nodes[0].Prefix...), nodes[0].Suffix...)
	require.Equal(t, rootHash[:], GoComputeNodeHash(BytesToFelts(raw)))

	// the last node's embedded child hash is the leaf hash
	leafHash, err := GoComputeLeafHash(leafInputs)
	require.NoError(t, err)
	require.Equal(t, leafHash, nodes[len(nodes)-1].Suffix[:HASH_BYTES])
}

func TestGoVerifyProofChain(t *testing.T) {
	nodes, rootHash, leafInputs := GenerateTestStorageProof(4, 6)
	require.NoError(t, GoVerifyProofChain(nodes, rootHash, leafInputs))

	// flipping any byte breaks a link
	nodes[2].Prefix[0] ^= 0x01
	require.Error(t, GoVerifyProofChain(nodes, rootHash, leafInputs))
	nodes[2].Prefix[0] ^= 0x01

	leafInputs.Nonce++
	require.Error(t, GoVerifyProofChain(nodes, rootHash, leafInputs))
}

func TestDummyStorageProofIsEmptyInstance(t *testing.T) {
	sp, err := DummyStorageProof()
	require.NoError(t, err)
	require.Equal(t, 0, sp.Len())

	leafHash, err := GoComputeLeafHash(DefaultLeafInputs())
	require.NoError(t, err)
	rootHash := sp.RootHash()
	require.Equal(t, leafHash, rootHash[:])
}

func TestGenerateTestStorageProofIsDeterministic(t *testing.T) {
	nodesA, rootA, leafA := GenerateTestStorageProof(4, 99)
	nodesB, rootB, leafB := GenerateTestStorageProof(4, 99)

	require.Equal(t, nodesA, nodesB)
	require.Equal(t, rootA, rootB)
	require.Equal(t, leafA.Nonce, leafB.Nonce)
	require.Equal(t, leafA.FundingAmount, leafB.FundingAmount)
}
