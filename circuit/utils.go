package circuit

import (
	"bytes"
	"fmt"
	"math/big"
	"math/rand"
)

// DummyStorageProof returns the canonical empty instance: a zero-node proof
// whose root hash is the hash of the all-zero leaf inputs. It satisfies the
// circuit trivially and is the instance behind the aggregator's padding proof.
func DummyStorageProof() (*StorageProof, error) {
	leafInputs := DefaultLeafInputs()
	leafHash, err := GoComputeLeafHash(leafInputs)
	if err != nil {
		return nil, err
	}
	var rootHash [HASH_BYTES]byte
	copy(rootHash[:], leafHash)
	return NewStorageProof(nil, rootHash, leafInputs)
}

// GenerateTestStorageProof generates an honestly chained storage proof of the
// given length with a deterministic seed. The chain is built leaf-first: each
// node's suffix starts with the hash of its child, and the root hash is the
// hash of the first node. A length of zero yields a root equal to the leaf
// hash directly.
func GenerateTestStorageProof(length int, seed int64) (nodes []ProofNode, rootHash [HASH_BYTES]byte, leafInputs LeafInputs) {
	if length < 0 || length > MAX_PROOF_LEN {
		panic("test storage proof length out of range")
	}

	rng := rand.New(rand.NewSource(seed))

	leafInputs = LeafInputs{
		Nonce:          rng.Uint32(),
		FundingAccount: SubstrateAccount(randomBytes32(rng)),
		ToAccount:      UnspendableAccount(randomBytes32(rng)),
		FundingAmount:  new(big.Int).SetBytes(randomSlice(rng, 16)),
	}

	leafHash, err := GoComputeLeafHash(leafInputs)
	if err != nil {
		panic("error hashing generated leaf inputs: " + err.Error())
	}

	childHash := leafHash
	nodes = make([]ProofNode, length)
	for i := length - 1; i >= 0; i-- {
		prefix := randomSlice(rng, 1+rng.Intn(80))
		tail := randomSlice(rng, rng.Intn(80))

		suffix := make([]byte, 0, len(childHash)+len(tail))
		suffix = append(suffix, childHash...)
		suffix = append(suffix, tail...)
		nodes[i] = ProofNode{Prefix: prefix, Suffix: suffix}

		raw := make([]byte, 0, len(prefix)+len(suffix))
		raw = append(raw, prefix...)
		raw = append(raw, suffix...)
		childHash = GoComputeNodeHash(BytesToFelts(raw))
	}

	copy(rootHash[:], childHash)
	return nodes, rootHash, leafInputs
}

// GoVerifyProofChain natively replays the chain the circuit enforces: node 0
// hashes to the root, each node's suffix embeds the hash of the next node, and
// the last link is the leaf hash. It mirrors the constraint system and is for
// sanity-checking inputs before paying for a proof.
func GoVerifyProofChain(nodes []ProofNode, rootHash [HASH_BYTES]byte, leafInputs LeafInputs) error {
	leafHash, err := GoComputeLeafHash(leafInputs)
	if err != nil {
		return err
	}

	expected := rootHash[:]
	for i, node := range nodes {
		raw := make([]byte, 0, len(node.Prefix)+len(node.Suffix))
		raw = append(raw, node.Prefix...)
		raw = append(raw, node.Suffix...)
		if !bytes.Equal(GoComputeNodeHash(BytesToFelts(raw)), expected) {
			return fmt.Errorf("node %d does not hash to its parent's embedded hash", i)
		}
		if len(node.Suffix) < HASH_BYTES {
			return fmt.Errorf("node %d: %w", i, ErrSuffixTooShort)
		}
		expected = node.Suffix[:HASH_BYTES]
	}
	if !bytes.Equal(leafHash, expected) {
		return fmt.Errorf("leaf inputs do not hash to the end of the chain")
	}
	return nil
}

func randomBytes32(rng *rand.Rand) [ACCOUNT_BYTES]byte {
	var out [ACCOUNT_BYTES]byte
	rng.Read(out[:])
	return out
}

func randomSlice(rng *rand.Rand, n int) []byte {
	out := make([]byte, n)
	rng.Read(out)
	return out
}
