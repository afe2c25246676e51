package circuit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/mimc"
)

// Hash is a []byte alias for readability.
type Hash = []byte

var (
	// ErrProofTooLong is returned when a raw storage proof has more than
	// MAX_PROOF_LEN nodes.
	ErrProofTooLong = errors.New("storage proof exceeds the maximum proof length")

	// ErrNodeTooLarge is returned when a raw trie node exceeds the per-node
	// byte ceiling.
	ErrNodeTooLarge = errors.New("proof node exceeds the maximum node size")

	// ErrSuffixTooShort is returned when a node's suffix is shorter than a
	// full child hash.
	ErrSuffixTooShort = errors.New("proof node suffix too short to embed a child hash")
)

// ProofNode is one raw step of a trie proof, split at the offset where the
// child node's hash appears: the suffix begins with the embedded child hash.
type ProofNode struct {
	Prefix []byte
	Suffix []byte
}

// LeafInputs is the private tuple committed to by the leaf hash. The field
// order, via Felts, is protocol and must not change.
type LeafInputs struct {
	Nonce          uint32
	FundingAccount SubstrateAccount
	ToAccount      UnspendableAccount
	FundingAmount  *big.Int
}

// NewLeafInputs constructs the private leaf tuple.
func NewLeafInputs(nonce uint32, funding SubstrateAccount, to UnspendableAccount, amount *big.Int) LeafInputs {
	return LeafInputs{
		Nonce:          nonce,
		FundingAccount: funding,
		ToAccount:      to,
		FundingAmount:  amount,
	}
}

// DefaultLeafInputs returns the canonical all-zero leaf tuple.
func DefaultLeafInputs() LeafInputs {
	return LeafInputs{FundingAmount: big.NewInt(0)}
}

// Felts concatenates the leaf inputs into exactly LEAF_INPUT_FELTS field
// elements in the fixed protocol order: nonce, funding account, destination
// account, amount limbs.
func (l LeafInputs) Felts() ([LEAF_INPUT_FELTS]*big.Int, error) {
	var felts [LEAF_INPUT_FELTS]*big.Int

	amountLimbs, err := Uint128ToFelts(l.FundingAmount)
	if err != nil {
		return felts, err
	}

	fundingFelts := l.FundingAccount.Felts()
	toFelts := l.ToAccount.Felts()

	felts[0] = new(big.Int).SetUint64(uint64(l.Nonce))
	copy(felts[1:1+HASH_FELTS], fundingFelts[:])
	copy(felts[1+HASH_FELTS:1+2*HASH_FELTS], toFelts[:])
	copy(felts[1+2*HASH_FELTS:], amountLimbs[:])
	return felts, nil
}

var _ Fragment[*StorageProofCircuit] = (*StorageProof)(nil)

// StorageProof is one provable storage-proof instance: the encoded node
// chain, the embedded child hashes, the public root hash, and the private
// leaf inputs. It is constructed once from raw trie data and consumed once
// per proof-generation attempt.
type StorageProof struct {
	proof      [][]*big.Int
	hashes     [][]*big.Int
	rootHash   [HASH_BYTES]byte
	leafInputs LeafInputs
}

// NewStorageProof validates and encodes a raw trie proof. Each node's prefix
// and suffix are concatenated and encoded to field elements; the embedded
// child hash is recovered as the first HASH_FELTS encoded elements of the
// suffix, which must carry a full HASH_BYTES-byte hash.
func NewStorageProof(nodes []ProofNode, rootHash [HASH_BYTES]byte, leafInputs LeafInputs) (*StorageProof, error) {
	if len(nodes) > MAX_PROOF_LEN {
		return nil, ErrProofTooLong
	}

	proof := make([][]*big.Int, 0, len(nodes))
	hashes := make([][]*big.Int, 0, len(nodes))
	for i, node := range nodes {
		if len(node.Prefix)+len(node.Suffix) > PROOF_NODE_MAX_SIZE_BYTES {
			return nil, fmt.Errorf("node %d: %w", i, ErrNodeTooLarge)
		}

		if len(node.Suffix) < HASH_BYTES {
			return nil, fmt.Errorf("node %d: %w", i, ErrSuffixTooShort)
		}

		raw := make([]byte, 0, len(node.Prefix)+len(node.Suffix))
		raw = append(raw, node.Prefix...)
		raw = append(raw, node.Suffix...)

		proof = append(proof, BytesToFelts(raw))
		hashes = append(hashes, BytesToFelts(node.Suffix)[:HASH_FELTS])
	}

	return &StorageProof{
		proof:      proof,
		hashes:     hashes,
		rootHash:   rootHash,
		leafInputs: leafInputs,
	}, nil
}

// Len returns the number of real proof nodes.
func (sp *StorageProof) Len() int {
	return len(sp.proof)
}

// Placeholder returns the shape-only circuit used for compilation.
func (sp *StorageProof) Placeholder() *StorageProofCircuit {
	return &StorageProofCircuit{}
}

// Assign fills every declared wire: the root hash limbs, the claimed length,
// the node and hash slots (zero-filled past the proof length), and the leaf
// inputs in protocol order.
func (sp *StorageProof) Assign() (*StorageProofCircuit, error) {
	assignment := &StorageProofCircuit{}

	rootFelts := HashToFelts(sp.rootHash)
	for y := 0; y < HASH_FELTS; y++ {
		assignment.RootHash[y] = rootFelts[y]
	}
	assignment.ProofLen = len(sp.proof)

	for i := 0; i < MAX_PROOF_LEN; i++ {
		var node []*big.Int
		if i < len(sp.proof) {
			node = sp.proof[i]
		}
		for j := 0; j < PROOF_NODE_MAX_SIZE_FELTS; j++ {
			if j < len(node) {
				assignment.ProofData[i][j] = node[j]
			} else {
				assignment.ProofData[i][j] = 0
			}
		}

		for y := 0; y < HASH_FELTS; y++ {
			if i < len(sp.hashes) {
				assignment.Hashes[i][y] = sp.hashes[i][y]
			} else {
				assignment.Hashes[i][y] = 0
			}
		}
	}

	leafFelts, err := sp.leafInputs.Felts()
	if err != nil {
		return nil, err
	}
	for j := 0; j < LEAF_INPUT_FELTS; j++ {
		assignment.LeafInputs[j] = leafFelts[j]
	}
	return assignment, nil
}

// RootHash returns the public root-hash commitment bytes.
func (sp *StorageProof) RootHash() [HASH_BYTES]byte {
	return sp.rootHash
}

// GoComputeNodeHash computes the hash of one encoded proof node and returns a
// consistent result with the per-slot hash in the circuit: the node is padded
// to the full slot capacity before hashing.
func GoComputeNodeHash(node []*big.Int) Hash {
	padded := make([]*big.Int, PROOF_NODE_MAX_SIZE_FELTS)
	for i := range padded {
		if i < len(node) {
			padded[i] = node[i]
		} else {
			padded[i] = big.NewInt(0)
		}
	}
	return goHashFelts(padded)
}

// GoComputeLeafHash computes the hash of the leaf inputs and returns a
// consistent result with the leaf hash in the circuit.
func GoComputeLeafHash(leafInputs LeafInputs) (Hash, error) {
	felts, err := leafInputs.Felts()
	if err != nil {
		return nil, err
	}
	return goHashFelts(felts[:]), nil
}

// goHashFelts hashes field elements the way the circuit does: one serialized
// element per hasher block.
func goHashFelts(felts []*big.Int) Hash {
	hasher := mimc.NewMiMC()
	for i, felt := range felts {
		if _, err := hasher.Write(padToModBytes(felt)); err != nil {
			panic("error writing element " + fmt.Sprint(i) + " to hasher: " + err.Error())
		}
	}
	return hasher.Sum(nil)
}
