// Package circuit implements the storage-proof circuit that binds a ledger
// storage-trie inclusion path to a hashed leaf of private funding data, as
// well as the helpers needed to replicate the circuit's hashing in Go.
package circuit

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/consensys/gnark/std/math/cmp"
)

// StorageProofCircuit is the wire layout of the storage-proof statement. The
// root hash is the only public input; every other wire is private witness.
//
// The statement: hashing proof-node slot 0 yields RootHash, each node's
// embedded child hash (supplied in Hashes) is the hash of the next node, and
// the child hash of the last node equals the hash of the eleven leaf inputs.
// Slots past ProofLen carry zeroes and are left unconstrained.
type StorageProofCircuit struct {
	RootHash   [HASH_FELTS]frontend.Variable `gnark:",public"`
	ProofLen   frontend.Variable
	ProofData  [MAX_PROOF_LEN][PROOF_NODE_MAX_SIZE_FELTS]frontend.Variable
	Hashes     [MAX_PROOF_LEN][HASH_FELTS]frontend.Variable
	LeafInputs [LEAF_INPUT_FELTS]frontend.Variable
}

// hashToCommitment hashes the given wires and decomposes the digest into the
// four 64-bit commitment limbs, most significant limb first, matching the
// byte codec applied to the digest's serialization.
func hashToCommitment(api frontend.API, hasher *mimc.MiMC, felts []frontend.Variable) [HASH_FELTS]frontend.Variable {
	hasher.Reset()
	hasher.Write(felts...)
	digest := hasher.Sum()

	nbBits := api.Compiler().Field().BitLen()
	bits := api.ToBinary(digest, nbBits)

	var commitment [HASH_FELTS]frontend.Variable
	for y := 0; y < HASH_FELTS; y++ {
		lo := (HASH_FELTS - 1 - y) * FELT_BYTES * 8
		hi := lo + FELT_BYTES*8
		if hi > nbBits {
			hi = nbBits
		}
		commitment[y] = api.FromBinary(bits[lo:hi]...)
	}
	return commitment
}

// gatedAssertEqual enforces a == b only when the selector is 1. The selector
// must come from a boolean-constrained comparator; the product form is
// identically zero for a zero selector, leaving a and b unconstrained.
func gatedAssertEqual(api frontend.API, a, b [HASH_FELTS]frontend.Variable, selector frontend.Variable) {
	for y := 0; y < HASH_FELTS; y++ {
		api.AssertIsEqual(api.Mul(api.Sub(a[y], b[y]), selector), 0)
	}
}

// Define adds the storage-proof constraints. It walks all MAX_PROOF_LEN slots
// unconditionally and gates each hash comparison on whether the slot is within
// the claimed proof length.
func (c *StorageProofCircuit) Define(api frontend.API) error {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	leafHash := hashToCommitment(api, &hasher, c.LeafInputs[:])

	// A claimed length past the slot count would leave the leaf comparison
	// permanently gated off, so reject it outright.
	api.AssertIsLessOrEqual(c.ProofLen, MAX_PROOF_LEN)

	comparator := cmp.NewBoundedComparator(api, big.NewInt(1<<PROOF_LEN_BITS), false)

	// The first node is the root node, so the chain starts at the root hash.
	prevHash := c.RootHash
	for i := 0; i < MAX_PROOF_LEN; i++ {
		isProofNode := comparator.IsLess(i, c.ProofLen)
		api.AssertIsBoolean(isProofNode)

		computedHash := hashToCommitment(api, &hasher, c.ProofData[i][:])
		gatedAssertEqual(api, computedHash, prevHash, isProofNode)

		// The slot just past the last proof node is where the leaf lives.
		isLeafNode := api.IsZero(api.Sub(c.ProofLen, i))
		gatedAssertEqual(api, leafHash, prevHash, isLeafNode)

		// Advance to the child hash embedded in this node. Its consistency
		// with the next node's computed hash is enforced on the next pass.
		prevHash = c.Hashes[i]
	}

	// A maximum-length proof places the leaf one step past the last slot.
	isLeafNode := api.IsZero(api.Sub(c.ProofLen, MAX_PROOF_LEN))
	gatedAssertEqual(api, leafHash, prevHash, isLeafNode)
	return nil
}
