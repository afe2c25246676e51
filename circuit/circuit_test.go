package circuit

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
)

func solvableAssignment(t *testing.T, length int, seed int64) *StorageProofCircuit {
	t.Helper()
	nodes, rootHash, leafInputs := GenerateTestStorageProof(length, seed)
	sp, err := NewStorageProof(nodes, rootHash, leafInputs)
	if err != nil {
		t.Fatal(err)
	}
	assignment, err := sp.Assign()
	if err != nil {
		t.Fatal(err)
	}
	return assignment
}

func TestCircuitAcceptsAllProofLengths(t *testing.T) {
	assert := test.NewAssert(t)

	for _, length := range []int{0, 1, 3, MAX_PROOF_LEN} {
		assignment := solvableAssignment(t, length, int64(length))
		assert.NoError(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
	}
}

func TestCircuitWorks(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full prover run in short mode")
	}
	assert := test.NewAssert(t)

	assignment := solvableAssignment(t, 3, 7)
	assert.ProverSucceeded(&StorageProofCircuit{}, assignment, test.WithCurves(ecc.BLS12_377), test.WithBackends(backend.GROTH16))
}

func TestCircuitRejectsWrongRootHash(t *testing.T) {
	assert := test.NewAssert(t)

	assignment := solvableAssignment(t, 2, 8)
	assignment.RootHash[0] = 123
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
}

func TestCircuitRejectsTamperedLeafInputs(t *testing.T) {
	assert := test.NewAssert(t)

	// changing any committed leaf field changes the leaf hash
	nodes, rootHash, leafInputs := GenerateTestStorageProof(2, 9)
	leafInputs.Nonce++
	sp, err := NewStorageProof(nodes, rootHash, leafInputs)
	assert.NoError(err)
	assignment, err := sp.Assign()
	assert.NoError(err)
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))

	nodes, rootHash, leafInputs = GenerateTestStorageProof(2, 9)
	leafInputs.ToAccount[0] ^= 0xFF
	sp, err = NewStorageProof(nodes, rootHash, leafInputs)
	assert.NoError(err)
	assignment, err = sp.Assign()
	assert.NoError(err)
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
}

func TestCircuitRejectsTamperedNodeData(t *testing.T) {
	assert := test.NewAssert(t)

	nodes, rootHash, leafInputs := GenerateTestStorageProof(3, 10)
	nodes[1].Suffix[HASH_BYTES+2] ^= 0x01
	sp, err := NewStorageProof(nodes, rootHash, leafInputs)
	assert.NoError(err)
	assignment, err := sp.Assign()
	assert.NoError(err)

	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
}

func TestCircuitRejectsTamperedEmbeddedHash(t *testing.T) {
	assert := test.NewAssert(t)

	// lying about a child hash breaks either the chain to the child or the
	// consistency with the node's own data
	assignment := solvableAssignment(t, 3, 11)
	assignment.Hashes[1][2] = 7
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
}

func TestCircuitRejectsWrongProofLength(t *testing.T) {
	assert := test.NewAssert(t)

	assignment := solvableAssignment(t, 3, 12)
	assignment.ProofLen = 2
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))

	assignment = solvableAssignment(t, 3, 12)
	assignment.ProofLen = MAX_PROOF_LEN + 1
	assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
}

func TestCircuitRejectsByteFlips(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping byte-flip sweep in short mode")
	}
	assert := test.NewAssert(t)

	rng := rand.New(rand.NewSource(1000))
	for trial := 0; trial < 1000; trial++ {
		length := 1 + rng.Intn(3)
		nodes, rootHash, leafInputs := GenerateTestStorageProof(length, int64(trial))

		node := rng.Intn(length)
		pos := rng.Intn(len(nodes[node].Suffix))
		nodes[node].Suffix[pos] ^= byte(1 + rng.Intn(255))

		sp, err := NewStorageProof(nodes, rootHash, leafInputs)
		assert.NoError(err)
		assignment, err := sp.Assign()
		assert.NoError(err)

		assert.Error(test.IsSolved(&StorageProofCircuit{}, assignment, ecc.BLS12_377.ScalarField()))
	}
}
