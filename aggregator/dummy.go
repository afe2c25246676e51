package aggregator

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

// GenerateDummyProof proves the given satisfying assignment of the inner
// circuit and returns it with its public witness. Because every aggregator
// slot is verified unconditionally, the padding proof must be a real proof of
// the inner circuit; for the storage-proof system the canonical assignment is
// the empty instance from [circuit.DummyStorageProof].
func GenerateDummyProof(innerCCS constraint.ConstraintSystem, innerPK groth16.ProvingKey, assignment frontend.Circuit) (InnerProof, error) {
	w, err := frontend.NewWitness(assignment, ecc.BLS12_377.ScalarField())
	if err != nil {
		return InnerProof{}, fmt.Errorf("dummy witness: %w", err)
	}
	proof, err := groth16.Prove(innerCCS, innerPK, w)
	if err != nil {
		return InnerProof{}, fmt.Errorf("dummy proof: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return InnerProof{}, fmt.Errorf("dummy public witness: %w", err)
	}
	return InnerProof{Proof: proof, Witness: public}, nil
}

// GenerateStorageDummyProof generates the padding proof for the storage-proof
// circuit from its canonical empty instance.
func GenerateStorageDummyProof(innerCCS constraint.ConstraintSystem, innerPK groth16.ProvingKey) (InnerProof, error) {
	sp, err := circuit.DummyStorageProof()
	if err != nil {
		return InnerProof{}, fmt.Errorf("dummy instance: %w", err)
	}
	assignment, err := sp.Assign()
	if err != nil {
		return InnerProof{}, fmt.Errorf("dummy assignment: %w", err)
	}
	return GenerateDummyProof(innerCCS, innerPK, assignment)
}

// WriteTo serializes the proof followed by its public witness. The blob is
// keyed to the proving setup it was generated under and is only valid
// alongside that setup's verifying key.
func (p InnerProof) WriteTo(w io.Writer) (int64, error) {
	n, err := p.Proof.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write proof: %w", err)
	}
	m, err := p.Witness.WriteTo(w)
	if err != nil {
		return n + m, fmt.Errorf("write witness: %w", err)
	}
	return n + m, nil
}

// ReadDummyProof decodes a serialized padding proof. Malformed or truncated
// bytes fail here, before any circuit is built.
func ReadDummyProof(r io.Reader) (InnerProof, error) {
	proof := groth16.NewProof(ecc.BLS12_377)
	if _, err := proof.ReadFrom(r); err != nil {
		return InnerProof{}, fmt.Errorf("decode dummy proof: %w", err)
	}
	w, err := witness.New(ecc.BLS12_377.ScalarField())
	if err != nil {
		return InnerProof{}, fmt.Errorf("new witness: %w", err)
	}
	if _, err := w.ReadFrom(r); err != nil {
		return InnerProof{}, fmt.Errorf("decode dummy witness: %w", err)
	}
	return InnerProof{Proof: proof, Witness: w}, nil
}
