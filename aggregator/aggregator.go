package aggregator

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"

	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

var _ circuit.Fragment[*AggregatorCircuit] = (*Aggregator)(nil)

var (
	// ErrTooManyProofs is returned by SetProofs when the batch exceeds the
	// aggregation capacity. The aggregator state is left untouched.
	ErrTooManyProofs = errors.New("proofs to aggregate exceed the aggregation capacity")

	// ErrNoProofsSet is returned by Assign before SetProofs has been called.
	ErrNoProofsSet = errors.New("no proof batch set: call SetProofs first")
)

// InnerProof pairs a native inner proof with its public witness.
type InnerProof struct {
	Proof   groth16.Proof
	Witness witness.Witness
}

// Aggregator builds batches of up to Size inner proofs against one shared
// inner circuit shape and verifying key. The shape descriptor and key are
// created once per proving setup and shared across every batch; recreating
// them per batch would silently produce incompatible proving parameters.
// Instances are not safe for concurrent use; each proof-generation attempt
// owns its own Aggregator.
type Aggregator struct {
	size     int
	innerCCS constraint.ConstraintSystem
	innerVK  groth16.VerifyingKey
	dummy    InnerProof
	proofs   []InnerProof
}

// NewAggregator returns an aggregator of fixed capacity over the shared inner
// circuit shape, verifying key, and padding proof.
func NewAggregator(size int, innerCCS constraint.ConstraintSystem, innerVK groth16.VerifyingKey, dummy InnerProof) (*Aggregator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("aggregation capacity must be positive, got %d", size)
	}
	return &Aggregator{
		size:     size,
		innerCCS: innerCCS,
		innerVK:  innerVK,
		dummy:    dummy,
	}, nil
}

// Size returns the fixed aggregation capacity.
func (a *Aggregator) Size() int {
	return a.size
}

// NumSet returns the number of proofs in the current batch, including padding.
func (a *Aggregator) NumSet() int {
	return len(a.proofs)
}

// SetProofs stores a batch of up to Size proofs and pads the remaining slots
// with the dummy proof, so the batch always holds exactly Size entries. A
// batch larger than the capacity is rejected without altering prior state.
func (a *Aggregator) SetProofs(proofs []InnerProof) error {
	if len(proofs) > a.size {
		return ErrTooManyProofs
	}

	batch := make([]InnerProof, 0, a.size)
	batch = append(batch, proofs...)
	for len(batch) < a.size {
		batch = append(batch, a.dummy)
	}
	a.proofs = batch
	return nil
}

// Placeholder returns the shape-only outer circuit for compilation. The slot
// layout depends only on the capacity and the shared inner circuit shape.
func (a *Aggregator) Placeholder() *AggregatorCircuit {
	proofs := make([]stdgroth16.Proof[sw_bls12377.G1Affine, sw_bls12377.G2Affine], a.size)
	witnesses := make([]stdgroth16.Witness[sw_bls12377.ScalarField], a.size)
	for i := 0; i < a.size; i++ {
		proofs[i] = stdgroth16.PlaceholderProof[sw_bls12377.G1Affine, sw_bls12377.G2Affine](a.innerCCS)
		witnesses[i] = stdgroth16.PlaceholderWitness[sw_bls12377.ScalarField](a.innerCCS)
	}
	return &AggregatorCircuit{
		Proofs:         proofs,
		InnerWitnesses: witnesses,
		VerifyingKey:   stdgroth16.PlaceholderVerifyingKey[sw_bls12377.G1Affine, sw_bls12377.G2Affine, sw_bls12377.GT](a.innerCCS),
	}
}

// Assign fills each slot's proof and public-input wires, then the shared
// verifying-key wires once. A proof whose public-input shape does not match
// the inner circuit fails here, at witness-assignment time.
func (a *Aggregator) Assign() (*AggregatorCircuit, error) {
	if len(a.proofs) != a.size {
		return nil, ErrNoProofsSet
	}

	proofs := make([]stdgroth16.Proof[sw_bls12377.G1Affine, sw_bls12377.G2Affine], a.size)
	witnesses := make([]stdgroth16.Witness[sw_bls12377.ScalarField], a.size)
	for i, inner := range a.proofs {
		var err error
		proofs[i], err = stdgroth16.ValueOfProof[sw_bls12377.G1Affine, sw_bls12377.G2Affine](inner.Proof)
		if err != nil {
			return nil, fmt.Errorf("slot %d proof assignment: %w", i, err)
		}
		witnesses[i], err = stdgroth16.ValueOfWitness[sw_bls12377.ScalarField](inner.Witness)
		if err != nil {
			return nil, fmt.Errorf("slot %d witness assignment: %w", i, err)
		}
	}

	vk, err := stdgroth16.ValueOfVerifyingKey[sw_bls12377.G1Affine, sw_bls12377.G2Affine, sw_bls12377.GT](a.innerVK)
	if err != nil {
		return nil, fmt.Errorf("verifying key assignment: %w", err)
	}

	return &AggregatorCircuit{
		Proofs:         proofs,
		InnerWitnesses: witnesses,
		VerifyingKey:   vk,
	}, nil
}
