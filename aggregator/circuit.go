// Package aggregator batches independently produced storage proofs and
// verifies all of them inside a single outer circuit, so a downstream
// verifier checks one proof regardless of batch size. The inner proofs are
// Groth16 proofs over BLS12-377; the outer circuit runs over BW6-761, whose
// scalar field matches the inner base field, so the recursive verification is
// native curve arithmetic.
package aggregator

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
	stdgroth16 "github.com/consensys/gnark/std/recursion/groth16"
)

// AggregatorCircuit verifies a fixed number of inner proofs. Every slot is
// checked unconditionally against the shared verifying key, which is why
// padding slots must carry a genuinely valid proof rather than an inert
// placeholder. Each slot's inner public inputs are re-exposed as outer public
// inputs, in slot order.
type AggregatorCircuit struct {
	Proofs         []stdgroth16.Proof[sw_bls12377.G1Affine, sw_bls12377.G2Affine]
	InnerWitnesses []stdgroth16.Witness[sw_bls12377.ScalarField] `gnark:",public"`
	VerifyingKey   stdgroth16.VerifyingKey[sw_bls12377.G1Affine, sw_bls12377.G2Affine, sw_bls12377.GT]
}

// Define emits one unconditional recursive-verification check per slot.
func (c *AggregatorCircuit) Define(api frontend.API) error {
	if len(c.Proofs) != len(c.InnerWitnesses) {
		return fmt.Errorf("proof count %d does not match witness count %d", len(c.Proofs), len(c.InnerWitnesses))
	}

	verifier, err := stdgroth16.NewVerifier[sw_bls12377.ScalarField, sw_bls12377.G1Affine, sw_bls12377.G2Affine, sw_bls12377.GT](api)
	if err != nil {
		return fmt.Errorf("new verifier: %w", err)
	}
	for i := range c.Proofs {
		if err := verifier.AssertProof(c.VerifyingKey, c.Proofs[i], c.InnerWitnesses[i]); err != nil {
			return fmt.Errorf("verify slot %d: %w", i, err)
		}
	}
	return nil
}
