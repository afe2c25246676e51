package core

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"

	"github.com/Quantus-Network/wormhole-circuit/aggregator"
)

// curveOf maps a completed proof's curve name to the backend identifier.
func curveOf(proof CompletedProof) (ecc.ID, error) {
	switch proof.Curve {
	case STORAGE_PROOF_CURVE:
		return ecc.BLS12_377, nil
	case AGGREGATED_PROOF_CURVE:
		return ecc.BW6_761, nil
	default:
		return ecc.UNKNOWN, fmt.Errorf("unknown proof curve %q", proof.Curve)
	}
}

func decodeBase64Field(name, data string) (*bytes.Reader, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return bytes.NewReader(raw), nil
}

// deserializeProof reconstructs the backend objects from a completed proof.
func deserializeProof(p CompletedProof) (groth16.Proof, groth16.VerifyingKey, witness.Witness, error) {
	curve, err := curveOf(p)
	if err != nil {
		return nil, nil, nil, err
	}

	proofReader, err := decodeBase64Field("proof", p.Proof)
	if err != nil {
		return nil, nil, nil, err
	}
	proof := groth16.NewProof(curve)
	if _, err := proof.ReadFrom(proofReader); err != nil {
		return nil, nil, nil, fmt.Errorf("read proof: %w", err)
	}

	vkReader, err := decodeBase64Field("verifying key", p.VerificationKey)
	if err != nil {
		return nil, nil, nil, err
	}
	vk := groth16.NewVerifyingKey(curve)
	if _, err := vk.ReadFrom(vkReader); err != nil {
		return nil, nil, nil, fmt.Errorf("read verifying key: %w", err)
	}

	witnessReader, err := decodeBase64Field("public witness", p.PublicWitness)
	if err != nil {
		return nil, nil, nil, err
	}
	public, err := witness.New(curve.ScalarField())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("new witness: %w", err)
	}
	if _, err := public.ReadFrom(witnessReader); err != nil {
		return nil, nil, nil, fmt.Errorf("read public witness: %w", err)
	}
	return proof, vk, public, nil
}

// VerifyCompletedProof checks a serialized proof against its verifying key
// and public witness. It works for both storage proofs and aggregated proofs.
func VerifyCompletedProof(p CompletedProof) error {
	proof, vk, public, err := deserializeProof(p)
	if err != nil {
		return err
	}
	if err := groth16.Verify(proof, vk, public); err != nil {
		return fmt.Errorf("proof verification failed: %w", err)
	}
	return nil
}

// VerifyStorageProof checks that the given proof is a valid storage proof.
func VerifyStorageProof(p CompletedProof) error {
	if p.Curve != STORAGE_PROOF_CURVE {
		return fmt.Errorf("not a storage proof: curve %q, want %q", p.Curve, STORAGE_PROOF_CURVE)
	}
	return VerifyCompletedProof(p)
}

// VerifyAggregatedProof checks that the given proof is a valid aggregated
// proof.
func VerifyAggregatedProof(p CompletedProof) error {
	if p.Curve != AGGREGATED_PROOF_CURVE {
		return fmt.Errorf("not an aggregated proof: curve %q, want %q", p.Curve, AGGREGATED_PROOF_CURVE)
	}
	return VerifyCompletedProof(p)
}

// DecodeInnerProof turns a completed storage proof back into the form the
// aggregator consumes. Aggregated proofs cannot be aggregated again.
func DecodeInnerProof(p CompletedProof) (aggregator.InnerProof, error) {
	if p.Curve != STORAGE_PROOF_CURVE {
		return aggregator.InnerProof{}, fmt.Errorf("cannot aggregate a %q proof, want %q", p.Curve, STORAGE_PROOF_CURVE)
	}
	proof, _, public, err := deserializeProof(p)
	if err != nil {
		return aggregator.InnerProof{}, err
	}
	return aggregator.InnerProof{Proof: proof, Witness: public}, nil
}
