package core

import (
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
)

// Curve names recorded in completed proofs so a verifier knows which system
// produced them.
const (
	STORAGE_PROOF_CURVE    = "bls12-377"
	AGGREGATED_PROOF_CURVE = "bw6-761"
)

// ProvingSystem contains the results of compiling and setting up a circuit.
// It is created once per circuit shape and shared across proof attempts.
type ProvingSystem struct {
	CCS constraint.ConstraintSystem
	PK  groth16.ProvingKey
	VK  groth16.VerifyingKey
}

// CompletedProof is the output of the prover. It contains the serialized
// proof, verifying key, and public witness, and can be published.
type CompletedProof struct {
	Curve           string
	Proof           string
	VerificationKey string
	PublicWitness   string

	// RootHash is set on storage proofs only; it restates the public input
	// for human consumption.
	RootHash []byte `json:",omitempty"`
}

// RawProofNode is one raw trie node as read from a JSON input file, hex
// encoded and split at the embedded child hash offset.
type RawProofNode struct {
	Prefix string
	Suffix string
}

// RawProofInput is the full prover input as read from a JSON file: the raw
// trie proof from the ledger node plus the private leaf data. It contains
// sensitive data and should not be published.
type RawProofInput struct {
	Nodes    []RawProofNode
	RootHash string

	Nonce          uint32
	FundingAccount string
	ToAccount      string
	FundingAmount  string
}
