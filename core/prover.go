// Package core orchestrates compilation, setup, proof generation,
// aggregation, and verification for the wormhole circuits.
package core

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"

	"github.com/Quantus-Network/wormhole-circuit/aggregator"
	"github.com/Quantus-Network/wormhole-circuit/circuit"
)

// The inner system and its padding proof are compiled and set up once and
// shared by every proof attempt. Regenerating them per instance would produce
// incompatible proving parameters.
var (
	innerOnce  sync.Once
	innerSys   ProvingSystem
	innerDummy aggregator.InnerProof
	innerErr   error

	outerMu   sync.Mutex
	outerSyss = make(map[int]ProvingSystem)
)

// InnerSystem compiles and sets up the storage-proof circuit. The result is
// cached for the lifetime of the process.
func InnerSystem() (ProvingSystem, error) {
	innerOnce.Do(func() {
		log := logger.Logger().With().Str("circuit", "storage-proof").Logger()
		start := time.Now()

		var placeholder circuit.StorageProofCircuit
		ccs, err := frontend.Compile(ecc.BLS12_377.ScalarField(), r1cs.NewBuilder, &placeholder)
		if err != nil {
			innerErr = fmt.Errorf("compile storage-proof circuit: %w", err)
			return
		}
		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			innerErr = fmt.Errorf("setup storage-proof circuit: %w", err)
			return
		}
		innerSys = ProvingSystem{CCS: ccs, PK: pk, VK: vk}

		innerDummy, err = aggregator.GenerateStorageDummyProof(ccs, pk)
		if err != nil {
			innerErr = fmt.Errorf("generate padding proof: %w", err)
			return
		}
		log.Info().Dur("took", time.Since(start)).Int("constraints", ccs.GetNbConstraints()).Msg("inner system ready")
	})
	return innerSys, innerErr
}

// outerSystem compiles and sets up the aggregator circuit for the given
// capacity, caching per capacity.
func outerSystem(size int) (ProvingSystem, error) {
	inner, err := InnerSystem()
	if err != nil {
		return ProvingSystem{}, err
	}

	outerMu.Lock()
	defer outerMu.Unlock()
	if sys, ok := outerSyss[size]; ok {
		return sys, nil
	}

	log := logger.Logger().With().Str("circuit", "aggregator").Int("size", size).Logger()
	start := time.Now()

	agg, err := aggregator.NewAggregator(size, inner.CCS, inner.VK, innerDummy)
	if err != nil {
		return ProvingSystem{}, err
	}
	ccs, err := frontend.Compile(ecc.BW6_761.ScalarField(), r1cs.NewBuilder, agg.Placeholder())
	if err != nil {
		return ProvingSystem{}, fmt.Errorf("compile aggregator circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return ProvingSystem{}, fmt.Errorf("setup aggregator circuit: %w", err)
	}

	sys := ProvingSystem{CCS: ccs, PK: pk, VK: vk}
	outerSyss[size] = sys
	log.Info().Dur("took", time.Since(start)).Int("constraints", ccs.GetNbConstraints()).Msg("outer system ready")
	return sys, nil
}

// ProveStorageProof generates an inner proof for one storage-proof instance
// and returns it with its public witness, ready for aggregation. Tampered or
// inconsistent instance data surfaces here as a proving error: the constraint
// system has no satisfying assignment for it.
func ProveStorageProof(sp *circuit.StorageProof) (aggregator.InnerProof, error) {
	sys, err := InnerSystem()
	if err != nil {
		return aggregator.InnerProof{}, err
	}

	assignment, err := sp.Assign()
	if err != nil {
		return aggregator.InnerProof{}, fmt.Errorf("assign witness: %w", err)
	}
	w, err := frontend.NewWitness(assignment, ecc.BLS12_377.ScalarField())
	if err != nil {
		return aggregator.InnerProof{}, fmt.Errorf("create witness: %w", err)
	}
	proof, err := groth16.Prove(sys.CCS, sys.PK, w)
	if err != nil {
		return aggregator.InnerProof{}, fmt.Errorf("prove: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return aggregator.InnerProof{}, fmt.Errorf("public witness: %w", err)
	}
	return aggregator.InnerProof{Proof: proof, Witness: public}, nil
}

// GenerateStorageProof proves one storage-proof instance and serializes the
// result for publication.
func GenerateStorageProof(sp *circuit.StorageProof) (CompletedProof, error) {
	inner, err := ProveStorageProof(sp)
	if err != nil {
		return CompletedProof{}, err
	}
	sys, err := InnerSystem()
	if err != nil {
		return CompletedProof{}, err
	}

	completed, err := serializeProof(STORAGE_PROOF_CURVE, inner.Proof, sys.VK, inner.Witness)
	if err != nil {
		return CompletedProof{}, err
	}
	rootHash := sp.RootHash()
	completed.RootHash = rootHash[:]
	return completed, nil
}

// AggregateProofs verifies the given inner proofs inside one outer proof of
// the given capacity, padding unused slots with the shared dummy proof. The
// outer public inputs re-expose each slot's inner public inputs in order.
func AggregateProofs(proofs []aggregator.InnerProof, size int) (CompletedProof, error) {
	inner, err := InnerSystem()
	if err != nil {
		return CompletedProof{}, err
	}
	outer, err := outerSystem(size)
	if err != nil {
		return CompletedProof{}, err
	}

	agg, err := aggregator.NewAggregator(size, inner.CCS, inner.VK, innerDummy)
	if err != nil {
		return CompletedProof{}, err
	}
	if err := agg.SetProofs(proofs); err != nil {
		return CompletedProof{}, err
	}
	assignment, err := agg.Assign()
	if err != nil {
		return CompletedProof{}, fmt.Errorf("assign aggregator witness: %w", err)
	}

	w, err := frontend.NewWitness(assignment, ecc.BW6_761.ScalarField())
	if err != nil {
		return CompletedProof{}, fmt.Errorf("create aggregator witness: %w", err)
	}
	proof, err := groth16.Prove(outer.CCS, outer.PK, w)
	if err != nil {
		return CompletedProof{}, fmt.Errorf("prove aggregation: %w", err)
	}
	public, err := w.Public()
	if err != nil {
		return CompletedProof{}, fmt.Errorf("aggregator public witness: %w", err)
	}
	return serializeProof(AGGREGATED_PROOF_CURVE, proof, outer.VK, public)
}

// ExportDummyProof writes the padding proof for the current inner setup to a
// file, so it can be distributed alongside the proving keys.
func ExportDummyProof(path string) error {
	if _, err := InnerSystem(); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			panic("Couldn't close file" + err.Error())
		}
	}(file)

	if _, err := innerDummy.WriteTo(file); err != nil {
		return fmt.Errorf("write dummy proof: %w", err)
	}
	return nil
}

// serializeProof packs a proof, its verifying key, and the public witness
// into base64 for JSON publication.
func serializeProof(curve string, proof groth16.Proof, vk groth16.VerifyingKey, public witness.Witness) (CompletedProof, error) {
	var proofBuf, vkBuf, witnessBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return CompletedProof{}, fmt.Errorf("serialize proof: %w", err)
	}
	if _, err := vk.WriteTo(&vkBuf); err != nil {
		return CompletedProof{}, fmt.Errorf("serialize verifying key: %w", err)
	}
	if _, err := public.WriteTo(&witnessBuf); err != nil {
		return CompletedProof{}, fmt.Errorf("serialize public witness: %w", err)
	}
	return CompletedProof{
		Curve:           curve,
		Proof:           base64.StdEncoding.EncodeToString(proofBuf.Bytes()),
		VerificationKey: base64.StdEncoding.EncodeToString(vkBuf.Bytes()),
		PublicWitness:   base64.StdEncoding.EncodeToString(witnessBuf.Bytes()),
	}, nil
}
