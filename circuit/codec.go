package circuit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// ErrAmountOutOfRange is returned when a funding amount does not fit in 128 bits.
var ErrAmountOutOfRange = errors.New("funding amount must fit in 128 bits")

// ModBytes is the serialized size of one scalar field element. It is needed to
// replicate the circuit's hashing outside the circuit, where the native hasher
// consumes fixed-width byte blocks.
var ModBytes = len(ecc.BLS12_377.ScalarField().Bytes())

var maxFeltValue = new(big.Int).Lsh(big.NewInt(1), FELT_BYTES*8)

// BytesToFelts packs a byte string into field elements, FELT_BYTES bytes per
// element, big-endian within each group. The final group is padded with
// trailing zero bytes, which is indistinguishable from genuine trailing zeroes
// in the input: decoding is therefore not bit-exact for arbitrary data and is
// only safe where the original width is known.
func BytesToFelts(data []byte) []*big.Int {
	felts := make([]*big.Int, 0, (len(data)+FELT_BYTES-1)/FELT_BYTES)
	for i := 0; i < len(data); i += FELT_BYTES {
		group := make([]byte, FELT_BYTES)
		copy(group, data[i:])
		felts = append(felts, new(big.Int).SetBytes(group))
	}
	return felts
}

// FeltsToBytes is the inverse of BytesToFelts up to the trailing zero padding.
// It fails if any element does not fit the FELT_BYTES-byte packing.
func FeltsToBytes(felts []*big.Int) ([]byte, error) {
	data := make([]byte, 0, len(felts)*FELT_BYTES)
	for i, felt := range felts {
		if felt.Sign() < 0 || felt.Cmp(maxFeltValue) >= 0 {
			return nil, fmt.Errorf("element %d does not fit in %d bytes", i, FELT_BYTES)
		}
		data = append(data, felt.FillBytes(make([]byte, FELT_BYTES))...)
	}
	return data, nil
}

// Uint128ToFelts splits a 128-bit unsigned amount into two 64-bit limbs, low
// limb first. The limb order is part of the leaf-input protocol.
func Uint128ToFelts(amount *big.Int) ([2]*big.Int, error) {
	var limbs [2]*big.Int
	if amount == nil || amount.Sign() < 0 || amount.BitLen() > 128 {
		return limbs, ErrAmountOutOfRange
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))
	limbs[0] = new(big.Int).And(amount, mask)
	limbs[1] = new(big.Int).Rsh(amount, 64)
	return limbs, nil
}

// HashToFelts encodes a 32-byte hash as its four commitment limbs.
func HashToFelts(hash [HASH_BYTES]byte) [HASH_FELTS]*big.Int {
	var felts [HASH_FELTS]*big.Int
	copy(felts[:], BytesToFelts(hash[:]))
	return felts
}

// padToModBytes returns the bytes of the input padded to the serialized field
// element width, for feeding the native hasher one element per block.
func padToModBytes(num *big.Int) []byte {
	value := num.Bytes()
	return append(make([]byte, ModBytes-len(value)), value...)
}
