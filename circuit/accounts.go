package circuit

import (
	"errors"
	"math/big"
)

// ErrInvalidAccountLength is returned when raw account bytes are not exactly
// ACCOUNT_BYTES long.
var ErrInvalidAccountLength = errors.New("account identifier must be exactly 32 bytes")

// SubstrateAccount is the opaque 32-byte identifier of the funding account on
// the ledger.
type SubstrateAccount [ACCOUNT_BYTES]byte

// UnspendableAccount is the opaque 32-byte identifier of the destination
// account. It is derived off-chain so that no private key can exist for it.
type UnspendableAccount [ACCOUNT_BYTES]byte

// NewSubstrateAccountFromBytes validates and copies raw account bytes.
func NewSubstrateAccountFromBytes(data []byte) (SubstrateAccount, error) {
	var account SubstrateAccount
	if len(data) != ACCOUNT_BYTES {
		return account, ErrInvalidAccountLength
	}
	copy(account[:], data)
	return account, nil
}

// NewUnspendableAccountFromBytes validates and copies raw account bytes.
func NewUnspendableAccountFromBytes(data []byte) (UnspendableAccount, error) {
	var account UnspendableAccount
	if len(data) != ACCOUNT_BYTES {
		return account, ErrInvalidAccountLength
	}
	copy(account[:], data)
	return account, nil
}

// Felts encodes the account as four field elements.
func (a SubstrateAccount) Felts() [HASH_FELTS]*big.Int {
	return accountToFelts(a[:])
}

// Felts encodes the account as four field elements.
func (a UnspendableAccount) Felts() [HASH_FELTS]*big.Int {
	return accountToFelts(a[:])
}

func accountToFelts(data []byte) [HASH_FELTS]*big.Int {
	var felts [HASH_FELTS]*big.Int
	copy(felts[:], BytesToFelts(data))
	return felts
}
