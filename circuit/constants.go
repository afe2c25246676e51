package circuit

const (
	// MAX_PROOF_LEN is the fixed upper bound on the number of trie nodes in a
	// storage proof. The circuit shape is static, so shorter proofs are padded
	// with zero nodes up to this bound.
	MAX_PROOF_LEN = 20

	// PROOF_NODE_MAX_SIZE_BYTES is the ceiling on the raw byte size of a single
	// trie node (prefix and suffix concatenated).
	PROOF_NODE_MAX_SIZE_BYTES = 256

	// PROOF_NODE_MAX_SIZE_FELTS is the fixed field-element capacity of one
	// proof-node slot. Encoded nodes shorter than this are zero-padded.
	PROOF_NODE_MAX_SIZE_FELTS = 73

	// LEAF_INPUT_FELTS is the exact number of field elements the private leaf
	// inputs concatenate to: nonce (1), funding account (4), destination
	// account (4), funding amount (2). The order is protocol and must not change.
	LEAF_INPUT_FELTS = 11

	// HASH_FELTS is the width of a hash commitment: a 256-bit hash as four
	// 64-bit field-element limbs.
	HASH_FELTS = 4

	// HASH_BYTES is the raw byte size of a hash commitment.
	HASH_BYTES = 32

	// FELT_BYTES is the number of raw bytes packed into one field element.
	FELT_BYTES = 8

	// ACCOUNT_BYTES is the raw byte size of an account identifier.
	ACCOUNT_BYTES = 32

	// PROOF_LEN_BITS bounds the comparator used for the per-slot selectors.
	// 5 bits are enough to separate any slot index from any proof length.
	PROOF_LEN_BITS = 5
)
