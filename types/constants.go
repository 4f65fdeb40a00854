package types

import "time"

const (
	// MerkleTreeDepth is the depth of every pool's commitment accumulator.
	MerkleTreeDepth = 20
	// MerkleTreeCapacity is the maximum number of commitments per pool.
	MerkleTreeCapacity = 1 << MerkleTreeDepth
	// RootHistorySize is the number of historical Merkle roots a pool keeps
	// honoring for withdrawal proofs.
	RootHistorySize = 30
	// PoolIDSize is the byte length of a marshaled pool ID.
	PoolIDSize = 32
	// CommitmentSize is the byte length of a deposit commitment.
	CommitmentSize = 32
	// NullifierSize is the byte length of a withdrawal nullifier hash.
	NullifierSize = 32
	// BasisPointsDivisor converts basis points to a fraction.
	BasisPointsDivisor = 10000
	// DefaultFeeBPS is the default withdrawal fee in basis points.
	DefaultFeeBPS = 10
	// DefaultMinDelay is the default minimum time between a deposit and any
	// withdrawal referencing it.
	DefaultMinDelay = 60 * time.Second
	// MinAnonymitySet is the minimum number of deposits a pool needs before
	// withdrawals are allowed.
	MinAnonymitySet = 2
	// MaxEncryptedNoteSize bounds the opaque note attached to a deposit.
	MaxEncryptedNoteSize = 200
	// WithdrawPublicInputs is the number of public inputs bound by a
	// withdrawal proof: root, nullifier hash, recipient and fee.
	WithdrawPublicInputs = 4
)

// SupportedDenominations lists the pool denominations the mixer accepts,
// expressed in base units (1 unit = 10^9 base units).
var SupportedDenominations = []uint64{
	100_000_000,     // 0.1 units
	1_000_000_000,   // 1 unit
	10_000_000_000,  // 10 units
	100_000_000_000, // 100 units
}

// IsSupportedDenomination reports whether d is a protocol denomination.
func IsSupportedDenomination(d uint64) bool {
	for _, s := range SupportedDenominations {
		if s == d {
			return true
		}
	}
	return false
}
