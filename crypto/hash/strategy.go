// Package hash implements the hash strategies of the commitment
// accumulator. All strategies share the same interface so the tree logic is
// written once; a pool selects its strategy at creation time.
//
// Three strategies exist:
//   - sha256: byte-oriented with explicit leaf/node domain separation
//   - mimc: MiMC over the BN254 scalar field, matching the in-circuit MiMC
//     gadget used by the built-in withdrawal circuit
//   - poseidon: iden3 Poseidon, matching circom tooling
package hash

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/zkmixer/zkmixer/types"
)

// Strategy is the hash abstraction the accumulator is generic over.
// Implementations must be deterministic and side-effect free.
type Strategy interface {
	// Type returns the strategy identifier stored in pool records.
	Type() types.HashType
	// HashLeaf maps a 32 byte commitment to its level-0 tree node.
	HashLeaf(leaf []byte) []byte
	// HashNode combines two child nodes into their parent.
	HashNode(left, right []byte) []byte
}

// FromType returns the strategy for the given identifier.
func FromType(t types.HashType) (Strategy, error) {
	switch t {
	case types.HashTypeSHA256:
		return SHA256{}, nil
	case types.HashTypeMiMC:
		return MiMC{}, nil
	case types.HashTypePoseidon:
		return Poseidon{}, nil
	}
	return nil, fmt.Errorf("unknown hash type %q", t)
}

// EmptyLeaf returns the publicly known placeholder for an unused leaf,
// shared by all strategies.
func EmptyLeaf() []byte {
	return make([]byte, 32)
}

// Canonical reports whether b is the canonical 32 byte encoding of a value
// under the strategy: any bytes for the byte-oriented strategy, a reduced
// scalar field element for the algebraic ones. Values of an algebraic
// strategy have exactly one canonical encoding; accepting a non-reduced
// alias would let two distinct byte strings name the same field element.
func Canonical(s Strategy, b []byte) bool {
	switch s.(type) {
	case SHA256:
		return true
	case MiMC, Poseidon:
		return new(big.Int).SetBytes(b).Cmp(fr.Modulus()) < 0
	}
	return false
}

func errUnknownStrategy(s Strategy) error {
	return fmt.Errorf("unknown hash strategy %T", s)
}
