package hash

import (
	"math/big"

	bn254mimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

// MiMC is the algebraic strategy over the BN254 scalar field. A root
// computed with it can be recomputed inside a gnark circuit with the
// standard MiMC gadget, which is what the built-in withdrawal circuit does.
type MiMC struct{}

// Type returns the strategy identifier.
func (MiMC) Type() types.HashType { return types.HashTypeMiMC }

// HashLeaf reduces the commitment into the scalar field. The leaf itself is
// the level-0 node so the withdrawal circuit can start its membership walk
// from the in-circuit commitment.
func (MiMC) HashLeaf(leaf []byte) []byte {
	return fieldBytes(leaf)
}

// HashNode computes MiMC(left, right) over two field elements.
func (MiMC) HashNode(left, right []byte) []byte {
	h := bn254mimc.NewMiMC()
	// Write cannot fail on canonical 32 byte field elements.
	_, _ = h.Write(fieldBytes(left))
	_, _ = h.Write(fieldBytes(right))
	return h.Sum(nil)
}

// fieldBytes reduces b into the BN254 scalar field and left-pads it to a
// canonical 32 byte big-endian representation.
func fieldBytes(b []byte) []byte {
	v := util.BigToFF(new(big.Int).SetBytes(b))
	out := make([]byte, 32)
	v.FillBytes(out)
	return out
}
