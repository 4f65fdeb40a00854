package hash

import (
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

// Poseidon is the algebraic strategy used by pools whose withdrawal proofs
// come from circom tooling, where Poseidon is the native hash.
type Poseidon struct{}

// Type returns the strategy identifier.
func (Poseidon) Type() types.HashType { return types.HashTypePoseidon }

// HashLeaf reduces the commitment into the scalar field; as with MiMC, the
// commitment itself is the level-0 node.
func (Poseidon) HashLeaf(leaf []byte) []byte {
	return fieldBytes(leaf)
}

// HashNode computes Poseidon(left, right) over two field elements.
func (Poseidon) HashNode(left, right []byte) []byte {
	l := util.BigToFF(new(big.Int).SetBytes(left))
	r := util.BigToFF(new(big.Int).SetBytes(right))
	sum, err := poseidon.Hash([]*big.Int{l, r})
	if err != nil {
		// poseidon.Hash only fails on input counts or non-reduced
		// elements, both excluded here.
		panic(err)
	}
	out := make([]byte, 32)
	sum.FillBytes(out)
	return out
}
