package merkle

import (
	"bytes"
	"fmt"

	"github.com/zkmixer/zkmixer/crypto/hash"
)

// Path is a Merkle membership path: one sibling per level, ordered from the
// leaf level upward.
type Path struct {
	Index    uint64
	Siblings [][]byte
}

// VerifyMembership recomputes the root from a leaf and its path and compares
// it against the expected root of a tree with the given depth. The path must
// carry exactly one sibling per level; a shorter path would let an inner
// node of an algebraic tree pass as a leaf. Malformed input is a
// verification failure, never an error.
func VerifyMembership(strategy hash.Strategy, leaf []byte, path *Path, root []byte, depth int) bool {
	if path == nil || depth < 1 || depth > 32 || len(path.Siblings) != depth {
		return false
	}
	if path.Index >= 1<<depth {
		return false
	}
	cur := strategy.HashLeaf(leaf)
	for level, sibling := range path.Siblings {
		if path.Index>>level&1 == 0 {
			cur = strategy.HashNode(cur, sibling)
		} else {
			cur = strategy.HashNode(sibling, cur)
		}
	}
	return bytes.Equal(cur, root)
}

// BuildPath recomputes the tree layer by layer from the full ordered leaf
// log and returns the membership path of the leaf at the given index, plus
// the resulting root. Withdrawing wallets use it to derive a witness from
// the public commitment log; the accumulator itself never stores enough to
// answer path queries.
func BuildPath(strategy hash.Strategy, leaves [][]byte, index uint64, depth int) (*Path, []byte, error) {
	if depth < 1 || depth > 32 {
		return nil, nil, fmt.Errorf("merkle: invalid depth %d", depth)
	}
	if uint64(len(leaves)) > 1<<depth {
		return nil, nil, fmt.Errorf("merkle: %d leaves exceed capacity", len(leaves))
	}
	if index >= uint64(len(leaves)) {
		return nil, nil, fmt.Errorf("merkle: leaf index %d out of range", index)
	}
	zeros := Zeros(strategy, depth)
	layer := make([][]byte, len(leaves))
	for i, leaf := range leaves {
		layer[i] = strategy.HashLeaf(leaf)
	}
	siblings := make([][]byte, depth)
	pos := index
	for level := 0; level < depth; level++ {
		sib := pos ^ 1
		if sib < uint64(len(layer)) {
			siblings[level] = bytes.Clone(layer[sib])
		} else {
			siblings[level] = bytes.Clone(zeros[level])
		}
		next := make([][]byte, (len(layer)+1)/2)
		for i := range next {
			left := layer[2*i]
			right := zeros[level]
			if 2*i+1 < len(layer) {
				right = layer[2*i+1]
			}
			next[i] = strategy.HashNode(left, right)
		}
		layer = next
		pos >>= 1
	}
	root := zeros[depth]
	if len(layer) > 0 {
		root = layer[0]
	}
	return &Path{Index: index, Siblings: siblings}, bytes.Clone(root), nil
}
