// Package merkle implements the commitment accumulator: an append-only
// Merkle tree of fixed depth that keeps only one "filled subtree" hash per
// level, so every insertion costs exactly depth node hashes and the full
// tree is never materialized. Empty positions use a chain of publicly known
// placeholder hashes, so an empty tree has a deterministic root.
//
// The tree logic is generic over a hash.Strategy; the same code serves the
// byte-oriented and the algebraic strategies.
package merkle

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zkmixer/zkmixer/crypto/hash"
)

// ErrTreeFull is returned by Insert once the accumulator holds 2^depth
// leaves.
var ErrTreeFull = errors.New("merkle: tree is full")

// Accumulator is the incremental Merkle tree. It is not safe for concurrent
// use; the controller serializes operations per pool.
type Accumulator struct {
	strategy hash.Strategy
	depth    int
	zeros    [][]byte // zeros[i] is the hash of an empty subtree at level i
	frontier [][]byte // filled-subtree hash per level
	next     uint64
	root     []byte
}

// New creates an empty accumulator of the given depth.
func New(strategy hash.Strategy, depth int) (*Accumulator, error) {
	if depth < 1 || depth > 32 {
		return nil, fmt.Errorf("merkle: invalid depth %d", depth)
	}
	zeros := Zeros(strategy, depth)
	frontier := make([][]byte, depth)
	for i := range frontier {
		frontier[i] = zeros[i]
	}
	return &Accumulator{
		strategy: strategy,
		depth:    depth,
		zeros:    zeros,
		frontier: frontier,
		root:     zeros[depth],
	}, nil
}

// Restore rebuilds an accumulator from its persisted frontier state.
func Restore(strategy hash.Strategy, depth int, frontier [][]byte, next uint64, root []byte) (*Accumulator, error) {
	a, err := New(strategy, depth)
	if err != nil {
		return nil, err
	}
	if len(frontier) != depth {
		return nil, fmt.Errorf("merkle: frontier length %d, want %d", len(frontier), depth)
	}
	if next > a.Capacity() {
		return nil, fmt.Errorf("merkle: leaf count %d beyond capacity", next)
	}
	for i, f := range frontier {
		a.frontier[i] = bytes.Clone(f)
	}
	a.next = next
	a.root = bytes.Clone(root)
	return a, nil
}

// Capacity returns the maximum number of leaves.
func (a *Accumulator) Capacity() uint64 {
	return 1 << a.depth
}

// Depth returns the tree depth.
func (a *Accumulator) Depth() int {
	return a.depth
}

// Root returns the current root.
func (a *Accumulator) Root() []byte {
	return bytes.Clone(a.root)
}

// NextIndex returns the index the next insertion will occupy, which equals
// the number of leaves inserted so far.
func (a *Accumulator) NextIndex() uint64 {
	return a.next
}

// Frontier returns a copy of the filled-subtree hashes for persistence.
func (a *Accumulator) Frontier() [][]byte {
	out := make([][]byte, len(a.frontier))
	for i, f := range a.frontier {
		out[i] = bytes.Clone(f)
	}
	return out
}

// Insert appends a leaf and returns its index and the new root. It fails
// with ErrTreeFull once the capacity is reached; nothing else can fail.
func (a *Accumulator) Insert(leaf []byte) (uint64, []byte, error) {
	if a.next >= a.Capacity() {
		return 0, nil, ErrTreeFull
	}
	index := a.next
	cur := a.strategy.HashLeaf(leaf)
	for level := 0; level < a.depth; level++ {
		if index>>level&1 == 0 {
			// left child: remember it and pair with the empty
			// subtree placeholder on the right
			a.frontier[level] = cur
			cur = a.strategy.HashNode(cur, a.zeros[level])
		} else {
			cur = a.strategy.HashNode(a.frontier[level], cur)
		}
	}
	a.root = cur
	a.next++
	return a.next - 1, bytes.Clone(cur), nil
}

// Zeros returns the chain of empty-subtree hashes for the given strategy:
// zeros[0] is the 32 byte placeholder leaf and zeros[i+1] =
// HashNode(zeros[i], zeros[i]), up to and including the empty root at
// zeros[depth].
func Zeros(strategy hash.Strategy, depth int) [][]byte {
	zeros := make([][]byte, depth+1)
	zeros[0] = hash.EmptyLeaf()
	for i := 1; i <= depth; i++ {
		zeros[i] = strategy.HashNode(zeros[i-1], zeros[i-1])
	}
	return zeros
}
