package hash

import (
	"crypto/sha256"

	"github.com/zkmixer/zkmixer/types"
)

// Domain separation tags, so a leaf hash can never be reinterpreted as an
// inner node hash (and vice versa).
const (
	sha256DomainLeaf = 0x00
	sha256DomainNode = 0x01
)

// SHA256 is the byte-oriented, collision-resistant strategy.
type SHA256 struct{}

// Type returns the strategy identifier.
func (SHA256) Type() types.HashType { return types.HashTypeSHA256 }

// HashLeaf hashes a commitment with the leaf domain tag.
func (SHA256) HashLeaf(leaf []byte) []byte {
	h := sha256.New()
	h.Write([]byte{sha256DomainLeaf})
	h.Write(leaf)
	return h.Sum(nil)
}

// HashNode hashes two child nodes with the node domain tag.
func (SHA256) HashNode(left, right []byte) []byte {
	h := sha256.New()
	h.Write([]byte{sha256DomainNode})
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}
