package hash

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	qt "github.com/frankban/quicktest"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

func TestFromType(t *testing.T) {
	c := qt.New(t)

	for _, ht := range []types.HashType{types.HashTypeSHA256, types.HashTypeMiMC, types.HashTypePoseidon} {
		s, err := FromType(ht)
		c.Assert(err, qt.IsNil)
		c.Assert(s.Type(), qt.Equals, ht)
	}
	_, err := FromType("keccak")
	c.Assert(err, qt.IsNotNil)
}

func TestDomainSeparation(t *testing.T) {
	c := qt.New(t)

	// A 32 byte value hashed as a leaf must never collide with the same
	// value hashed as half of a node pair.
	v := util.RandomBytes(32)
	s := SHA256{}
	c.Assert(s.HashLeaf(v), qt.Not(qt.DeepEquals), s.HashNode(v[:16], v[16:]))

	commitment, err := NoteCommitment(s, v[:16], v[16:])
	c.Assert(err, qt.IsNil)
	nh, err := NullifierHash(s, v[:16])
	c.Assert(err, qt.IsNil)
	c.Assert(commitment, qt.Not(qt.DeepEquals), nh)
}

func TestAlgebraicStrategiesStayInField(t *testing.T) {
	c := qt.New(t)

	// All outputs must be canonical 32 byte field elements, even for
	// inputs above the modulus.
	over := make([]byte, 32)
	for i := range over {
		over[i] = 0xff
	}
	for _, s := range []Strategy{MiMC{}, Poseidon{}} {
		node := s.HashNode(over, over)
		c.Assert(node, qt.HasLen, 32)
		c.Assert(new(big.Int).SetBytes(node).Cmp(fr.Modulus()), qt.Equals, -1)

		leaf := s.HashLeaf(over)
		c.Assert(leaf, qt.HasLen, 32)
		c.Assert(new(big.Int).SetBytes(leaf).Cmp(fr.Modulus()), qt.Equals, -1)
	}
}

func TestCanonicalEncoding(t *testing.T) {
	c := qt.New(t)

	over := new(big.Int).Add(fr.Modulus(), big.NewInt(1))
	alias := make([]byte, 32)
	over.FillBytes(alias)
	reduced := make([]byte, 32)
	new(big.Int).Mod(over, fr.Modulus()).FillBytes(reduced)

	for _, s := range []Strategy{MiMC{}, Poseidon{}} {
		c.Assert(Canonical(s, reduced), qt.IsTrue)
		c.Assert(Canonical(s, alias), qt.IsFalse)
		// the modulus itself is not a canonical element either
		exact := make([]byte, 32)
		fr.Modulus().FillBytes(exact)
		c.Assert(Canonical(s, exact), qt.IsFalse)
	}
	// the byte-oriented strategy has no field to reduce into
	c.Assert(Canonical(SHA256{}, alias), qt.IsTrue)
}

func TestNoteCommitmentDeterminism(t *testing.T) {
	c := qt.New(t)

	nullifier := util.RandomBytes(31)
	secret := util.RandomBytes(31)
	for _, ht := range []types.HashType{types.HashTypeSHA256, types.HashTypeMiMC, types.HashTypePoseidon} {
		s, err := FromType(ht)
		c.Assert(err, qt.IsNil)

		a, err := NoteCommitment(s, nullifier, secret)
		c.Assert(err, qt.IsNil)
		b, err := NoteCommitment(s, nullifier, secret)
		c.Assert(err, qt.IsNil)
		c.Assert(a, qt.DeepEquals, b, qt.Commentf("strategy %s", ht))

		// a different secret yields a different commitment
		other, err := NoteCommitment(s, nullifier, util.RandomBytes(31))
		c.Assert(err, qt.IsNil)
		c.Assert(a, qt.Not(qt.DeepEquals), other)
	}
}
