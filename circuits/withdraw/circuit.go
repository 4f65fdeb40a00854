// Package withdraw implements the built-in withdrawal circuit for pools
// using the mimc hash strategy with the native proving system. The circuit
// proves knowledge of a note (nullifier, secret) whose commitment is a
// member of the commitment accumulator at the claimed root, and binds the
// revealed nullifier hash, the recipient and the fee into the proof so none
// of them can be swapped after proving.
package withdraw

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/zkmixer/zkmixer/types"
)

// Circuit is the withdrawal statement. The public fields are declared in
// the exact order the verifier reconstructs them: root, nullifier hash,
// recipient, fee.
type Circuit struct {
	Root          frontend.Variable `gnark:",public"`
	NullifierHash frontend.Variable `gnark:",public"`
	Recipient     frontend.Variable `gnark:",public"`
	Fee           frontend.Variable `gnark:",public"`
	// private note opening and membership path
	Nullifier frontend.Variable
	Secret    frontend.Variable
	Siblings  [types.MerkleTreeDepth]frontend.Variable
	PathBits  [types.MerkleTreeDepth]frontend.Variable
}

func (c *Circuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	// commitment = MiMC(nullifier, secret)
	h.Write(c.Nullifier, c.Secret)
	commitment := h.Sum()

	// the revealed nullifier hash opens to the same nullifier
	h.Reset()
	h.Write(c.Nullifier)
	api.AssertIsEqual(c.NullifierHash, h.Sum())

	// walk the membership path from the commitment up to the root;
	// PathBits[i] is 1 when the running node is the right child
	cur := commitment
	for i := 0; i < types.MerkleTreeDepth; i++ {
		api.AssertIsBoolean(c.PathBits[i])
		left := api.Select(c.PathBits[i], c.Siblings[i], cur)
		right := api.Select(c.PathBits[i], cur, c.Siblings[i])
		h.Reset()
		h.Write(left, right)
		cur = h.Sum()
	}
	api.AssertIsEqual(c.Root, cur)

	// recipient and fee take part in no other constraint; square them so
	// a tampered proof cannot keep the original proof valid
	api.Mul(c.Recipient, c.Recipient)
	api.Mul(c.Fee, c.Fee)
	return nil
}
