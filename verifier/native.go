package verifier

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/zkmixer/zkmixer/circuits/withdraw"
)

// Native verifies gnark-serialized Groth16 proofs over BN254.
type Native struct{}

// Verify deserializes the verifying key and the proof, rebuilds the public
// witness from the server-derived statement, and runs the Groth16 pairing
// check.
func (Native) Verify(verifyingKey, proof []byte, inputs *PublicInputs) error {
	if inputs == nil {
		return fmt.Errorf("%w: nil public inputs", ErrInvalidProof)
	}
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(verifyingKey)); err != nil {
		return fmt.Errorf("%w: read verifying key: %v", ErrInvalidProof, err)
	}
	p := groth16.NewProof(ecc.BN254)
	if _, err := p.ReadFrom(bytes.NewReader(proof)); err != nil {
		return fmt.Errorf("%w: read proof: %v", ErrInvalidProof, err)
	}
	assignment := &withdraw.Circuit{
		Root:          inputs.Root,
		NullifierHash: inputs.NullifierHash,
		Recipient:     new(big.Int).SetBytes(inputs.Recipient.Bytes()),
		Fee:           inputs.Fee,
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("%w: build public witness: %v", ErrInvalidProof, err)
	}
	if err := groth16.Verify(p, vk, w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	return nil
}
