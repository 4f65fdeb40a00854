package withdraw

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/crypto/hash"
	"github.com/zkmixer/zkmixer/merkle"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

// Assignment builds the full witness for a withdrawal proof. The caller
// provides the note opening and the membership path of its commitment,
// typically rebuilt with merkle.BuildPath from the public commitment log.
func Assignment(root, nullifier, secret []byte, recipient common.Address,
	fee uint64, path *merkle.Path,
) (*Circuit, error) {
	if path == nil || len(path.Siblings) != types.MerkleTreeDepth {
		return nil, fmt.Errorf("membership path must have %d siblings", types.MerkleTreeDepth)
	}
	nullifierHash, err := hash.NullifierHash(hash.MiMC{}, nullifier)
	if err != nil {
		return nil, err
	}
	c := &Circuit{
		Root:          util.BigToFF(new(big.Int).SetBytes(root)),
		NullifierHash: new(big.Int).SetBytes(nullifierHash),
		Recipient:     new(big.Int).SetBytes(recipient.Bytes()),
		Fee:           fee,
		Nullifier:     util.BigToFF(new(big.Int).SetBytes(nullifier)),
		Secret:        util.BigToFF(new(big.Int).SetBytes(secret)),
	}
	for i, sibling := range path.Siblings {
		c.Siblings[i] = util.BigToFF(new(big.Int).SetBytes(sibling))
		c.PathBits[i] = path.Index >> i & 1
	}
	return c, nil
}

// Compile compiles the circuit into an R1CS constraint system.
func Compile() (constraint.ConstraintSystem, error) {
	return frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &Circuit{})
}

// Setup compiles the circuit and runs the Groth16 setup, returning the
// constraint system and both keys.
func Setup() (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	ccs, err := Compile()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("compile circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return ccs, pk, vk, nil
}

// Prove generates a Groth16 proof for the given assignment and returns its
// serialized form, ready to submit with a withdrawal request.
func Prove(ccs constraint.ConstraintSystem, pk groth16.ProvingKey, assignment *Circuit) ([]byte, error) {
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("build witness: %w", err)
	}
	proof, err := groth16.Prove(ccs, pk, w)
	if err != nil {
		return nil, fmt.Errorf("groth16 prove: %w", err)
	}
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize proof: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalVerifyingKey serializes a verifying key for storage in a pool
// record.
func MarshalVerifyingKey(vk groth16.VerifyingKey) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := vk.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize verifying key: %w", err)
	}
	return buf.Bytes(), nil
}
