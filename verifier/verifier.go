// Package verifier checks withdrawal proofs against server-derived public
// inputs. Two proving systems are supported: native gnark-serialized
// Groth16 proofs, and circom proofs in the snarkjs JSON format. Both verify
// against the verifying key stored in the pool record, and both fail
// closed: any parse or deserialization problem is a rejection.
package verifier

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

var (
	// ErrInvalidProof is returned when a proof does not verify, or cannot
	// even be deserialized.
	ErrInvalidProof = errors.New("invalid proof")
	// ErrPublicInputMismatch is returned when the public signals carried
	// by a circom proof differ from the server-derived ones.
	ErrPublicInputMismatch = errors.New("public inputs do not match")
)

// PublicInputs is the ordered public statement of a withdrawal proof. The
// server derives it from the request and the pool state; the prover never
// gets to choose it.
type PublicInputs struct {
	Root          *big.Int
	NullifierHash *big.Int
	Recipient     common.Address
	Fee           uint64
}

// NewPublicInputs reduces the raw root and nullifier hash into the BN254
// scalar field and assembles the statement.
func NewPublicInputs(root, nullifierHash []byte, recipient common.Address, fee uint64) *PublicInputs {
	return &PublicInputs{
		Root:          util.BigToFF(new(big.Int).SetBytes(root)),
		NullifierHash: util.BigToFF(new(big.Int).SetBytes(nullifierHash)),
		Recipient:     recipient,
		Fee:           fee,
	}
}

// Vector returns the statement in wire order: root, nullifier hash,
// recipient, fee.
func (pi *PublicInputs) Vector() []*big.Int {
	return []*big.Int{
		new(big.Int).Set(pi.Root),
		new(big.Int).Set(pi.NullifierHash),
		new(big.Int).SetBytes(pi.Recipient.Bytes()),
		new(big.Int).SetUint64(pi.Fee),
	}
}

// Verifier checks a withdrawal proof against the expected statement using
// the pool's verifying key.
type Verifier interface {
	// Verify returns nil only for a valid proof of exactly the given
	// statement.
	Verify(verifyingKey, proof []byte, inputs *PublicInputs) error
}

// ForSystem returns the verifier of the given proving system.
func ForSystem(ps types.ProvingSystem) (Verifier, error) {
	switch ps {
	case types.ProvingSystemNative:
		return Native{}, nil
	case types.ProvingSystemCircom:
		return Circom{}, nil
	}
	return nil, fmt.Errorf("unknown proving system %q", ps)
}
