package hash

import (
	"crypto/sha256"
	"math/big"

	bn254mimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	multiposeidon "github.com/zkmixer/zkmixer/crypto/hash/poseidon"
	"github.com/zkmixer/zkmixer/util"
)

// Note scheme domain tags for the byte-oriented strategy.
const (
	sha256DomainCommitment = 0x02
	sha256DomainNullifier  = 0x03
)

// NoteCommitment computes the deposit commitment binding a nullifier and a
// secret under the given strategy. Off-chain wallets compute the same value
// when building a deposit; withdrawal circuits recompute it from the
// private witness.
func NoteCommitment(s Strategy, nullifier, secret []byte) ([]byte, error) {
	switch s.(type) {
	case SHA256:
		h := sha256.New()
		h.Write([]byte{sha256DomainCommitment})
		h.Write(nullifier)
		h.Write(secret)
		return h.Sum(nil), nil
	case MiMC:
		h := bn254mimc.NewMiMC()
		_, _ = h.Write(fieldBytes(nullifier))
		_, _ = h.Write(fieldBytes(secret))
		return h.Sum(nil), nil
	case Poseidon:
		n := util.BigToFF(new(big.Int).SetBytes(nullifier))
		k := util.BigToFF(new(big.Int).SetBytes(secret))
		sum, err := multiposeidon.MultiPoseidon(n, k)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 32)
		sum.FillBytes(out)
		return out, nil
	}
	return nil, errUnknownStrategy(s)
}

// NullifierHash computes the public nullifier hash revealed at withdrawal
// time for the given strategy.
func NullifierHash(s Strategy, nullifier []byte) ([]byte, error) {
	switch s.(type) {
	case SHA256:
		h := sha256.New()
		h.Write([]byte{sha256DomainNullifier})
		h.Write(nullifier)
		return h.Sum(nil), nil
	case MiMC:
		h := bn254mimc.NewMiMC()
		_, _ = h.Write(fieldBytes(nullifier))
		return h.Sum(nil), nil
	case Poseidon:
		n := util.BigToFF(new(big.Int).SetBytes(nullifier))
		sum, err := multiposeidon.MultiPoseidon(n)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 32)
		sum.FillBytes(out)
		return out, nil
	}
	return nil, errUnknownStrategy(s)
}
