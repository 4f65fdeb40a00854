// Package ethereum provides secp256k1 signing keys with Ethereum-style
// address derivation, used to authenticate authority-signed admin
// operations.
package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/zkmixer/zkmixer/types"
)

// SignatureLength is the size in bytes of an ECDSA signature with the
// recovery id appended.
const SignatureLength = 65

// SignKeys holds an ECDSA secp256k1 key pair.
type SignKeys struct {
	Public  ecdsa.PublicKey
	Private ecdsa.PrivateKey
}

// NewSignKeys creates an empty SignKeys. Call Generate or AddHexKey to
// populate it.
func NewSignKeys() *SignKeys {
	return &SignKeys{}
}

// Generate creates a fresh random key pair.
func (k *SignKeys) Generate() error {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// AddHexKey imports a private key in hexadecimal format.
func (k *SignKeys) AddHexKey(privHex string) error {
	key, err := ethcrypto.HexToECDSA(trimHex(privHex))
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// HexString returns the compressed public key and the private key as
// hexadecimal strings.
func (k *SignKeys) HexString() (string, string) {
	pubHex := hex.EncodeToString(k.PublicKey())
	privHex := hex.EncodeToString(ethcrypto.FromECDSA(&k.Private))
	return pubHex, privHex
}

// PublicKey returns the compressed public key (33 bytes).
func (k *SignKeys) PublicKey() types.HexBytes {
	return ethcrypto.CompressPubkey(&k.Public)
}

// PrivateKey returns the private key bytes.
func (k *SignKeys) PrivateKey() types.HexBytes {
	return ethcrypto.FromECDSA(&k.Private)
}

// Address returns the Ethereum address derived from the public key.
func (k *SignKeys) Address() common.Address {
	return ethcrypto.PubkeyToAddress(k.Public)
}

// AddressString returns the Ethereum address as a checksummed string.
func (k *SignKeys) AddressString() string {
	return k.Address().String()
}

// SignEthereum signs the message with the Ethereum personal-message prefix
// and returns the 65 byte signature (r || s || v, with v in {0,1}).
func (k *SignKeys) SignEthereum(message []byte) ([]byte, error) {
	if k.Private.D == nil {
		return nil, fmt.Errorf("no private key available")
	}
	return ethcrypto.Sign(Hash(message), &k.Private)
}

// Hash returns the Keccak256 digest of the message wrapped with the
// Ethereum personal-message prefix.
func Hash(message []byte) []byte {
	return HashRaw(fmt.Appendf(nil, "\x19Ethereum Signed Message:\n%d%s", len(message), message))
}

// HashRaw computes the Keccak256 digest of data without any prefix.
func HashRaw(data []byte) []byte {
	return ethcrypto.Keccak256(data)
}

// AddrFromPublicKey derives the Ethereum address from a compressed or
// uncompressed public key.
func AddrFromPublicKey(pub []byte) (common.Address, error) {
	var key *ecdsa.PublicKey
	var err error
	switch len(pub) {
	case 33:
		key, err = ethcrypto.DecompressPubkey(pub)
	default:
		key, err = ethcrypto.UnmarshalPubkey(pub)
	}
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*key), nil
}

// AddrFromSignature recovers the address that signed the message with
// SignEthereum.
func AddrFromSignature(message, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(signature))
	}
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pub, err := ethcrypto.SigToPub(Hash(message), sig)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
