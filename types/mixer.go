package types

import (
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// HashType selects the hash strategy of a pool's commitment accumulator.
type HashType string

const (
	// HashTypeSHA256 is the byte-oriented, domain-separated hash strategy.
	HashTypeSHA256 HashType = "sha256"
	// HashTypeMiMC is the circuit-native algebraic hash over the BN254
	// scalar field, proven by the built-in withdrawal circuit.
	HashTypeMiMC HashType = "mimc"
	// HashTypePoseidon is the algebraic hash used by circom tooling.
	HashTypePoseidon HashType = "poseidon"
)

// ProvingSystem selects the wire format of withdrawal proofs for a pool.
type ProvingSystem string

const (
	// ProvingSystemNative expects gnark-serialized Groth16 proofs.
	ProvingSystemNative ProvingSystem = "native"
	// ProvingSystemCircom expects snarkjs JSON proofs.
	ProvingSystemCircom ProvingSystem = "circom"
)

// GlobalConfig is the process-wide mixer configuration. It is created once
// by Initialize and mutated only by authority-signed admin operations.
type GlobalConfig struct {
	Authority    common.Address `json:"authority"    cbor:"0,keyasint"`
	FeeCollector common.Address `json:"feeCollector" cbor:"1,keyasint"`
	Paused       bool           `json:"paused"       cbor:"2,keyasint"`
	FeeBPS       uint64         `json:"feeBPS"       cbor:"3,keyasint"`
	MinDelay     time.Duration  `json:"minDelay"     cbor:"4,keyasint"`
	CreatedAt    time.Time      `json:"createdAt"    cbor:"5,keyasint"`
}

// MixerPool holds the per-denomination pool state. The accumulator is
// persisted as its compressed frontier, not the full leaf contents.
type MixerPool struct {
	ID               HexBytes      `json:"id"               cbor:"0,keyasint"`
	Denomination     uint64        `json:"denomination"     cbor:"1,keyasint"`
	Depth            int           `json:"depth"            cbor:"2,keyasint"`
	HashType         HashType      `json:"hashType"         cbor:"3,keyasint"`
	ProvingSystem    ProvingSystem `json:"provingSystem"    cbor:"4,keyasint"`
	VerifyingKey     HexBytes      `json:"-"                cbor:"5,keyasint"`
	Root             HexBytes      `json:"root"             cbor:"6,keyasint"`
	Frontier         []HexBytes    `json:"-"                cbor:"7,keyasint"`
	NextLeafIndex    uint64        `json:"nextLeafIndex"    cbor:"8,keyasint"`
	TotalDeposits    uint64        `json:"totalDeposits"    cbor:"9,keyasint"`
	TotalWithdrawals uint64        `json:"totalWithdrawals" cbor:"10,keyasint"`
	Balance          uint64        `json:"balance"          cbor:"11,keyasint"`
	RootHistoryHead  uint64        `json:"-"                cbor:"12,keyasint"`
	CreatedAt        time.Time     `json:"createdAt"        cbor:"13,keyasint"`
}

func (p *MixerPool) String() string {
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// CommitmentRecord is an append-only entry of the deposit event log. It
// never references any user identity.
type CommitmentRecord struct {
	PoolID        HexBytes  `json:"poolId"                  cbor:"0,keyasint"`
	LeafIndex     uint64    `json:"leafIndex"               cbor:"1,keyasint"`
	Commitment    HexBytes  `json:"commitment"              cbor:"2,keyasint"`
	EncryptedNote HexBytes  `json:"encryptedNote,omitempty" cbor:"3,keyasint,omitempty"`
	Timestamp     time.Time `json:"timestamp"               cbor:"4,keyasint"`
}

// RootEntry is one slot of a pool's root history ring. Timestamp records
// when the insertion that produced this root happened; the withdrawal
// time-lock is measured against it.
type RootEntry struct {
	Root      HexBytes  `json:"root"      cbor:"0,keyasint"`
	LeafIndex uint64    `json:"leafIndex" cbor:"1,keyasint"`
	Timestamp time.Time `json:"timestamp" cbor:"2,keyasint"`
}

// NullifierEntry marks a nullifier hash as spent. Entries are created
// exactly once and never removed.
type NullifierEntry struct {
	PoolID        HexBytes  `json:"poolId"        cbor:"0,keyasint"`
	NullifierHash HexBytes  `json:"nullifierHash" cbor:"1,keyasint"`
	SpentAt       time.Time `json:"spentAt"       cbor:"2,keyasint"`
}

// WithdrawalRecord is an append-only entry of the withdrawal event log.
type WithdrawalRecord struct {
	PoolID        HexBytes       `json:"poolId"        cbor:"0,keyasint"`
	NullifierHash HexBytes       `json:"nullifierHash" cbor:"1,keyasint"`
	Recipient     common.Address `json:"recipient"     cbor:"2,keyasint"`
	Fee           uint64         `json:"fee"           cbor:"3,keyasint"`
	Amount        uint64         `json:"amount"        cbor:"4,keyasint"`
	Root          HexBytes       `json:"root"          cbor:"5,keyasint"`
	Timestamp     time.Time      `json:"timestamp"     cbor:"6,keyasint"`
}
