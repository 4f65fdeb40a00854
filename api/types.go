package api

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/types"
)

// InitializeRequest establishes the global configuration.
type InitializeRequest struct {
	Authority       common.Address `json:"authority"`
	FeeCollector    common.Address `json:"feeCollector"`
	FeeBPS          uint64         `json:"feeBPS"`
	MinDelaySeconds uint64         `json:"minDelaySeconds"`
}

// AdminRequest carries the authority signature of a parameterless admin
// operation (pause, unpause).
type AdminRequest struct {
	Signature types.HexBytes `json:"signature"`
}

// AuthorityRequest transfers the authority to a new address.
type AuthorityRequest struct {
	NewAuthority common.Address `json:"newAuthority"`
	Signature    types.HexBytes `json:"signature"`
}

// FeeCollectorRequest replaces the fee collector address.
type FeeCollectorRequest struct {
	NewFeeCollector common.Address `json:"newFeeCollector"`
	Signature       types.HexBytes `json:"signature"`
}

// NewPoolRequest creates a denomination pool. The verifying key format
// depends on the proving system: gnark-serialized for native, snarkjs JSON
// for circom.
type NewPoolRequest struct {
	Asset         common.Address      `json:"asset"`
	Denomination  uint64              `json:"denomination"`
	ChainID       uint32              `json:"chainId"`
	HashType      types.HashType      `json:"hashType"`
	ProvingSystem types.ProvingSystem `json:"provingSystem"`
	VerifyingKey  types.HexBytes      `json:"verifyingKey"`
	Signature     types.HexBytes      `json:"signature"`
}

// NewDepositRequest submits a commitment with its attached value.
type NewDepositRequest struct {
	Commitment    types.HexBytes `json:"commitment"`
	Amount        uint64         `json:"amount"`
	EncryptedNote types.HexBytes `json:"encryptedNote,omitempty"`
}

// NewDepositResponse returns the assigned leaf index and the new root.
type NewDepositResponse struct {
	LeafIndex uint64         `json:"leafIndex"`
	Root      types.HexBytes `json:"root"`
}

// NewWithdrawalRequest spends a note. The fee is not part of the request;
// the server computes it from the pool denomination and the configured
// basis points.
type NewWithdrawalRequest struct {
	Root          types.HexBytes `json:"root"`
	NullifierHash types.HexBytes `json:"nullifierHash"`
	Recipient     common.Address `json:"recipient"`
	Proof         types.HexBytes `json:"proof"`
}

// NewWithdrawalResponse returns the net amount paid to the recipient and
// the fee paid to the collector.
type NewWithdrawalResponse struct {
	Amount uint64 `json:"amount"`
	Fee    uint64 `json:"fee"`
}

// PoolsResponse lists pool records.
type PoolsResponse struct {
	Pools []*types.MixerPool `json:"pools"`
}

// CommitmentsResponse is a slice of the append-only commitment event log.
type CommitmentsResponse struct {
	Commitments []*types.CommitmentRecord `json:"commitments"`
}

// WithdrawalsResponse is the withdrawal event log of a pool.
type WithdrawalsResponse struct {
	Withdrawals []*types.WithdrawalRecord `json:"withdrawals"`
}
