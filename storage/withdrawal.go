package storage

import (
	"fmt"
	"slices"

	"github.com/zkmixer/zkmixer/types"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// withdrawalKey builds the withdrawal log key: pool ID followed by the
// nullifier hash, which is unique per withdrawal.
func withdrawalKey(pid, nullifierHash types.HexBytes) []byte {
	return slices.Concat(pid, nullifierHash)
}

// Withdrawal retrieves the withdrawal record spending a nullifier hash.
func (s *Storage) Withdrawal(pid, nullifierHash types.HexBytes) (*types.WithdrawalRecord, error) {
	rec := &types.WithdrawalRecord{}
	if err := s.getArtifact(withdrawalPrefix, withdrawalKey(pid, nullifierHash), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Withdrawals returns the withdrawal log of a pool. A maxCount of zero or
// less means no limit.
func (s *Storage) Withdrawals(pid types.HexBytes, maxCount int) ([]*types.WithdrawalRecord, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, withdrawalPrefix)
	var res []*types.WithdrawalRecord
	var decodeErr error
	if err := rd.Iterate(pid, func(_, v []byte) bool {
		if maxCount > 0 && len(res) >= maxCount {
			return false
		}
		rec := &types.WithdrawalRecord{}
		if decodeErr = decodeArtifact(v, rec); decodeErr != nil {
			return false
		}
		res = append(res, rec)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate withdrawals: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode withdrawal: %w", decodeErr)
	}
	return res, nil
}
