package storage

import (
	"errors"
	"slices"

	"github.com/zkmixer/zkmixer/types"
)

// nullifierKey builds the spent-set key: pool ID followed by the nullifier
// hash. Scoping by pool keeps identical hashes in different pools distinct.
func nullifierKey(pid, nullifierHash types.HexBytes) []byte {
	return slices.Concat(pid, nullifierHash)
}

// Nullifier retrieves the spend record of a nullifier hash, or ErrNotFound
// if it has not been spent.
func (s *Storage) Nullifier(pid, nullifierHash types.HexBytes) (*types.NullifierEntry, error) {
	entry := &types.NullifierEntry{}
	if err := s.getArtifact(nullifierPrefix, nullifierKey(pid, nullifierHash), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// IsSpent reports whether a nullifier hash has been spent in the pool. This
// is the advisory pre-check; the authoritative check-and-insert happens
// inside CommitWithdrawal.
func (s *Storage) IsSpent(pid, nullifierHash types.HexBytes) (bool, error) {
	if _, err := s.Nullifier(pid, nullifierHash); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
