package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/zkmixer/zkmixer/types"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// commitmentKey builds the commitment log key: pool ID followed by the
// big-endian leaf index, so iteration order equals insertion order.
func commitmentKey(pid types.HexBytes, index uint64) []byte {
	key := make([]byte, len(pid)+8)
	copy(key, pid)
	binary.BigEndian.PutUint64(key[len(pid):], index)
	return key
}

// Commitment retrieves a single commitment log entry by leaf index.
func (s *Storage) Commitment(pid types.HexBytes, index uint64) (*types.CommitmentRecord, error) {
	rec := &types.CommitmentRecord{}
	if err := s.getArtifact(commitmentPrefix, commitmentKey(pid, index), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Commitments returns the commitment log of a pool starting at leaf index
// from, in insertion order. A maxCount of zero or less means no limit.
func (s *Storage) Commitments(pid types.HexBytes, from uint64, maxCount int) ([]*types.CommitmentRecord, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, commitmentPrefix)
	var res []*types.CommitmentRecord
	var decodeErr error
	if err := rd.Iterate(pid, func(k, v []byte) bool {
		if len(k) != 8 || binary.BigEndian.Uint64(k) < from {
			return true
		}
		if maxCount > 0 && len(res) >= maxCount {
			return false
		}
		rec := &types.CommitmentRecord{}
		if decodeErr = decodeArtifact(v, rec); decodeErr != nil {
			return false
		}
		res = append(res, rec)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate commitments: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode commitment: %w", decodeErr)
	}
	return res, nil
}

// CommitmentLeaves returns the full ordered leaf list of a pool, the input
// wallets need to rebuild a membership path off-chain.
func (s *Storage) CommitmentLeaves(pid types.HexBytes) ([][]byte, error) {
	recs, err := s.Commitments(pid, 0, 0)
	if err != nil {
		return nil, err
	}
	leaves := make([][]byte, len(recs))
	for i, rec := range recs {
		leaves[i] = rec.Commitment
	}
	return leaves, nil
}
