package storage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zkmixer/zkmixer/types"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// Pool retrieves a pool by its ID.
// It returns nil data and ErrNotFound if the pool does not exist.
func (s *Storage) Pool(pid types.HexBytes) (*types.MixerPool, error) {
	p := &types.MixerPool{}
	if err := s.getArtifact(poolPrefix, pid, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePool stores a new pool. It returns ErrPoolExists if the ID is
// already taken.
func (s *Storage) CreatePool(pool *types.MixerPool) error {
	if pool == nil {
		return fmt.Errorf("nil pool data")
	}
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	if _, err := s.Pool(pool.ID); err == nil {
		return ErrPoolExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.setArtifact(poolPrefix, pool.ID, pool)
}

// ListPools returns all pools, in key order.
func (s *Storage) ListPools() ([]*types.MixerPool, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, poolPrefix)
	var pools []*types.MixerPool
	var decodeErr error
	if err := rd.Iterate(nil, func(_, v []byte) bool {
		p := &types.MixerPool{}
		if decodeErr = decodeArtifact(v, p); decodeErr != nil {
			return false
		}
		pools = append(pools, p)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate pools: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode pool: %w", decodeErr)
	}
	return pools, nil
}

// DeletePool removes a pool record together with its commitment log, root
// history and withdrawal log. Spent nullifiers are deliberately kept: a
// nullifier hash must never become spendable again, even across a pool
// close and re-create cycle.
func (s *Storage) DeletePool(pid types.HexBytes) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	if _, err := s.Pool(pid); err != nil {
		return err
	}
	wTx := s.db.WriteTx()
	if err := prefixeddb.NewPrefixedWriteTx(wTx, poolPrefix).Delete(pid); err != nil {
		wTx.Discard()
		return err
	}
	for _, prefix := range [][]byte{commitmentPrefix, rootPrefix, withdrawalPrefix} {
		var keys [][]byte
		rd := prefixeddb.NewPrefixedReader(s.db, prefix)
		if err := rd.Iterate(pid, func(k, _ []byte) bool {
			keys = append(keys, slices.Concat(pid, k))
			return true
		}); err != nil {
			wTx.Discard()
			return fmt.Errorf("iterate pool artifacts: %w", err)
		}
		pTx := prefixeddb.NewPrefixedWriteTx(wTx, prefix)
		for _, k := range keys {
			if err := pTx.Delete(k); err != nil {
				wTx.Discard()
				return err
			}
		}
	}
	return wTx.Commit()
}
