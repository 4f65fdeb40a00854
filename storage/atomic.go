package storage

import (
	"errors"
	"fmt"

	"github.com/zkmixer/zkmixer/types"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// CommitDeposit persists the outcome of a deposit in a single write
// transaction: the updated pool record, the new commitment log entry and
// the overwritten root history slot. The credit callback runs last, before
// the commit; if it fails, nothing is persisted.
func (s *Storage) CommitDeposit(pool *types.MixerPool, rec *types.CommitmentRecord,
	entry *types.RootEntry, credit func() error,
) error {
	if pool == nil || rec == nil || entry == nil {
		return fmt.Errorf("nil deposit data")
	}
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	wTx := s.db.WriteTx()
	if err := setArtifactTx(wTx, poolPrefix, pool.ID, pool); err != nil {
		wTx.Discard()
		return fmt.Errorf("store pool: %w", err)
	}
	if err := setArtifactTx(wTx, commitmentPrefix, commitmentKey(pool.ID, rec.LeafIndex), rec); err != nil {
		wTx.Discard()
		return fmt.Errorf("store commitment: %w", err)
	}
	if err := setArtifactTx(wTx, rootPrefix, rootSlotKey(pool.ID, pool.RootHistoryHead), entry); err != nil {
		wTx.Discard()
		return fmt.Errorf("store root entry: %w", err)
	}
	if credit != nil {
		if err := credit(); err != nil {
			wTx.Discard()
			return err
		}
	}
	return wTx.Commit()
}

// CommitWithdrawal persists the outcome of a withdrawal in a single write
// transaction: the spent nullifier, the updated pool record and the
// withdrawal log entry. The nullifier check-and-insert happens here, under
// the global lock and inside the transaction, so it is the last guard
// against a double spend regardless of what the caller checked before. The
// transfer callback runs after that guard and before the commit; if it
// fails, the nullifier stays unspent.
func (s *Storage) CommitWithdrawal(pool *types.MixerPool, entry *types.NullifierEntry,
	rec *types.WithdrawalRecord, transfer func() error,
) error {
	if pool == nil || entry == nil || rec == nil {
		return fmt.Errorf("nil withdrawal data")
	}
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	wTx := s.db.WriteTx()
	nTx := prefixeddb.NewPrefixedWriteTx(wTx, nullifierPrefix)
	nKey := nullifierKey(entry.PoolID, entry.NullifierHash)
	if _, err := nTx.Get(nKey); err == nil {
		wTx.Discard()
		return ErrNullifierUsed
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		wTx.Discard()
		return fmt.Errorf("check nullifier: %w", err)
	}
	val, err := encodeArtifact(entry)
	if err != nil {
		wTx.Discard()
		return fmt.Errorf("encode nullifier: %w", err)
	}
	if err := nTx.Set(nKey, val); err != nil {
		wTx.Discard()
		return fmt.Errorf("store nullifier: %w", err)
	}
	if err := setArtifactTx(wTx, poolPrefix, pool.ID, pool); err != nil {
		wTx.Discard()
		return fmt.Errorf("store pool: %w", err)
	}
	if err := setArtifactTx(wTx, withdrawalPrefix, withdrawalKey(rec.PoolID, rec.NullifierHash), rec); err != nil {
		wTx.Discard()
		return fmt.Errorf("store withdrawal: %w", err)
	}
	if transfer != nil {
		if err := transfer(); err != nil {
			wTx.Discard()
			return err
		}
	}
	return wTx.Commit()
}
