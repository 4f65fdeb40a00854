package mixer

import (
	"errors"

	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/merkle"
	"github.com/zkmixer/zkmixer/types"
)

// Deposit inserts a commitment into a pool's accumulator and escrows the
// attached value. The encrypted note is opaque to the mixer; it is stored
// with the commitment record so wallets can recover their deposits from the
// public log. Returns the commitment record, which carries the assigned
// leaf index, and the new root.
func (m *Mixer) Deposit(pid types.HexBytes, commitment types.HexBytes,
	amount uint64, encryptedNote []byte,
) (*types.CommitmentRecord, types.HexBytes, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Paused {
		return nil, nil, ErrPoolPaused
	}
	pool, err := m.pool(pid)
	if err != nil {
		return nil, nil, err
	}
	if amount != pool.Denomination {
		return nil, nil, ErrWrongDenomination.Withf("got %d, want %d", amount, pool.Denomination)
	}
	if len(commitment) != types.CommitmentSize || isZero(commitment) {
		return nil, nil, ErrInvalidCommitment
	}
	if len(encryptedNote) > types.MaxEncryptedNoteSize {
		return nil, nil, ErrNoteTooLarge.Withf("%d bytes", len(encryptedNote))
	}
	acc, err := m.accumulator(pool)
	if err != nil {
		return nil, nil, err
	}
	index, root, err := acc.Insert(commitment)
	if err != nil {
		if errors.Is(err, merkle.ErrTreeFull) {
			return nil, nil, ErrTreeFull
		}
		return nil, nil, err
	}
	now := m.now().UTC()
	pool.Root = root
	pool.Frontier = frontierToHex(acc.Frontier())
	pool.NextLeafIndex = acc.NextIndex()
	pool.TotalDeposits++
	pool.Balance += amount
	pool.RootHistoryHead = (pool.RootHistoryHead + 1) % types.RootHistorySize
	rec := &types.CommitmentRecord{
		PoolID:        pool.ID,
		LeafIndex:     index,
		Commitment:    commitment,
		EncryptedNote: encryptedNote,
		Timestamp:     now,
	}
	entry := &types.RootEntry{Root: root, LeafIndex: index, Timestamp: now}
	if err := m.stg.CommitDeposit(pool, rec, entry, func() error {
		return m.ledger.CreditPool(pool.ID, amount)
	}); err != nil {
		return nil, nil, err
	}
	log.Debugw("deposit accepted",
		"pool", pool.ID.String(),
		"leafIndex", index,
		"root", pool.Root.String())
	return rec, root, nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
