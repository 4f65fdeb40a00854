package mixer

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/crypto/hash"
	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/storage"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/verifier"
)

// WithdrawRequest is a withdrawal attempt. The fee is not part of it: the
// controller computes the fee itself and uses it as a public input, so a
// proof generated for any other fee fails verification.
type WithdrawRequest struct {
	Root          types.HexBytes
	NullifierHash types.HexBytes
	Recipient     common.Address
	Proof         []byte
}

// Withdraw spends a note. Guards run in a fixed order: pause flag, request
// shape, anonymity set, root freshness, time lock, pool balance, proof, and
// finally the nullifier check-and-insert inside the storage transaction.
// On success the recipient receives denomination minus fee and the fee
// collector receives the fee, atomically with the state update. Returns the
// withdrawal record; its Amount field is the net amount paid out.
func (m *Mixer) Withdraw(pid types.HexBytes, req *WithdrawRequest) (*types.WithdrawalRecord, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		return nil, ErrPoolPaused
	}
	pool, err := m.pool(pid)
	if err != nil {
		return nil, err
	}
	if req == nil || len(req.NullifierHash) != types.NullifierSize || isZero(req.NullifierHash) {
		return nil, ErrInvalidNullifier
	}
	strategy, err := hash.FromType(pool.HashType)
	if err != nil {
		return nil, err
	}
	// The nullifier registry keys on the request bytes, so a non-reduced
	// alias of a spent field element must never reach the proof check.
	if !hash.Canonical(strategy, req.NullifierHash) {
		return nil, ErrInvalidNullifier.Withf("non-canonical field encoding")
	}
	if pool.TotalDeposits < types.MinAnonymitySet {
		return nil, ErrAnonymitySetTooSmall.Withf("%d of %d deposits",
			pool.TotalDeposits, types.MinAnonymitySet)
	}
	rootEntry, err := m.stg.RootEntry(pid, req.Root)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownRoot
		}
		return nil, err
	}
	now := m.now().UTC()
	if elapsed := now.Sub(rootEntry.Timestamp); elapsed < cfg.MinDelay {
		return nil, ErrTimeLockNotElapsed.Withf("%s of %s elapsed", elapsed, cfg.MinDelay)
	}
	if pool.Balance < pool.Denomination {
		return nil, ErrInsufficientPoolBalance
	}
	fee := FeeFor(cfg, pool)
	v, err := m.verifierFor(pool.ProvingSystem)
	if err != nil {
		return nil, err
	}
	inputs := verifier.NewPublicInputs(req.Root, req.NullifierHash, req.Recipient, fee)
	if err := v.Verify(pool.VerifyingKey, req.Proof, inputs); err != nil {
		return nil, ErrInvalidProof.WithErr(err)
	}

	pool.TotalWithdrawals++
	pool.Balance -= pool.Denomination
	entry := &types.NullifierEntry{
		PoolID:        pool.ID,
		NullifierHash: req.NullifierHash,
		SpentAt:       now,
	}
	rec := &types.WithdrawalRecord{
		PoolID:        pool.ID,
		NullifierHash: req.NullifierHash,
		Recipient:     req.Recipient,
		Fee:           fee,
		Amount:        pool.Denomination - fee,
		Root:          req.Root,
		Timestamp:     now,
	}
	if err := m.stg.CommitWithdrawal(pool, entry, rec, func() error {
		return m.ledger.Payout(pool.ID, req.Recipient, rec.Amount, cfg.FeeCollector, fee)
	}); err != nil {
		if errors.Is(err, storage.ErrNullifierUsed) {
			return nil, ErrDoubleSpend
		}
		return nil, err
	}
	log.Debugw("withdrawal accepted",
		"pool", pool.ID.String(),
		"nullifierHash", rec.NullifierHash.String(),
		"amount", rec.Amount,
		"fee", fee)
	return rec, nil
}
