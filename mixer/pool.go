package mixer

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/crypto/hash"
	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/merkle"
	"github.com/zkmixer/zkmixer/storage"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/verifier"
)

// PoolParams are the authority-chosen parameters of a new pool.
type PoolParams struct {
	Asset         common.Address
	Denomination  uint64
	ChainID       uint32
	HashType      types.HashType
	ProvingSystem types.ProvingSystem
	VerifyingKey  []byte
}

// CreatePool registers a new denomination pool with an empty accumulator.
// The verifying key is fixed here for the pool's whole lifetime.
func (m *Mixer) CreatePool(params PoolParams, signature []byte) (*types.MixerPool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return nil, err
	}
	pid := (&types.PoolID{
		Asset:        params.Asset,
		Denomination: params.Denomination,
		ChainID:      params.ChainID,
	}).Marshal()
	msg := AuthorityMessage("create-pool", pid)
	if err := m.verifyAuthority(cfg, msg, signature); err != nil {
		return nil, err
	}
	if !types.IsSupportedDenomination(params.Denomination) {
		return nil, ErrUnsupportedDenomination.Withf("%d", params.Denomination)
	}
	strategy, err := hash.FromType(params.HashType)
	if err != nil {
		return nil, err
	}
	if _, err := verifier.ForSystem(params.ProvingSystem); err != nil {
		return nil, err
	}
	if len(params.VerifyingKey) == 0 {
		return nil, fmt.Errorf("missing verifying key")
	}
	acc, err := merkle.New(strategy, types.MerkleTreeDepth)
	if err != nil {
		return nil, err
	}
	pool := &types.MixerPool{
		ID:            pid,
		Denomination:  params.Denomination,
		Depth:         types.MerkleTreeDepth,
		HashType:      params.HashType,
		ProvingSystem: params.ProvingSystem,
		VerifyingKey:  params.VerifyingKey,
		Root:          acc.Root(),
		Frontier:      frontierToHex(acc.Frontier()),
		CreatedAt:     m.now().UTC(),
	}
	if err := m.stg.CreatePool(pool); err != nil {
		if errors.Is(err, storage.ErrPoolExists) {
			return nil, ErrDuplicatePool.Withf("%s", pool.ID.String())
		}
		return nil, err
	}
	log.Infow("pool created",
		"pool", pool.ID.String(),
		"denomination", pool.Denomination,
		"hashType", string(pool.HashType),
		"provingSystem", string(pool.ProvingSystem))
	return pool, nil
}

// ClosePool deletes a drained pool. It requires every deposit to have been
// withdrawn and the balance to be zero; spent nullifiers survive the
// deletion.
func (m *Mixer) ClosePool(pid types.HexBytes, signature []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return err
	}
	if err := m.verifyAuthority(cfg, AuthorityMessage("close-pool", pid), signature); err != nil {
		return err
	}
	pool, err := m.pool(pid)
	if err != nil {
		return err
	}
	if pool.Balance != 0 || pool.TotalDeposits != pool.TotalWithdrawals {
		return ErrPoolNotEmpty.Withf("balance %d, %d deposits, %d withdrawals",
			pool.Balance, pool.TotalDeposits, pool.TotalWithdrawals)
	}
	if err := m.stg.DeletePool(pid); err != nil {
		return err
	}
	log.Infow("pool closed", "pool", pid.String())
	return nil
}

// Pool returns a pool record.
func (m *Mixer) Pool(pid types.HexBytes) (*types.MixerPool, error) {
	return m.pool(pid)
}

// Pools returns all pool records.
func (m *Mixer) Pools() ([]*types.MixerPool, error) {
	return m.stg.ListPools()
}

// Commitments returns a slice of the append-only commitment log of a pool,
// starting at leaf index from.
func (m *Mixer) Commitments(pid types.HexBytes, from uint64, maxCount int) ([]*types.CommitmentRecord, error) {
	if _, err := m.pool(pid); err != nil {
		return nil, err
	}
	return m.stg.Commitments(pid, from, maxCount)
}

// Withdrawals returns the withdrawal log of a pool.
func (m *Mixer) Withdrawals(pid types.HexBytes, maxCount int) ([]*types.WithdrawalRecord, error) {
	if _, err := m.pool(pid); err != nil {
		return nil, err
	}
	return m.stg.Withdrawals(pid, maxCount)
}

// IsKnownRoot reports whether the pool still honors the given root for
// withdrawal proofs.
func (m *Mixer) IsKnownRoot(pid types.HexBytes, root []byte) (bool, error) {
	if _, err := m.pool(pid); err != nil {
		return false, err
	}
	if _, err := m.stg.RootEntry(pid, root); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Mixer) pool(pid types.HexBytes) (*types.MixerPool, error) {
	pool, err := m.stg.Pool(pid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPoolNotFound.Withf("%s", pid.String())
		}
		return nil, err
	}
	return pool, nil
}

// accumulator rebuilds a pool's accumulator from its persisted frontier.
func (m *Mixer) accumulator(pool *types.MixerPool) (*merkle.Accumulator, error) {
	strategy, err := hash.FromType(pool.HashType)
	if err != nil {
		return nil, err
	}
	return merkle.Restore(strategy, pool.Depth, frontierFromHex(pool.Frontier),
		pool.NextLeafIndex, pool.Root)
}

func frontierToHex(frontier [][]byte) []types.HexBytes {
	out := make([]types.HexBytes, len(frontier))
	for i, f := range frontier {
		out[i] = f
	}
	return out
}

func frontierFromHex(frontier []types.HexBytes) [][]byte {
	out := make([][]byte, len(frontier))
	for i, f := range frontier {
		out[i] = f
	}
	return out
}
