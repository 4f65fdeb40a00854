package storage

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
	"go.vocdoni.io/dvote/db/metadb"
)

func testPool(pid types.HexBytes) *types.MixerPool {
	return &types.MixerPool{
		ID:            pid,
		Denomination:  1_000_000_000,
		Depth:         types.MerkleTreeDepth,
		HashType:      types.HashTypeSHA256,
		ProvingSystem: types.ProvingSystemNative,
		Root:          util.RandomBytes(32),
		CreatedAt:     time.Now().UTC(),
	}
}

func TestConfig(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	_, err := stg.Config()
	c.Assert(err, qt.Equals, ErrNotFound)

	cfg := &types.GlobalConfig{
		FeeBPS:    types.DefaultFeeBPS,
		MinDelay:  types.DefaultMinDelay,
		CreatedAt: time.Now().UTC(),
	}
	c.Assert(stg.InitConfig(cfg), qt.IsNil)
	c.Assert(stg.InitConfig(cfg), qt.Equals, ErrConfigExists)

	res, err := stg.Config()
	c.Assert(err, qt.IsNil)
	c.Assert(res.FeeBPS, qt.Equals, cfg.FeeBPS)
	c.Assert(res.MinDelay, qt.Equals, cfg.MinDelay)

	res.Paused = true
	c.Assert(stg.SetConfig(res), qt.IsNil)
	res2, err := stg.Config()
	c.Assert(err, qt.IsNil)
	c.Assert(res2.Paused, qt.IsTrue)
}

func TestPools(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pid := types.HexBytes(util.RandomBytes(32))
	_, err := stg.Pool(pid)
	c.Assert(err, qt.Equals, ErrNotFound)

	pool := testPool(pid)
	c.Assert(stg.CreatePool(pool), qt.IsNil)
	c.Assert(stg.CreatePool(pool), qt.Equals, ErrPoolExists)

	res, err := stg.Pool(pid)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Denomination, qt.Equals, pool.Denomination)
	c.Assert(res.Root, qt.DeepEquals, pool.Root)

	other := testPool(util.RandomBytes(32))
	c.Assert(stg.CreatePool(other), qt.IsNil)
	pools, err := stg.ListPools()
	c.Assert(err, qt.IsNil)
	c.Assert(pools, qt.HasLen, 2)

	c.Assert(stg.DeletePool(pid), qt.IsNil)
	_, err = stg.Pool(pid)
	c.Assert(err, qt.Equals, ErrNotFound)
	c.Assert(stg.DeletePool(pid), qt.Equals, ErrNotFound)
	pools, err = stg.ListPools()
	c.Assert(err, qt.IsNil)
	c.Assert(pools, qt.HasLen, 1)
}

func TestCommitDepositAndLog(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pool := testPool(util.RandomBytes(32))
	c.Assert(stg.CreatePool(pool), qt.IsNil)

	now := time.Now().UTC()
	for i := range uint64(5) {
		pool.NextLeafIndex = i + 1
		pool.TotalDeposits = i + 1
		pool.Balance += pool.Denomination
		pool.Root = util.RandomBytes(32)
		rec := &types.CommitmentRecord{
			PoolID:     pool.ID,
			LeafIndex:  i,
			Commitment: util.RandomBytes(32),
			Timestamp:  now,
		}
		entry := &types.RootEntry{Root: pool.Root, LeafIndex: i, Timestamp: now}
		c.Assert(stg.CommitDeposit(pool, rec, entry, nil), qt.IsNil)
		pool.RootHistoryHead = (pool.RootHistoryHead + 1) % types.RootHistorySize
	}

	res, err := stg.Pool(pool.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(res.TotalDeposits, qt.Equals, uint64(5))
	c.Assert(res.Balance, qt.Equals, 5*pool.Denomination)

	recs, err := stg.Commitments(pool.ID, 0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(recs, qt.HasLen, 5)
	for i, rec := range recs {
		c.Assert(rec.LeafIndex, qt.Equals, uint64(i))
	}
	recs, err = stg.Commitments(pool.ID, 3, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(recs, qt.HasLen, 2)
	c.Assert(recs[0].LeafIndex, qt.Equals, uint64(3))

	leaves, err := stg.CommitmentLeaves(pool.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(leaves, qt.HasLen, 5)

	// the latest root is in the history ring
	entry, err := stg.RootEntry(pool.ID, res.Root)
	c.Assert(err, qt.IsNil)
	c.Assert(entry.LeafIndex, qt.Equals, uint64(4))
	_, err = stg.RootEntry(pool.ID, util.RandomBytes(32))
	c.Assert(err, qt.Equals, ErrNotFound)
}

func TestCommitDepositCreditFailureRollsBack(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pool := testPool(util.RandomBytes(32))
	c.Assert(stg.CreatePool(pool), qt.IsNil)

	pool.NextLeafIndex = 1
	rec := &types.CommitmentRecord{
		PoolID:     pool.ID,
		LeafIndex:  0,
		Commitment: util.RandomBytes(32),
		Timestamp:  time.Now().UTC(),
	}
	entry := &types.RootEntry{Root: pool.Root, Timestamp: time.Now().UTC()}
	err := stg.CommitDeposit(pool, rec, entry, func() error {
		return ErrNotFound // any error aborts the transaction
	})
	c.Assert(err, qt.IsNotNil)

	res, err := stg.Pool(pool.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(res.NextLeafIndex, qt.Equals, uint64(0))
	recs, err := stg.Commitments(pool.ID, 0, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(recs, qt.HasLen, 0)
}

func TestCommitWithdrawalSpendsNullifierOnce(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pool := testPool(util.RandomBytes(32))
	pool.Balance = 2 * pool.Denomination
	c.Assert(stg.CreatePool(pool), qt.IsNil)

	nh := types.HexBytes(util.RandomBytes(32))
	spent, err := stg.IsSpent(pool.ID, nh)
	c.Assert(err, qt.IsNil)
	c.Assert(spent, qt.IsFalse)

	now := time.Now().UTC()
	entry := &types.NullifierEntry{PoolID: pool.ID, NullifierHash: nh, SpentAt: now}
	rec := &types.WithdrawalRecord{
		PoolID:        pool.ID,
		NullifierHash: nh,
		Fee:           1_000_000,
		Amount:        pool.Denomination,
		Root:          pool.Root,
		Timestamp:     now,
	}
	pool.Balance -= pool.Denomination
	pool.TotalWithdrawals = 1
	transferred := 0
	c.Assert(stg.CommitWithdrawal(pool, entry, rec, func() error {
		transferred++
		return nil
	}), qt.IsNil)
	c.Assert(transferred, qt.Equals, 1)

	spent, err = stg.IsSpent(pool.ID, nh)
	c.Assert(err, qt.IsNil)
	c.Assert(spent, qt.IsTrue)

	// replaying the same nullifier fails and does not transfer again
	err = stg.CommitWithdrawal(pool, entry, rec, func() error {
		transferred++
		return nil
	})
	c.Assert(err, qt.Equals, ErrNullifierUsed)
	c.Assert(transferred, qt.Equals, 1)

	// the same hash in another pool is independent
	spent, err = stg.IsSpent(util.RandomBytes(32), nh)
	c.Assert(err, qt.IsNil)
	c.Assert(spent, qt.IsFalse)

	wrec, err := stg.Withdrawal(pool.ID, nh)
	c.Assert(err, qt.IsNil)
	c.Assert(wrec.Amount, qt.Equals, pool.Denomination)
	wrecs, err := stg.Withdrawals(pool.ID, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(wrecs, qt.HasLen, 1)
}

func TestCommitWithdrawalTransferFailureKeepsNullifierUnspent(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pool := testPool(util.RandomBytes(32))
	c.Assert(stg.CreatePool(pool), qt.IsNil)

	nh := types.HexBytes(util.RandomBytes(32))
	now := time.Now().UTC()
	entry := &types.NullifierEntry{PoolID: pool.ID, NullifierHash: nh, SpentAt: now}
	rec := &types.WithdrawalRecord{PoolID: pool.ID, NullifierHash: nh, Timestamp: now}
	err := stg.CommitWithdrawal(pool, entry, rec, func() error {
		return ErrNotFound
	})
	c.Assert(err, qt.IsNotNil)

	spent, err := stg.IsSpent(pool.ID, nh)
	c.Assert(err, qt.IsNil)
	c.Assert(spent, qt.IsFalse)
}

func TestNullifiersSurvivePoolDeletion(t *testing.T) {
	c := qt.New(t)
	stg := New(metadb.NewTest(t))

	pool := testPool(util.RandomBytes(32))
	c.Assert(stg.CreatePool(pool), qt.IsNil)

	nh := types.HexBytes(util.RandomBytes(32))
	now := time.Now().UTC()
	entry := &types.NullifierEntry{PoolID: pool.ID, NullifierHash: nh, SpentAt: now}
	rec := &types.WithdrawalRecord{PoolID: pool.ID, NullifierHash: nh, Timestamp: now}
	c.Assert(stg.CommitWithdrawal(pool, entry, rec, nil), qt.IsNil)

	c.Assert(stg.DeletePool(pool.ID), qt.IsNil)
	spent, err := stg.IsSpent(pool.ID, nh)
	c.Assert(err, qt.IsNil)
	c.Assert(spent, qt.IsTrue)
	_, err = stg.Withdrawal(pool.ID, nh)
	c.Assert(err, qt.Equals, ErrNotFound)
}
