// Package ledger models the host value ledger the mixer escrows funds on.
// The controller never moves value itself: it invokes the ledger through a
// callback placed inside the storage commit sequence, so a failed transfer
// aborts the whole operation and a failed commit never leaves a transfer
// behind.
package ledger

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/types"
)

// Ledger is the host-ledger collaborator interface.
type Ledger interface {
	// CreditPool escrows a deposit into the pool's account.
	CreditPool(pool types.HexBytes, amount uint64) error
	// Payout debits the pool and pays the recipient and the fee
	// collector. It must be all-or-nothing.
	Payout(pool types.HexBytes, recipient common.Address, amount uint64,
		feeCollector common.Address, fee uint64) error
	// PoolBalance returns the escrowed balance of a pool.
	PoolBalance(pool types.HexBytes) uint64
	// AccountBalance returns the balance of an external account.
	AccountBalance(addr common.Address) uint64
}

// MemLedger is the in-memory Ledger used by the daemon and the tests. It
// stands in for the host chain.
type MemLedger struct {
	mtx      sync.RWMutex
	pools    map[string]uint64
	accounts map[common.Address]uint64
}

// NewMemLedger creates an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{
		pools:    make(map[string]uint64),
		accounts: make(map[common.Address]uint64),
	}
}

// CreditPool escrows a deposit into the pool's account.
func (l *MemLedger) CreditPool(pool types.HexBytes, amount uint64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.pools[pool.String()] += amount
	return nil
}

// Payout debits the pool and credits the recipient and the fee collector.
func (l *MemLedger) Payout(pool types.HexBytes, recipient common.Address,
	amount uint64, feeCollector common.Address, fee uint64,
) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	total := amount + fee
	if l.pools[pool.String()] < total {
		return fmt.Errorf("pool %s balance %d below payout %d",
			pool.String(), l.pools[pool.String()], total)
	}
	l.pools[pool.String()] -= total
	l.accounts[recipient] += amount
	l.accounts[feeCollector] += fee
	return nil
}

// PoolBalance returns the escrowed balance of a pool.
func (l *MemLedger) PoolBalance(pool types.HexBytes) uint64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.pools[pool.String()]
}

// AccountBalance returns the balance of an external account.
func (l *MemLedger) AccountBalance(addr common.Address) uint64 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.accounts[addr]
}
