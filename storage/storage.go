// storage package persists the whole mixer state in a prefixed key-value
// store. The following prefixes are used:
//   - 'g/' for the global configuration
//   - 'p/' for pools
//   - 'c/' for the per-pool commitment log
//   - 'r/' for the per-pool root history ring
//   - 'n/' for spent nullifier hashes
//   - 'w/' for the per-pool withdrawal log
//
// Deposit and withdrawal outcomes are committed through CommitDeposit and
// CommitWithdrawal, which group every key they touch into a single write
// transaction. Everything else is read-mostly.
package storage

import (
	"errors"
	"sync"

	"go.vocdoni.io/dvote/db"
)

var (
	// Prefixes for the keys in the database.
	configPrefix     = []byte("g/")
	poolPrefix       = []byte("p/")
	commitmentPrefix = []byte("c/")
	rootPrefix       = []byte("r/")
	nullifierPrefix  = []byte("n/")
	withdrawalPrefix = []byte("w/")
)

// configKey is the single key under configPrefix.
var configKey = []byte("config")

var (
	// ErrNotFound is returned when the requested artifact does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConfigExists is returned by InitConfig when the mixer has already
	// been initialized.
	ErrConfigExists = errors.New("configuration already exists")
	// ErrPoolExists is returned by CreatePool when the pool ID is taken.
	ErrPoolExists = errors.New("pool already exists")
	// ErrNullifierUsed is returned by CommitWithdrawal when the nullifier
	// hash has already been spent.
	ErrNullifierUsed = errors.New("nullifier already used")
)

// Storage is the interface that wraps the basic methods to interact with the
// storage.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	s.db.Close()
}
