// Package mixer implements the deposit/withdraw state machine on top of the
// storage, ledger and verifier packages. All mutating operations run under
// a single controller lock and commit their state through one storage write
// transaction, so every operation is all-or-nothing. Errors carry stable
// numeric codes.
package mixer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zkmixer/zkmixer/crypto/ethereum"
	"github.com/zkmixer/zkmixer/ledger"
	"github.com/zkmixer/zkmixer/log"
	"github.com/zkmixer/zkmixer/storage"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/verifier"
)

// Mixer is the controller. One instance serves all pools.
type Mixer struct {
	stg         *storage.Storage
	ledger      ledger.Ledger
	lock        sync.Mutex
	now         func() time.Time
	verifierFor func(types.ProvingSystem) (verifier.Verifier, error)
}

// Option configures a Mixer at construction time.
type Option func(*Mixer)

// WithClock replaces the time source. Tests use it to exercise the time
// lock without sleeping.
func WithClock(now func() time.Time) Option {
	return func(m *Mixer) { m.now = now }
}

// WithVerifierFactory replaces the proof verifier lookup. Tests use it to
// drive the state machine without generating real proofs.
func WithVerifierFactory(f func(types.ProvingSystem) (verifier.Verifier, error)) Option {
	return func(m *Mixer) { m.verifierFor = f }
}

// New creates a Mixer on top of the given storage and host ledger.
func New(stg *storage.Storage, ldg ledger.Ledger, opts ...Option) *Mixer {
	m := &Mixer{stg: stg, ledger: ldg, now: time.Now, verifierFor: verifier.ForSystem}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize establishes the global configuration. It can succeed exactly
// once; the authority it records signs every later admin operation.
func (m *Mixer) Initialize(authority, feeCollector common.Address,
	feeBPS uint64, minDelay time.Duration,
) (*types.GlobalConfig, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if feeBPS >= types.BasisPointsDivisor {
		return nil, fmt.Errorf("fee of %d basis points is not below %d", feeBPS, types.BasisPointsDivisor)
	}
	if minDelay < 0 {
		return nil, fmt.Errorf("negative minimum delay")
	}
	cfg := &types.GlobalConfig{
		Authority:    authority,
		FeeCollector: feeCollector,
		FeeBPS:       feeBPS,
		MinDelay:     minDelay,
		CreatedAt:    m.now().UTC(),
	}
	if err := m.stg.InitConfig(cfg); err != nil {
		if errors.Is(err, storage.ErrConfigExists) {
			return nil, ErrAlreadyInitialized
		}
		return nil, err
	}
	log.Infow("mixer initialized",
		"authority", authority.Hex(),
		"feeCollector", feeCollector.Hex(),
		"feeBPS", feeBPS,
		"minDelay", minDelay.String())
	return cfg, nil
}

// Config returns the global configuration, or ErrNotInitialized.
func (m *Mixer) Config() (*types.GlobalConfig, error) {
	cfg, err := m.stg.Config()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return cfg, nil
}

// AuthorityMessage builds the canonical byte message the authority signs to
// authorize an admin operation. Clients must derive it the same way; the
// signature is an Ethereum personal-message signature over it.
func AuthorityMessage(op string, args ...[]byte) []byte {
	msg := []byte("zkmixer/" + op)
	for _, arg := range args {
		msg = append(msg, '/')
		msg = hex.AppendEncode(msg, arg)
	}
	return msg
}

// verifyAuthority recovers the signer of message and requires it to be the
// configured authority.
func (m *Mixer) verifyAuthority(cfg *types.GlobalConfig, message, signature []byte) error {
	addr, err := ethereum.AddrFromSignature(message, signature)
	if err != nil {
		return ErrSignerMismatch.WithErr(err)
	}
	if addr != cfg.Authority {
		return ErrNotAuthority.Withf("signer %s", addr.Hex())
	}
	return nil
}

// Pause stops deposits and withdrawals. Takes effect on the next operation.
func (m *Mixer) Pause(signature []byte) error {
	return m.setPaused(true, signature)
}

// Unpause resumes deposits and withdrawals.
func (m *Mixer) Unpause(signature []byte) error {
	return m.setPaused(false, signature)
}

func (m *Mixer) setPaused(paused bool, signature []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return err
	}
	op := "unpause"
	if paused {
		op = "pause"
	}
	if err := m.verifyAuthority(cfg, AuthorityMessage(op), signature); err != nil {
		return err
	}
	if cfg.Paused == paused {
		return nil
	}
	cfg.Paused = paused
	if err := m.stg.SetConfig(cfg); err != nil {
		return err
	}
	log.Infow("paused flag updated", "paused", paused)
	return nil
}

// TransferAuthority replaces the authority. The old authority signs; it
// loses all privileges the moment this returns.
func (m *Mixer) TransferAuthority(newAuthority common.Address, signature []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return err
	}
	msg := AuthorityMessage("transfer-authority", newAuthority.Bytes())
	if err := m.verifyAuthority(cfg, msg, signature); err != nil {
		return err
	}
	old := cfg.Authority
	cfg.Authority = newAuthority
	if err := m.stg.SetConfig(cfg); err != nil {
		return err
	}
	log.Infow("authority transferred", "from", old.Hex(), "to", newAuthority.Hex())
	return nil
}

// UpdateFeeCollector replaces the fee collector address.
func (m *Mixer) UpdateFeeCollector(newCollector common.Address, signature []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	cfg, err := m.Config()
	if err != nil {
		return err
	}
	msg := AuthorityMessage("fee-collector", newCollector.Bytes())
	if err := m.verifyAuthority(cfg, msg, signature); err != nil {
		return err
	}
	cfg.FeeCollector = newCollector
	if err := m.stg.SetConfig(cfg); err != nil {
		return err
	}
	log.Infow("fee collector updated", "feeCollector", newCollector.Hex())
	return nil
}

// FeeFor computes the withdrawal fee of a pool under the given
// configuration: floor(denomination * feeBPS / 10000).
func FeeFor(cfg *types.GlobalConfig, pool *types.MixerPool) uint64 {
	return pool.Denomination * cfg.FeeBPS / types.BasisPointsDivisor
}
