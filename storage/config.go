package storage

import (
	"errors"

	"github.com/zkmixer/zkmixer/types"
)

// Config retrieves the global configuration. It returns ErrNotFound if the
// mixer has not been initialized yet.
func (s *Storage) Config() (*types.GlobalConfig, error) {
	cfg := &types.GlobalConfig{}
	if err := s.getArtifact(configPrefix, configKey, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitConfig stores the global configuration for the first time. It returns
// ErrConfigExists if a configuration is already present.
func (s *Storage) InitConfig(cfg *types.GlobalConfig) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	if _, err := s.Config(); err == nil {
		return ErrConfigExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.setArtifact(configPrefix, configKey, cfg)
}

// SetConfig overwrites the global configuration. Used by the admin
// operations after the authority check has passed.
func (s *Storage) SetConfig(cfg *types.GlobalConfig) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	return s.setArtifact(configPrefix, configKey, cfg)
}
