package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/zkmixer/zkmixer/types"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// rootSlotKey builds the key of one root history ring slot.
func rootSlotKey(pid types.HexBytes, slot uint64) []byte {
	key := make([]byte, len(pid)+4)
	copy(key, pid)
	binary.BigEndian.PutUint32(key[len(pid):], uint32(slot%types.RootHistorySize))
	return key
}

// RootEntry scans a pool's root history ring for the given root. It returns
// ErrNotFound when the root was never produced or has been evicted from the
// ring, which makes the withdrawal proof stale.
func (s *Storage) RootEntry(pid types.HexBytes, root []byte) (*types.RootEntry, error) {
	rd := prefixeddb.NewPrefixedReader(s.db, rootPrefix)
	var found *types.RootEntry
	var decodeErr error
	if err := rd.Iterate(pid, func(_, v []byte) bool {
		entry := &types.RootEntry{}
		if decodeErr = decodeArtifact(v, entry); decodeErr != nil {
			return false
		}
		if bytes.Equal(entry.Root, root) {
			found = entry
			return false
		}
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate root history: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode root entry: %w", decodeErr)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}
