package storage

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// Artifact encoding/decoding
func encodeArtifact(a any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return em.Marshal(a)
}

func decodeArtifact(data []byte, out any) error {
	return cbor.Unmarshal(data, out)
}

// getArtifact reads and decodes the artifact at prefix/key. It returns
// ErrNotFound if the key does not exist.
func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	rd := prefixeddb.NewPrefixedReader(s.db, prefix)
	data, err := rd.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return decodeArtifact(data, out)
}

// setArtifact encodes and stores the artifact at prefix/key in its own write
// transaction.
func (s *Storage) setArtifact(prefix, key []byte, a any) error {
	val, err := encodeArtifact(a)
	if err != nil {
		return err
	}
	wTx := prefixeddb.NewPrefixedWriteTx(s.db.WriteTx(), prefix)
	if err := wTx.Set(key, val); err != nil {
		wTx.Discard()
		return err
	}
	return wTx.Commit()
}

// setArtifactTx is setArtifact inside an already open transaction; the
// caller owns commit and discard.
func setArtifactTx(wTx db.WriteTx, prefix, key []byte, a any) error {
	val, err := encodeArtifact(a)
	if err != nil {
		return err
	}
	return prefixeddb.NewPrefixedWriteTx(wTx, prefix).Set(key, val)
}
