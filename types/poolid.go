package types

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PoolID identifies a denomination pool. It is composed of:
// - ChainID (4 bytes)
// - Asset (20 bytes): the asset contract address, zero for the native asset
// - Denomination (8 bytes)
type PoolID struct {
	Asset        common.Address
	Denomination uint64
	ChainID      uint32
}

// Marshal encodes PoolID to a fixed 32 byte slice.
func (p *PoolID) Marshal() []byte {
	chainID := make([]byte, 4)
	binary.BigEndian.PutUint32(chainID, p.ChainID)

	denomination := make([]byte, 8)
	binary.BigEndian.PutUint64(denomination, p.Denomination)

	var id bytes.Buffer
	id.Write(chainID[:4])
	id.Write(p.Asset.Bytes()[:20])
	id.Write(denomination[:8])
	return id.Bytes()
}

// Unmarshal decodes a 32 byte slice into the PoolID.
func (p *PoolID) Unmarshal(data []byte) error {
	if len(data) != PoolIDSize {
		return fmt.Errorf("invalid PoolID length: %d", len(data))
	}
	p.ChainID = binary.BigEndian.Uint32(data[:4])
	p.Asset = common.BytesToAddress(data[4:24])
	p.Denomination = binary.BigEndian.Uint64(data[24:32])
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (p *PoolID) MarshalBinary() (data []byte, err error) {
	return p.Marshal(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (p *PoolID) UnmarshalBinary(data []byte) error {
	return p.Unmarshal(data)
}

// String returns a human readable representation of the pool ID.
func (p *PoolID) String() string {
	return hex.EncodeToString(p.Marshal())
}
