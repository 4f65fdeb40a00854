package types

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
)

func TestHexBytesJSON(t *testing.T) {
	c := qt.New(t)

	b := HexBytes{0xde, 0xad, 0xbe, 0xef}
	data, err := json.Marshal(b)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `"deadbeef"`)

	var decoded HexBytes
	c.Assert(json.Unmarshal(data, &decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, b)

	// 0x-prefixed input is accepted too
	c.Assert(json.Unmarshal([]byte(`"0xdeadbeef"`), &decoded), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, b)

	c.Assert(json.Unmarshal([]byte(`deadbeef`), &decoded), qt.IsNotNil)
	c.Assert(json.Unmarshal([]byte(`"zzzz"`), &decoded), qt.IsNotNil)
}

func TestHexBytesSetString(t *testing.T) {
	c := qt.New(t)

	var b HexBytes
	c.Assert(b.SetString("0xcafe"), qt.IsNil)
	c.Assert(b.String(), qt.Equals, "cafe")
	c.Assert(b.SetString("cafe"), qt.IsNil)
	c.Assert(b.String(), qt.Equals, "cafe")
	c.Assert(b.SetString("not-hex"), qt.IsNotNil)
}

func TestPoolIDRoundTrip(t *testing.T) {
	c := qt.New(t)

	pid := &PoolID{
		Asset:        common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Denomination: SupportedDenominations[2],
		ChainID:      137,
	}
	data := pid.Marshal()
	c.Assert(data, qt.HasLen, PoolIDSize)

	decoded := &PoolID{}
	c.Assert(decoded.Unmarshal(data), qt.IsNil)
	c.Assert(decoded, qt.DeepEquals, pid)

	c.Assert(decoded.Unmarshal(data[:31]), qt.IsNotNil)
}
