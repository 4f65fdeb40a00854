package verifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	qt "github.com/frankban/quicktest"
	"github.com/zkmixer/zkmixer/types"
	"github.com/zkmixer/zkmixer/util"
)

func TestForSystem(t *testing.T) {
	c := qt.New(t)
	v, err := ForSystem(types.ProvingSystemNative)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, Native{})
	v, err = ForSystem(types.ProvingSystemCircom)
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, Circom{})
	_, err = ForSystem(types.ProvingSystem("plonk"))
	c.Assert(err, qt.IsNotNil)
}

func TestNativeRejectsGarbage(t *testing.T) {
	c := qt.New(t)
	inputs := NewPublicInputs(util.RandomBytes(31), util.RandomBytes(31),
		common.HexToAddress("0x1111111111111111111111111111111111111111"), 7)
	err := Native{}.Verify(util.RandomBytes(64), util.RandomBytes(64), inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)
	err = Native{}.Verify(nil, nil, nil)
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)
}

func TestCircomRejectsGarbageAndMismatch(t *testing.T) {
	c := qt.New(t)
	inputs := NewPublicInputs(util.RandomBytes(31), util.RandomBytes(31),
		common.HexToAddress("0x1111111111111111111111111111111111111111"), 7)

	err := Circom{}.Verify(nil, []byte("not json"), inputs)
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)

	// wrong number of public signals
	env := []byte(`{"proof": {}, "publicSignals": ["1", "2", "3"]}`)
	err = Circom{}.Verify(nil, env, inputs)
	c.Assert(err, qt.ErrorIs, ErrPublicInputMismatch)

	// right count, wrong values
	vec := inputs.Vector()
	env = fmt.Appendf(nil, `{"proof": {}, "publicSignals": ["%s", "%s", "%s", "1"]}`,
		vec[0], vec[1], vec[2])
	err = Circom{}.Verify(nil, env, inputs)
	c.Assert(err, qt.ErrorIs, ErrPublicInputMismatch)
}

// testdata holds a genuine snarkjs groth16 proof with its verification key
// and single public signal, so the conversion and pairing path runs against
// real material instead of stopping at the signal comparison.
func readCircomFixture(c *qt.C) (vkey, proofJSON []byte, signals []string) {
	vkey, err := os.ReadFile(filepath.Join("testdata", "vkey.json"))
	c.Assert(err, qt.IsNil)
	proofJSON, err = os.ReadFile(filepath.Join("testdata", "proof.json"))
	c.Assert(err, qt.IsNil)
	raw, err := os.ReadFile(filepath.Join("testdata", "public_signals.json"))
	c.Assert(err, qt.IsNil)
	c.Assert(json.Unmarshal(raw, &signals), qt.IsNil)
	return vkey, proofJSON, signals
}

func circomEnvelopeJSON(c *qt.C, proofJSON []byte, signals []string) []byte {
	env, err := json.Marshal(map[string]any{
		"proof":         json.RawMessage(proofJSON),
		"publicSignals": signals,
	})
	c.Assert(err, qt.IsNil)
	return env
}

func TestCircomVerifiesRealProof(t *testing.T) {
	c := qt.New(t)
	vkey, proofJSON, signals := readCircomFixture(c)

	err := verifyCircomEnvelope(vkey, circomEnvelopeJSON(c, proofJSON, signals), signals)
	c.Assert(err, qt.IsNil)

	// same proof checked against a different statement
	err = verifyCircomEnvelope(vkey, circomEnvelopeJSON(c, proofJSON, signals), []string{"1"})
	c.Assert(err, qt.ErrorIs, ErrPublicInputMismatch)

	// a forged signal passes the comparison but fails the pairing check
	forged := []string{"1"}
	err = verifyCircomEnvelope(vkey, circomEnvelopeJSON(c, proofJSON, forged), forged)
	c.Assert(err, qt.ErrorIs, ErrInvalidProof)
}

func TestPublicInputsReduction(t *testing.T) {
	c := qt.New(t)
	// a 32 byte value above the BN254 modulus must be reduced, not rejected
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0xff
	}
	inputs := NewPublicInputs(raw, raw,
		common.HexToAddress("0x2222222222222222222222222222222222222222"), 0)
	vec := inputs.Vector()
	c.Assert(vec[0].BitLen() <= 254, qt.IsTrue)
	c.Assert(vec[1].BitLen() <= 254, qt.IsTrue)
}
