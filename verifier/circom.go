package verifier

import (
	"encoding/json"
	"fmt"

	"github.com/vocdoni/circom2gnark/parser"
)

// Circom verifies snarkjs proofs for pools whose circuits were built with
// circom tooling. The proof blob is a JSON envelope carrying the proof and
// its public signals exactly as snarkjs emits them; the verifying key is
// the snarkjs verification key JSON stored in the pool record.
type Circom struct{}

// circomEnvelope is the wire format of a circom withdrawal proof.
type circomEnvelope struct {
	Proof         json.RawMessage `json:"proof"`
	PublicSignals json.RawMessage `json:"publicSignals"`
}

// Verify parses the envelope, requires the carried public signals to equal
// the server-derived statement, converts the proof to the gnark format and
// verifies it.
func (Circom) Verify(verifyingKey, proof []byte, inputs *PublicInputs) error {
	if inputs == nil {
		return fmt.Errorf("%w: nil public inputs", ErrInvalidProof)
	}
	vec := inputs.Vector()
	expected := make([]string, len(vec))
	for i, v := range vec {
		expected[i] = v.String()
	}
	return verifyCircomEnvelope(verifyingKey, proof, expected)
}

// verifyCircomEnvelope checks the envelope's public signals against the
// expected decimal strings and verifies the contained proof.
func verifyCircomEnvelope(verifyingKey, proof []byte, expected []string) error {
	var env circomEnvelope
	if err := json.Unmarshal(proof, &env); err != nil {
		return fmt.Errorf("%w: parse proof envelope: %v", ErrInvalidProof, err)
	}
	signals, err := parser.UnmarshalCircomPublicSignalsJSON(env.PublicSignals)
	if err != nil {
		return fmt.Errorf("%w: parse public signals: %v", ErrInvalidProof, err)
	}
	if len(signals) != len(expected) {
		return fmt.Errorf("%w: got %d public signals, want %d",
			ErrPublicInputMismatch, len(signals), len(expected))
	}
	for i, signal := range signals {
		if signal != expected[i] {
			return fmt.Errorf("%w: signal %d", ErrPublicInputMismatch, i)
		}
	}
	proofData, err := parser.UnmarshalCircomProofJSON(env.Proof)
	if err != nil {
		return fmt.Errorf("%w: parse proof: %v", ErrInvalidProof, err)
	}
	vkData, err := parser.UnmarshalCircomVerificationKeyJSON(verifyingKey)
	if err != nil {
		return fmt.Errorf("%w: parse verification key: %v", ErrInvalidProof, err)
	}
	gnarkProof, err := parser.ConvertCircomToGnark(proofData, vkData, signals)
	if err != nil {
		return fmt.Errorf("%w: convert proof: %v", ErrInvalidProof, err)
	}
	if ok, err := parser.VerifyProof(gnarkProof); !ok || err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	return nil
}
