package ringvrf

import (
	"encoding/binary"
	"math/big"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/gtank/merlin"
)

func InitialTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

// RingVrfDomainSep binds the statement of a ring VRF signature.
func RingVrfDomainSep(commitment *RingCommitment, vrfInput, auxData []byte, t *merlin.Transcript) *merlin.Transcript {
	appendBytes([]byte("dom-sep"), []byte("ring-vrf v1"), t)

	c := commitment.Bytes()
	appendBytes([]byte("ring-commitment"), c[:], t)
	appendBytes([]byte("vrf-input"), vrfInput, t)
	appendBytes([]byte("aux-data"), auxData, t)
	return t
}

// RingProofDomainSep binds the ring proof to the commitment and statement
// challenge.
func RingProofDomainSep(domainSize int, commitment *RingCommitment, statement *big.Int, t *merlin.Transcript) *merlin.Transcript {
	appendBytes([]byte("dom-sep"), []byte("ring-proof v1"), t)
	appendUint64("n", uint64(domainSize), t)

	c := commitment.Bytes()
	appendBytes([]byte("ring-commitment"), c[:], t)
	s := bandersnatch.ScalarBytes(statement)
	appendBytes([]byte("statement"), s[:], t)
	return t
}

// Challenge derives the statement challenge binding a ring commitment, a
// VRF input and auxiliary data.
func Challenge(commitment *RingCommitment, vrfInput, auxData []byte) *big.Int {
	t := InitialTranscript(RING_VRF_DOMAIN_TAG)
	RingVrfDomainSep(commitment, vrfInput, auxData, t)
	return ChallengeScalar("challenge", t)
}

func appendUint64(label string, i uint64, t *merlin.Transcript) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	appendBytes([]byte(label), buf, t)
}

func appendBytes(field, data []byte, t *merlin.Transcript) {
	t.AppendMessage(field, data)
}

func appendPoint(label string, p *bandersnatch.Point, t *merlin.Transcript) {
	enc := p.Bytes()
	appendBytes([]byte(label), enc[:], t)
}

func appendG1(label string, p *bls12381.G1Affine, t *merlin.Transcript) {
	enc := p.Bytes()
	appendBytes([]byte(label), enc[:], t)
}

func appendField(label string, e *fr.Element, t *merlin.Transcript) {
	enc := fieldBytes(e)
	appendBytes([]byte(label), enc[:], t)
}

// ChallengeScalar extracts a Bandersnatch scalar.
func ChallengeScalar(label string, t *merlin.Transcript) *big.Int {
	data := t.ExtractBytes([]byte(label), 64)
	return bandersnatch.ScalarFromBytesReduce(data)
}

// challengeField extracts a BLS12-381 scalar field element.
func challengeField(label string, t *merlin.Transcript) fr.Element {
	data := t.ExtractBytes([]byte(label), 64)
	return fieldFromBytesWide(data)
}
