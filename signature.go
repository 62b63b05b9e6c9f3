package ringvrf

import (
	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/pkg/errors"
)

const RingSignatureSize = bandersnatch.PointSize + PedersenProofSize + RingProofSize

// RingSignature bundles the VRF output point with the Pedersen VRF proof
// and the ring membership proof of the committed key.
type RingSignature struct {
	Output   *bandersnatch.Point
	Pedersen *PedersenProof
	Ring     *RingProof
}

func (sig *RingSignature) Bytes() []byte {
	out := make([]byte, 0, RingSignatureSize)
	o := sig.Output.Bytes()
	out = append(out, o[:]...)
	out = append(out, sig.Pedersen.Bytes()...)
	return append(out, sig.Ring.Bytes()...)
}

// ParseRingSignature strictly decodes a ring signature. Every failure
// wraps ErrProofMalformed.
func ParseRingSignature(buf []byte) (*RingSignature, error) {
	if len(buf) != RingSignatureSize {
		return nil, errors.Wrapf(ErrProofMalformed, "signature length %d", len(buf))
	}
	output, err := bandersnatch.Decode(buf[:bandersnatch.PointSize])
	if err != nil {
		return nil, errors.Wrap(ErrProofMalformed, err.Error())
	}
	off := bandersnatch.PointSize
	pedersen, err := parsePedersenProof(buf[off : off+PedersenProofSize])
	if err != nil {
		return nil, err
	}
	off += PedersenProofSize
	ring, err := ParseRingProof(buf[off:])
	if err != nil {
		return nil, err
	}
	return &RingSignature{Output: output, Pedersen: pedersen, Ring: ring}, nil
}
