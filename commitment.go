package ringvrf

import (
	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
)

const (
	g1CompressedSize   = bls12381.SizeOfG1AffineCompressed
	RingCommitmentSize = 3 * g1CompressedSize
)

// RingCommitment commits to the key columns of one ring: the Weierstrass x
// and y coordinates and the ring selector.
type RingCommitment struct {
	Px       bls12381.G1Affine
	Py       bls12381.G1Affine
	Selector bls12381.G1Affine
}

// Commit builds the commitment of an ordered ring. Nil keys and the slots
// past the end of keys are filled with the padding point.
func (ctx *RingContext) Commit(keys []*bandersnatch.Point) (*RingCommitment, error) {
	px, py, err := ctx.keyColumns(keys)
	if err != nil {
		return nil, err
	}
	c := &RingCommitment{Selector: ctx.selectorCommitment}
	if c.Px, err = ctx.commitEvaluations(px); err != nil {
		return nil, err
	}
	if c.Py, err = ctx.commitEvaluations(py); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RingCommitment) Bytes() [RingCommitmentSize]byte {
	var out [RingCommitmentSize]byte
	for i, p := range []*bls12381.G1Affine{&c.Px, &c.Py, &c.Selector} {
		b := p.Bytes()
		copy(out[i*g1CompressedSize:], b[:])
	}
	return out
}

// ParseRingCommitment reads the canonical encoding produced by Bytes.
func ParseRingCommitment(buf []byte) (*RingCommitment, error) {
	if len(buf) != RingCommitmentSize {
		return nil, errors.Wrapf(bandersnatch.ErrInvalidEncoding, "commitment length %d", len(buf))
	}
	var c RingCommitment
	for i, p := range []*bls12381.G1Affine{&c.Px, &c.Py, &c.Selector} {
		chunk := buf[i*g1CompressedSize : (i+1)*g1CompressedSize]
		if _, err := p.SetBytes(chunk); err != nil {
			return nil, errors.Wrap(bandersnatch.ErrInvalidEncoding, err.Error())
		}
		b := p.Bytes()
		if string(b[:]) != string(chunk) {
			return nil, errors.Wrap(bandersnatch.ErrInvalidEncoding, "non-canonical commitment")
		}
	}
	return &c, nil
}

func (c *RingCommitment) Equal(o *RingCommitment) bool {
	return c.Px.Equal(&o.Px) && c.Py.Equal(&o.Py) && c.Selector.Equal(&o.Selector)
}
