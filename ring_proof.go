package ringvrf

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

const (
	registerCount = 7
	RingProofSize = 4*g1CompressedSize + registerCount*fieldSize + g1CompressedSize + fieldSize + 2*g1CompressedSize
)

// RegisterEvaluations are the column evaluations at the challenge point.
type RegisterEvaluations struct {
	Px          fr.Element
	Py          fr.Element
	Selector    fr.Element
	Bits        fr.Element
	InnProdAcc  fr.Element
	CondAddAccX fr.Element
	CondAddAccY fr.Element
}

func (e *RegisterEvaluations) fields() []*fr.Element {
	return []*fr.Element{&e.Px, &e.Py, &e.Selector, &e.Bits, &e.InnProdAcc, &e.CondAddAccX, &e.CondAddAccY}
}

// RingProof proves that a committed point is a ring key plus a multiple of
// the blinding base.
type RingProof struct {
	Bits        bls12381.G1Affine
	InnProdAcc  bls12381.G1Affine
	CondAddAccX bls12381.G1Affine
	CondAddAccY bls12381.G1Affine

	Evaluations RegisterEvaluations

	Quotient            bls12381.G1Affine
	LinAtZetaOmega      fr.Element
	AggAtZetaProof      bls12381.G1Affine
	LinAtZetaOmegaProof bls12381.G1Affine
}

func (p *RingProof) columnCommitments() []*bls12381.G1Affine {
	return []*bls12381.G1Affine{&p.Bits, &p.InnProdAcc, &p.CondAddAccX, &p.CondAddAccY}
}

func (p *RingProof) Bytes() []byte {
	out := make([]byte, 0, RingProofSize)
	for _, c := range p.columnCommitments() {
		b := c.Bytes()
		out = append(out, b[:]...)
	}
	for _, e := range p.Evaluations.fields() {
		b := fieldBytes(e)
		out = append(out, b[:]...)
	}
	q := p.Quotient.Bytes()
	out = append(out, q[:]...)
	l := fieldBytes(&p.LinAtZetaOmega)
	out = append(out, l[:]...)
	a := p.AggAtZetaProof.Bytes()
	out = append(out, a[:]...)
	w := p.LinAtZetaOmegaProof.Bytes()
	return append(out, w[:]...)
}

type proofReader struct {
	buf []byte
	err error
}

func (r *proofReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = errors.Wrap(ErrProofMalformed, "truncated")
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *proofReader) g1(p *bls12381.G1Affine) {
	b := r.next(g1CompressedSize)
	if r.err != nil {
		return
	}
	if _, err := p.SetBytes(b); err != nil {
		r.err = errors.Wrap(ErrProofMalformed, err.Error())
		return
	}
	if enc := p.Bytes(); string(enc[:]) != string(b) {
		r.err = errors.Wrap(ErrProofMalformed, "non-canonical G1 point")
	}
}

func (r *proofReader) field(e *fr.Element) {
	b := r.next(fieldSize)
	if r.err != nil {
		return
	}
	v, err := fieldFromBytes(b)
	if err != nil {
		r.err = err
		return
	}
	*e = v
}

// ParseRingProof strictly decodes a ring proof.
func ParseRingProof(buf []byte) (*RingProof, error) {
	if len(buf) != RingProofSize {
		return nil, errors.Wrapf(ErrProofMalformed, "ring proof length %d", len(buf))
	}
	var p RingProof
	r := &proofReader{buf: buf}
	for _, c := range p.columnCommitments() {
		r.g1(c)
	}
	for _, e := range p.Evaluations.fields() {
		r.field(e)
	}
	r.g1(&p.Quotient)
	r.field(&p.LinAtZetaOmega)
	r.g1(&p.AggAtZetaProof)
	r.g1(&p.LinAtZetaOmegaProof)
	if r.err != nil {
		return nil, r.err
	}
	return &p, nil
}
