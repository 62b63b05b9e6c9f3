package bandersnatch

import (
	"bytes"
	"math/big"

	gb "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

var (
	ErrInvalidEncoding = errors.New("bandersnatch: invalid encoding")
	ErrNotOnCurve      = errors.New("bandersnatch: point not on curve")
	ErrNotInSubgroup   = errors.New("bandersnatch: point not in prime subgroup")
)

const signMask = 0x80

// Decode parses a compressed point: y in little-endian with the top bit of
// the last byte set when x is lexicographically largest. Only canonical
// encodings of non-identity points in the prime subgroup are accepted.
func Decode(buf []byte) (*Point, error) {
	if len(buf) != PointSize {
		return nil, errors.Wrapf(ErrInvalidEncoding, "length %d", len(buf))
	}
	var le [PointSize]byte
	copy(le[:], buf)
	le[PointSize-1] &^= signMask
	if _, err := fieldFromLE(le[:]); err != nil {
		return nil, err
	}

	// SetBytes reduces y and does not report a missing square root
	var a gb.PointAffine
	if _, err := a.SetBytes(buf); err != nil {
		return nil, errors.Wrap(ErrInvalidEncoding, err.Error())
	}
	if !a.IsOnCurve() {
		return nil, ErrNotOnCurve
	}
	if enc := a.Bytes(); !bytes.Equal(enc[:], buf) {
		return nil, errors.Wrap(ErrInvalidEncoding, "sign flag on zero x")
	}

	var p Point
	p.setAffine(&a)
	if p.IsIdentity() {
		return nil, errors.Wrap(ErrInvalidEncoding, "identity point")
	}
	if !p.IsInSubgroup() {
		return nil, ErrNotInSubgroup
	}
	return &p, nil
}

// Bytes returns the canonical compressed encoding of p.
func (p *Point) Bytes() [PointSize]byte {
	a := p.affine()
	return a.Bytes()
}

func fieldFromLE(buf []byte) (fr.Element, error) {
	var e fr.Element
	v := new(big.Int).SetBytes(reverse(buf))
	if v.Cmp(fr.Modulus()) >= 0 {
		return e, errors.Wrap(ErrInvalidEncoding, "field element out of range")
	}
	e.SetBigInt(v)
	return e, nil
}

func reverse(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i := range buf {
		out[i] = buf[len(buf)-1-i]
	}
	return out
}
