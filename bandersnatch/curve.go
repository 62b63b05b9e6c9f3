// Package bandersnatch wraps the Bandersnatch curve of gnark-crypto with
// the strict encoding and hashing rules of the ring VRF suite.
package bandersnatch

import (
	"math/big"

	gb "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	// PointSize is the length of a compressed point.
	PointSize = 32
	// ScalarSize is the length of an encoded scalar.
	ScalarSize = 32
	// ScalarBits is the bit length of the prime subgroup order.
	ScalarBits = 253
	Cofactor   = 4
)

var (
	params gb.CurveParams

	// Order is the order of the prime subgroup.
	Order *big.Int
)

func init() {
	params = gb.GetEdwardsCurve()
	Order = new(big.Int).Set(&params.Order)
	initMontgomery()
}

// Point is a curve point in extended twisted Edwards coordinates.
type Point struct {
	e gb.PointExtended
}

// Generator returns the conventional generator of the prime subgroup.
func Generator() *Point {
	var p Point
	p.e.FromAffine(&params.Base)
	return &p
}

// Identity returns the neutral element (0, 1).
func Identity() *Point {
	var p Point
	return p.SetIdentity()
}

func (p *Point) SetIdentity() *Point {
	p.e.X.SetZero()
	p.e.Y.SetOne()
	p.e.T.SetZero()
	p.e.Z.SetOne()
	return p
}

func (p *Point) Set(q *Point) *Point {
	p.e.Set(&q.e)
	return p
}

func (p *Point) setAffine(a *gb.PointAffine) *Point {
	p.e.FromAffine(a)
	return p
}

func (p *Point) affine() gb.PointAffine {
	var a gb.PointAffine
	a.FromExtended(&p.e)
	return a
}

// Affine returns the affine coordinates of p.
func (p *Point) Affine() (x, y fr.Element) {
	a := p.affine()
	return a.X, a.Y
}

func (p *Point) Add(q, r *Point) *Point {
	p.e.Add(&q.e, &r.e)
	return p
}

func (p *Point) Double(q *Point) *Point {
	p.e.Double(&q.e)
	return p
}

func (p *Point) Neg(q *Point) *Point {
	p.e.Neg(&q.e)
	return p
}

func (p *Point) Sub(q, r *Point) *Point {
	var n Point
	n.Neg(r)
	return p.Add(q, &n)
}

// ScalarMultiplication sets p = [k]q. q must lie in the prime subgroup,
// where the GLV endomorphism of gnark-crypto is valid. It is not constant
// time and is only used on public data.
func (p *Point) ScalarMultiplication(q *Point, k *big.Int) *Point {
	r := new(big.Int).Mod(k, Order)
	if r.Sign() == 0 || q.IsIdentity() {
		return p.SetIdentity()
	}
	p.e.ScalarMultiplication(&q.e, r)
	return p
}

// mulVartime computes [k]q by double-and-add. Unlike ScalarMultiplication
// it is correct for points outside the prime subgroup.
func (p *Point) mulVartime(q *Point, k *big.Int) *Point {
	var acc Point
	acc.SetIdentity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) == 1 {
			acc.Add(&acc, q)
		}
	}
	return p.Set(&acc)
}

// MulByCofactor sets p = [4]q.
func (p *Point) MulByCofactor(q *Point) *Point {
	p.Double(q)
	return p.Double(p)
}

func (p *Point) Equal(q *Point) bool {
	return p.e.Equal(&q.e)
}

func (p *Point) IsIdentity() bool {
	return p.e.IsZero()
}

func (p *Point) IsOnCurve() bool {
	a := p.affine()
	return a.IsOnCurve()
}

// IsInSubgroup reports whether [Order]p is the identity.
func (p *Point) IsInSubgroup() bool {
	var r Point
	r.mulVartime(p, Order)
	return r.IsIdentity()
}
