package bandersnatch

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Weierstrass maps p to affine coordinates on the short Weierstrass model
// y² = x³ + A·x + B of the curve. The map is a group isomorphism away from
// the points with x = 0 or y = 1, for which ok is false.
func (p *Point) Weierstrass() (x, y fr.Element, ok bool) {
	ex, ey := p.Affine()
	if ex.IsZero() {
		return x, y, false
	}
	var one, num, den, u, v fr.Element
	one.SetOne()
	num.Add(&one, &ey)
	den.Sub(&one, &ey)
	if den.IsZero() {
		return x, y, false
	}
	den.Inverse(&den)
	u.Mul(&num, &den)
	v.Inverse(&ex)
	v.Mul(&v, &u)

	var kInv, three, shift fr.Element
	kInv.Inverse(&montK)
	three.SetUint64(3)
	shift.Mul(&three, &montK)
	shift.Inverse(&shift)
	shift.Mul(&shift, &montJ)

	x.Mul(&u, &kInv)
	x.Add(&x, &shift)
	y.Mul(&v, &kInv)
	return x, y, true
}

// WeierstrassCoefficients returns A and B of the short Weierstrass model.
func WeierstrassCoefficients() (a, b fr.Element) {
	var j2, k2, t, three, nine, twentySeven fr.Element
	three.SetUint64(3)
	nine.SetUint64(9)
	twentySeven.SetUint64(27)
	j2.Square(&montJ)
	k2.Square(&montK)

	// a = (3 - J²) / (3K²)
	a.Sub(&three, &j2)
	t.Mul(&three, &k2)
	t.Inverse(&t)
	a.Mul(&a, &t)

	// b = (2J³ - 9J) / (27K³)
	b.Mul(&j2, &montJ)
	b.Double(&b)
	t.Mul(&nine, &montJ)
	b.Sub(&b, &t)
	t.Mul(&k2, &montK)
	t.Mul(&t, &twentySeven)
	t.Inverse(&t)
	b.Mul(&b, &t)
	return a, b
}
