package bandersnatch

import (
	"crypto/sha512"

	gb "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

var (
	// Montgomery form K·t² = s³ + J·s² + s birationally equivalent to the
	// Edwards form.
	montJ, montK fr.Element
	montJOverK   fr.Element
	montInvK2    fr.Element
	ell2Z        fr.Element
)

func initMontgomery() {
	var amd, apd, four fr.Element
	amd.Sub(&params.A, &params.D)
	apd.Add(&params.A, &params.D)
	amd.Inverse(&amd)

	montJ.Double(&apd)
	montJ.Mul(&montJ, &amd)
	four.SetUint64(4)
	montK.Mul(&four, &amd)

	var kInv fr.Element
	kInv.Inverse(&montK)
	montJOverK.Mul(&montJ, &kInv)
	montInvK2.Square(&kInv)

	ell2Z.SetUint64(5)
}

// ExpandMessageXMD implements expand_message_xmd of RFC 9380 with SHA-512.
func ExpandMessageXMD(msg, dst []byte, n int) ([]byte, error) {
	const blockSize = 128
	ell := (n + sha512.Size - 1) / sha512.Size
	if ell > 255 || n > 65535 || len(dst) > 255 {
		return nil, errors.New("bandersnatch: expand_message_xmd parameters out of range")
	}
	dstPrime := append(append([]byte{}, dst...), byte(len(dst)))

	h := sha512.New()
	h.Write(make([]byte, blockSize))
	h.Write(msg)
	h.Write([]byte{byte(n >> 8), byte(n), 0})
	h.Write(dstPrime)
	b0 := h.Sum(nil)

	h.Reset()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dstPrime)
	bi := h.Sum(nil)

	out := make([]byte, 0, ell*sha512.Size)
	out = append(out, bi...)
	for i := 2; i <= ell; i++ {
		x := make([]byte, sha512.Size)
		for j := range x {
			x[j] = b0[j] ^ bi[j]
		}
		h.Reset()
		h.Write(x)
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		bi = h.Sum(nil)
		out = append(out, bi...)
	}
	return out[:n], nil
}

// HashToCurve implements the random oracle encoding of RFC 9380 with
// expand_message_xmd(SHA-512) and the Elligator 2 map.
func HashToCurve(msg, dst []byte) (*Point, error) {
	uniform, err := ExpandMessageXMD(msg, dst, 96)
	if err != nil {
		return nil, err
	}
	var u0, u1 fr.Element
	u0.SetBytes(uniform[:48])
	u1.SetBytes(uniform[48:])

	var p Point
	p.Add(MapToCurve(&u0), MapToCurve(&u1))
	return p.MulByCofactor(&p), nil
}

// MapToCurve maps a field element to the curve with Elligator 2. The result
// is not cofactor cleared.
func MapToCurve(u *fr.Element) *Point {
	var one, tv, x1, x2, gx1, gx2 fr.Element
	one.SetOne()

	tv.Square(u)
	tv.Mul(&tv, &ell2Z)
	tv.Add(&tv, &one)
	if tv.IsZero() {
		x1.Neg(&montJOverK)
	} else {
		tv.Inverse(&tv)
		x1.Mul(&montJOverK, &tv)
		x1.Neg(&x1)
	}
	montgomeryRHS(&gx1, &x1)
	x2.Add(&x1, &montJOverK)
	x2.Neg(&x2)
	montgomeryRHS(&gx2, &x2)

	var x, y fr.Element
	var sign uint64
	if gx1.Legendre() != -1 {
		x.Set(&x1)
		y.Sqrt(&gx1)
		sign = 1
	} else {
		x.Set(&x2)
		y.Sqrt(&gx2)
	}
	if parity(&y) != sign {
		y.Neg(&y)
	}

	var s, t fr.Element
	s.Mul(&x, &montK)
	t.Mul(&y, &montK)
	return fromMontgomery(&s, &t)
}

// montgomeryRHS sets z = x³ + (J/K)·x² + x/K².
func montgomeryRHS(z, x *fr.Element) {
	var x2, t fr.Element
	x2.Square(x)
	t.Add(x, &montJOverK)
	z.Mul(&x2, &t)
	t.Mul(x, &montInvK2)
	z.Add(z, &t)
}

func fromMontgomery(s, t *fr.Element) *Point {
	var one, sp1, sm1, den fr.Element
	one.SetOne()
	sp1.Add(s, &one)
	sm1.Sub(s, &one)
	den.Mul(t, &sp1)
	if den.IsZero() {
		return Identity()
	}
	den.Inverse(&den)

	var a gb.PointAffine
	a.X.Mul(s, &sp1)
	a.X.Mul(&a.X, &den)
	a.Y.Mul(t, &sm1)
	a.Y.Mul(&a.Y, &den)

	var p Point
	return p.setAffine(&a)
}

func parity(e *fr.Element) uint64 {
	b := e.Bytes()
	return uint64(b[len(b)-1] & 1)
}
