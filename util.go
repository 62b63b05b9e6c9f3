package ringvrf

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

type ScalarExp struct {
	X        fr.Element
	NextExpX fr.Element
}

func NewScalarExp(x *fr.Element) *ScalarExp {
	s := &ScalarExp{X: *x}
	s.NextExpX.SetOne()
	return s
}

func (s *ScalarExp) Next() fr.Element {
	r := s.NextExpX
	s.NextExpX.Mul(&s.NextExpX, &s.X)
	return r
}

// powers returns 1, x, x², ... with n elements.
func powers(x *fr.Element, n int) []fr.Element {
	out := make([]fr.Element, n)
	exp := NewScalarExp(x)
	for i := range out {
		out[i] = exp.Next()
	}
	return out
}

func ScalarExpVartime(x *fr.Element, n uint64) fr.Element {
	var result, aux fr.Element
	result.SetOne()
	aux.Set(x)

	for n > 0 {
		if n&1 == 1 {
			result.Mul(&result, &aux)
		}
		n = n >> 1
		aux.Square(&aux)
	}
	return result
}

// innerProduct returns Σ aᵢbᵢ.
func innerProduct(a, b []fr.Element) fr.Element {
	var r, t fr.Element
	for i := range a {
		t.Mul(&a[i], &b[i])
		r.Add(&r, &t)
	}
	return r
}
