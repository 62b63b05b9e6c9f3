package ringvrf

import (
	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/pkg/errors"
)

const (
	// rows at the end of the domain left unconstrained for blinding
	zkRows = 3
	// rows reserved for the bits of the key blinding factor
	blindingBits = bandersnatch.ScalarBits
	// default ring size of the ticket protocol
	DefaultRingSize = 1023
)

// RingContext holds the scheme parameters shared by every ring of a given
// maximum size: evaluation domain, KZG key and the fixed column content.
type RingContext struct {
	ringSize   int
	domainSize int
	capacity   int
	keysetPart int

	domain  *fft.Domain
	omega   fr.Element
	lastRow fr.Element
	zkPoint []fr.Element

	powers []bls12381.G1Affine
	vk     kzgVerifierKey

	paddingX, paddingY   fr.Element
	blindingX, blindingY []fr.Element
	seed                 *bandersnatch.Point
	seedX, seedY         fr.Element

	selector           []fr.Element
	selectorCommitment bls12381.G1Affine
}

// domainSizeFor returns the evaluation domain size for rings of up to
// ringSize keys.
func domainSizeFor(ringSize int) int {
	return nextPowerOfTwo(ringSize + blindingBits + zkRows + 1)
}

// NewRingContext derives the parameters for rings of up to ringSize keys.
func NewRingContext(srs *SRS, ringSize int) (*RingContext, error) {
	if ringSize < 1 {
		return nil, errors.Wrapf(ErrEmptyRing, "ring size %d", ringSize)
	}
	if limit := srs.MaxRingSize(); ringSize > limit {
		return nil, errors.Wrapf(ErrSRSTooSmall, "ring size %d, SRS supports %d", ringSize, limit)
	}
	n := domainSizeFor(ringSize)

	ctx := &RingContext{
		ringSize:   ringSize,
		domainSize: n,
		capacity:   n - zkRows,
		keysetPart: n - zkRows - blindingBits - 1,
		domain:     fft.NewDomain(uint64(n)),
		powers:     srs.G1[:3*n+1],
		vk: kzgVerifierKey{
			g1:    srs.G1[0],
			g2:    srs.G2[0],
			tauG2: srs.G2[1],
		},
	}
	ctx.omega.Set(&ctx.domain.Generator)
	ctx.lastRow = ScalarExpVartime(&ctx.omega, uint64(ctx.capacity-1))
	ctx.zkPoint = make([]fr.Element, 0, zkRows)
	for i := ctx.capacity; i < n; i++ {
		ctx.zkPoint = append(ctx.zkPoint, ScalarExpVartime(&ctx.omega, uint64(i)))
	}

	var ok bool
	if ctx.paddingX, ctx.paddingY, ok = PaddingPoint().Weierstrass(); !ok {
		return nil, errors.New("ringvrf: padding point has no Weierstrass image")
	}
	ctx.seed = AccumulatorSeed()
	if ctx.seedX, ctx.seedY, ok = ctx.seed.Weierstrass(); !ok {
		return nil, errors.New("ringvrf: accumulator seed has no Weierstrass image")
	}
	hs := blindingPowers(blindingBits)
	ctx.blindingX = make([]fr.Element, blindingBits)
	ctx.blindingY = make([]fr.Element, blindingBits)
	for i, h := range hs {
		ctx.blindingX[i], ctx.blindingY[i], _ = h.Weierstrass()
	}

	ctx.selector = make([]fr.Element, n)
	for i := 0; i < ctx.keysetPart; i++ {
		ctx.selector[i].SetOne()
	}
	var err error
	ctx.selectorCommitment, err = ctx.commitEvaluations(ctx.selector)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (ctx *RingContext) RingSize() int {
	return ctx.ringSize
}

func (ctx *RingContext) DomainSize() int {
	return ctx.domainSize
}

// keyColumns lays out the Weierstrass coordinates of the ring keys, the
// padding and the blinding base powers over the domain. A nil key is a
// padding slot.
func (ctx *RingContext) keyColumns(keys []*bandersnatch.Point) (px, py []fr.Element, err error) {
	if len(keys) == 0 {
		return nil, nil, ErrEmptyRing
	}
	if len(keys) > ctx.ringSize {
		return nil, nil, errors.Wrapf(ErrRingTooLarge, "%d keys, ring size %d", len(keys), ctx.ringSize)
	}
	px = make([]fr.Element, ctx.domainSize)
	py = make([]fr.Element, ctx.domainSize)
	for i := 0; i < ctx.keysetPart; i++ {
		if i >= len(keys) || keys[i] == nil {
			px[i], py[i] = ctx.paddingX, ctx.paddingY
			continue
		}
		x, y, ok := keys[i].Weierstrass()
		if !ok {
			return nil, nil, errors.Wrapf(bandersnatch.ErrInvalidEncoding, "ring key %d", i)
		}
		px[i], py[i] = x, y
	}
	copy(px[ctx.keysetPart:], ctx.blindingX)
	copy(py[ctx.keysetPart:], ctx.blindingY)
	return px, py, nil
}

// interpolate turns evaluations over the domain into coefficients.
func (ctx *RingContext) interpolate(evals []fr.Element) []fr.Element {
	coeffs := make([]fr.Element, ctx.domainSize)
	copy(coeffs, evals)
	ctx.domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

func (ctx *RingContext) commitEvaluations(evals []fr.Element) (bls12381.G1Affine, error) {
	return kzgCommit(ctx.powers, ctx.interpolate(evals))
}

// vanishing returns ζⁿ - 1.
func (ctx *RingContext) vanishing(zeta *fr.Element) fr.Element {
	var one fr.Element
	one.SetOne()
	v := ScalarExpVartime(zeta, uint64(ctx.domainSize))
	v.Sub(&v, &one)
	return v
}

// lagrangeFirstLast evaluates the Lagrange basis polynomials of rows 0 and
// capacity-1 at zeta, given zn = ζⁿ - 1 ≠ 0.
func (ctx *RingContext) lagrangeFirstLast(zeta, zn *fr.Element) (first, last fr.Element) {
	var one, nf, den fr.Element
	one.SetOne()
	nf.SetUint64(uint64(ctx.domainSize))

	den.Sub(zeta, &one)
	den.Mul(&den, &nf)
	den.Inverse(&den)
	first.Mul(zn, &den)

	den.Sub(zeta, &ctx.lastRow)
	den.Mul(&den, &nf)
	den.Inverse(&den)
	last.Mul(zn, &den)
	last.Mul(&last, &ctx.lastRow)
	return
}

// constrainedVanishing evaluates (Xⁿ - 1) / Π(X - ωⁱ) over the
// unconstrained rows at zeta.
func (ctx *RingContext) constrainedVanishing(zeta, zn *fr.Element) fr.Element {
	var den, t fr.Element
	den.SetOne()
	for i := range ctx.zkPoint {
		t.Sub(zeta, &ctx.zkPoint[i])
		den.Mul(&den, &t)
	}
	den.Inverse(&den)
	den.Mul(&den, zn)
	return den
}
