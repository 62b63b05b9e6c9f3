package ringvrf

import (
	"crypto/rand"
	"crypto/sha512"
	"math/big"
	"sync"
	"testing"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const testRingSize = 8

var (
	testSRSOnce sync.Once
	testSRSVal  *SRS
	testCtxOnce sync.Once
	testCtxVal  *RingContext
)

// testSRS generates KZG parameters from a fixed trapdoor. Never use such
// parameters outside tests.
func testSRS(t *testing.T) *SRS {
	testSRSOnce.Do(func() {
		var seed [64]byte
		sha3.ShakeSum256(seed[:], []byte("ringvrf test trapdoor"))
		var tau fr.Element
		tau.SetBytes(seed[:])

		n := 3*domainSizeFor(testRingSize) + 1
		_, g2Jac, g1, g2 := bls12381.Generators()
		testSRSVal = &SRS{G1: bls12381.BatchScalarMultiplicationG1(&g1, powers(&tau, n))}

		var tauBig big.Int
		tau.BigInt(&tauBig)
		var tauG2 bls12381.G2Jac
		tauG2.ScalarMultiplication(&g2Jac, &tauBig)
		testSRSVal.G2[0] = g2
		testSRSVal.G2[1].FromJacobian(&tauG2)
	})
	return testSRSVal
}

func testContext(t *testing.T) *RingContext {
	testCtxOnce.Do(func() {
		ctx, err := NewRingContext(testSRS(t), testRingSize)
		require.NoError(t, err)
		testCtxVal = ctx
	})
	require.NotNil(t, testCtxVal)
	return testCtxVal
}

type testSigner struct {
	secret *big.Int
	public *bandersnatch.Point
}

func newTestSigner(seed string) *testSigner {
	h := sha512.Sum512([]byte(seed))
	sk := bandersnatch.ScalarFromBytesReduce(h[:])
	var pk bandersnatch.Point
	pk.ScalarMultiplication(bandersnatch.Generator(), sk)
	return &testSigner{secret: sk, public: &pk}
}

func testRing(n int, prefix string) ([]*testSigner, []*bandersnatch.Point) {
	signers := make([]*testSigner, n)
	keys := make([]*bandersnatch.Point, n)
	for i := range signers {
		signers[i] = newTestSigner(prefix + string(rune('a'+i)))
		keys[i] = signers[i].public
	}
	return signers, keys
}

func randomScalar(t *testing.T) *big.Int {
	k, err := rand.Int(rand.Reader, bandersnatch.Order)
	require.NoError(t, err)
	return k
}

func randomField(t *testing.T) fr.Element {
	var e fr.Element
	_, err := e.SetRandom()
	require.NoError(t, err)
	return e
}

func mulMod(a, b, c *big.Int) *big.Int {
	r := new(big.Int).Mul(b, c)
	r.Add(r, a)
	return r.Mod(r, bandersnatch.Order)
}

func (s *testSigner) proveIetf(t *testing.T, vrfInput, auxData []byte) []byte {
	input, err := InputPoint(vrfInput)
	require.NoError(t, err)
	var output, u, v bandersnatch.Point
	output.ScalarMultiplication(input, s.secret)

	k := randomScalar(t)
	u.ScalarMultiplication(bandersnatch.Generator(), k)
	v.ScalarMultiplication(input, k)
	c := suiteChallenge([]*bandersnatch.Point{s.public, input, &output, &u, &v}, auxData)

	sig := &IetfSignature{Output: &output, C: c, S: mulMod(k, c, s.secret)}
	return sig.Bytes()
}

// proveRing signs for the ring member at index.
func (s *testSigner) proveRing(t *testing.T, ctx *RingContext, ring []*bandersnatch.Point, index int, vrfInput, auxData []byte) []byte {
	require.True(t, ring[index].Equal(s.public))
	input, err := InputPoint(vrfInput)
	require.NoError(t, err)
	var output bandersnatch.Point
	output.ScalarMultiplication(input, s.secret)

	commitment, err := ctx.Commit(ring)
	require.NoError(t, err)
	statement := Challenge(commitment, vrfInput, auxData)

	gens := DefaultPedersenGens()
	blinding := randomScalar(t)
	var pkCom, t0 bandersnatch.Point
	pkCom.ScalarMultiplication(gens.BBlinding, blinding)
	pkCom.Add(&pkCom, s.public)

	k, kb := randomScalar(t), randomScalar(t)
	var r, ok bandersnatch.Point
	r.ScalarMultiplication(gens.B, k)
	t0.ScalarMultiplication(gens.BBlinding, kb)
	r.Add(&r, &t0)
	ok.ScalarMultiplication(input, k)
	pedersen := &PedersenProof{PkCom: &pkCom, R: &r, Ok: &ok}
	c := pedersenChallenge(input, &output, pedersen, auxData)
	pedersen.S = mulMod(k, c, s.secret)
	pedersen.Sb = mulMod(kb, c, blinding)

	sig := &RingSignature{
		Output:   &output,
		Pedersen: pedersen,
		Ring:     proveMembership(t, ctx, commitment, statement, ring, index, blinding, &pkCom),
	}
	return sig.Bytes()
}

func proveMembership(t *testing.T, ctx *RingContext, commitment *RingCommitment, statement *big.Int, ring []*bandersnatch.Point, index int, blinding *big.Int, pkCom *bandersnatch.Point) *RingProof {
	n, capacity := ctx.domainSize, ctx.capacity

	// Edwards points of every constrained row
	rows := make([]*bandersnatch.Point, 0, capacity-1)
	for i := 0; i < ctx.keysetPart; i++ {
		if i < len(ring) && ring[i] != nil {
			rows = append(rows, ring[i])
		} else {
			rows = append(rows, PaddingPoint())
		}
	}
	rows = append(rows, blindingPowers(blindingBits)...)
	require.Len(t, rows, capacity-1)

	px, py, err := ctx.keyColumns(ring)
	require.NoError(t, err)

	bits := make([]fr.Element, n)
	bits[index].SetOne()
	for j := 0; j < blindingBits; j++ {
		bits[ctx.keysetPart+j].SetUint64(uint64(blinding.Bit(j)))
	}
	ip := make([]fr.Element, n)
	ax := make([]fr.Element, n)
	ay := make([]fr.Element, n)
	acc := AccumulatorSeed()
	for i := 0; i < capacity; i++ {
		ax[i], ay[i], _ = acc.Weierstrass()
		if i == capacity-1 {
			break
		}
		var t fr.Element
		t.Mul(&bits[i], &ctx.selector[i])
		ip[i+1].Add(&ip[i], &t)
		if bits[i].IsOne() {
			var next bandersnatch.Point
			acc = next.Add(acc, rows[i])
		}
	}
	var expected bandersnatch.Point
	expected.Add(AccumulatorSeed(), pkCom)
	require.True(t, acc.Equal(&expected))
	require.True(t, ip[capacity-1].IsOne())
	for i := capacity; i < n; i++ {
		bits[i], ip[i], ax[i], ay[i] = randomField(t), randomField(t), randomField(t), randomField(t)
	}

	cols := make([][]fr.Element, registerCount)
	for i, evals := range [][]fr.Element{px, py, ctx.selector, bits, ip, ax, ay} {
		cols[i] = ctx.interpolate(evals)
	}
	const (
		colPx = iota
		colPy
		colSel
		colBits
		colIp
		colAx
		colAy
	)

	proof := &RingProof{}
	for i, c := range proof.columnCommitments() {
		*c, err = kzgCommit(ctx.powers, cols[colBits+i])
		require.NoError(t, err)
	}
	rt := newRingProofTranscript(ctx, commitment, statement, pkCom)
	alphas := rt.constraintChallenges(proof)

	quotient := quotientPolynomial(t, ctx, cols, &alphas, pkCom)
	require.LessOrEqual(t, len(quotient), len(ctx.powers))
	proof.Quotient, err = kzgCommit(ctx.powers, quotient)
	require.NoError(t, err)
	zeta := rt.evaluationPoint(proof)

	e := &proof.Evaluations
	for i, f := range e.fields() {
		*f = evalPoly(cols[i], &zeta)
	}
	pt, err := ctx.evaluationDomain(&zeta)
	require.NoError(t, err)
	kIp, kAx, kAy := linearization(&alphas, e, pt)
	lin := make([]fr.Element, n)
	for i := range lin {
		var a, b, c fr.Element
		a.Mul(&kIp, &cols[colIp][i])
		b.Mul(&kAx, &cols[colAx][i])
		c.Mul(&kAy, &cols[colAy][i])
		lin[i].Add(&a, &b).Add(&lin[i], &c)
	}
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &ctx.omega)
	proof.LinAtZetaOmega = evalPoly(lin, &zetaOmega)

	nus := rt.aggregationChallenges(proof)
	agg := make([]fr.Element, len(quotient))
	for i, poly := range append(cols, quotient) {
		for j := range poly {
			var t fr.Element
			t.Mul(&nus[i], &poly[j])
			agg[j].Add(&agg[j], &t)
		}
	}
	proof.AggAtZetaProof, err = kzgCommit(ctx.powers, divideByLinear(agg, &zeta))
	require.NoError(t, err)
	proof.LinAtZetaOmegaProof, err = kzgCommit(ctx.powers, divideByLinear(lin, &zetaOmega))
	require.NoError(t, err)
	return proof
}

// quotientPolynomial divides the aggregated constraint by the vanishing
// polynomial of the constrained rows, working on a coset of size 4n.
func quotientPolynomial(t *testing.T, ctx *RingContext, cols [][]fr.Element, alphas *[constraintCount]fr.Element, pkCom *bandersnatch.Point) []fr.Element {
	n := ctx.domainSize
	m := 4 * n
	d4 := fft.NewDomain(uint64(m))
	shift := d4.FrMultiplicativeGen
	shifts := powers(&shift, m)

	evalOnCoset := func(coeffs []fr.Element, scale *fr.Element) []fr.Element {
		out := make([]fr.Element, m)
		exp := NewScalarExp(scale)
		for i := range coeffs {
			s := exp.Next()
			out[i].Mul(&coeffs[i], &shifts[i])
			out[i].Mul(&out[i], &s)
		}
		d4.FFT(out, fft.DIF)
		fft.BitReverse(out)
		return out
	}
	var one fr.Element
	one.SetOne()
	px := evalOnCoset(cols[0], &one)
	py := evalOnCoset(cols[1], &one)
	sel := evalOnCoset(cols[2], &one)
	b := evalOnCoset(cols[3], &one)
	ip := evalOnCoset(cols[4], &one)
	ax := evalOnCoset(cols[5], &one)
	ay := evalOnCoset(cols[6], &one)
	ipw := evalOnCoset(cols[4], &ctx.omega)
	axw := evalOnCoset(cols[5], &ctx.omega)
	ayw := evalOnCoset(cols[6], &ctx.omega)

	var result bandersnatch.Point
	result.Add(ctx.seed, pkCom)
	resX, resY, ok := result.Weierstrass()
	require.True(t, ok)

	out := make([]fr.Element, m)
	x := shift
	for j := 0; j < m; j++ {
		pt := &piopPoint{zeta: x}
		pt.zn = ctx.vanishing(&x)
		pt.notLast.Sub(&x, &ctx.lastRow)
		pt.first, pt.last = ctx.lagrangeFirstLast(&x, &pt.zn)
		pt.vanisher = ctx.constrainedVanishing(&x, &pt.zn)

		e := &RegisterEvaluations{
			Px: px[j], Py: py[j], Selector: sel[j], Bits: b[j],
			InnProdAcc: ip[j], CondAddAccX: ax[j], CondAddAccY: ay[j],
		}
		kIp, kAx, kAy := linearization(alphas, e, pt)
		c := constantTerm(alphas, e, pt, &ctx.seedX, &ctx.seedY, &resX, &resY)
		var s fr.Element
		s.Mul(&kIp, &ipw[j])
		c.Add(&c, &s)
		s.Mul(&kAx, &axw[j])
		c.Add(&c, &s)
		s.Mul(&kAy, &ayw[j])
		c.Add(&c, &s)
		out[j].Div(&c, &pt.vanisher)

		x.Mul(&x, &d4.Generator)
	}

	d4.FFTInverse(out, fft.DIF)
	fft.BitReverse(out)
	var shiftInv fr.Element
	shiftInv.Inverse(&shift)
	unshift := powers(&shiftInv, m)
	for i := range out {
		out[i].Mul(&out[i], &unshift[i])
	}
	for i := 3*n + 1; i < m; i++ {
		require.True(t, out[i].IsZero(), "quotient degree")
	}
	return out[:3*n+1]
}

// divideByLinear returns (p(X) - p(z)) / (X - z).
func divideByLinear(p []fr.Element, z *fr.Element) []fr.Element {
	if len(p) < 2 {
		return []fr.Element{}
	}
	q := make([]fr.Element, len(p)-1)
	var carry fr.Element
	for i := len(p) - 1; i >= 1; i-- {
		carry.Mul(&carry, z)
		carry.Add(&carry, &p[i])
		q[i-1] = carry
	}
	return q
}
