package ringvrf

import (
	"math/big"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/gtank/merlin"
	"github.com/pkg/errors"
)

const (
	constraintCount = 7
	// registers plus the quotient, opened together at zeta
	aggregatedCount = registerCount + 1
)

// ringProofTranscript derives the verifier challenges of a ring proof in
// the order the prover commits to its messages.
type ringProofTranscript struct {
	t *merlin.Transcript
}

func newRingProofTranscript(ctx *RingContext, commitment *RingCommitment, statement *big.Int, pkCom *bandersnatch.Point) *ringProofTranscript {
	t := InitialTranscript(RING_PROOF_DOMAIN_TAG)
	RingProofDomainSep(ctx.domainSize, commitment, statement, t)
	appendPoint("pk-com", pkCom, t)
	return &ringProofTranscript{t: t}
}

func (rt *ringProofTranscript) constraintChallenges(p *RingProof) [constraintCount]fr.Element {
	for i, c := range p.columnCommitments() {
		appendG1([]string{"bits", "inn-prod-acc", "cond-add-acc-x", "cond-add-acc-y"}[i], c, rt.t)
	}
	var alphas [constraintCount]fr.Element
	for i := range alphas {
		alphas[i] = challengeField("constraints-aggregation", rt.t)
	}
	return alphas
}

func (rt *ringProofTranscript) evaluationPoint(p *RingProof) fr.Element {
	appendG1("quotient", &p.Quotient, rt.t)
	return challengeField("evaluation-point", rt.t)
}

func (rt *ringProofTranscript) aggregationChallenges(p *RingProof) [aggregatedCount]fr.Element {
	for _, e := range p.Evaluations.fields() {
		appendField("register-evaluation", e, rt.t)
	}
	appendField("shifted-linearization-evaluation", &p.LinAtZetaOmega, rt.t)
	var nus [aggregatedCount]fr.Element
	for i := range nus {
		nus[i] = challengeField("kzg-aggregation", rt.t)
	}
	return nus
}

func (rt *ringProofTranscript) batchChallenge(p *RingProof) fr.Element {
	appendG1("kzg-proof-zeta", &p.AggAtZetaProof, rt.t)
	appendG1("kzg-proof-zeta-omega", &p.LinAtZetaOmegaProof, rt.t)
	return challengeField("kzg-batch", rt.t)
}

// piopPoint holds the values of the constraint system at the evaluation
// point that do not depend on shifted columns.
type piopPoint struct {
	zeta     fr.Element
	zn       fr.Element
	notLast  fr.Element
	first    fr.Element
	last     fr.Element
	vanisher fr.Element
}

func (ctx *RingContext) evaluationDomain(zeta *fr.Element) (*piopPoint, error) {
	pt := &piopPoint{zeta: *zeta}
	pt.zn = ctx.vanishing(zeta)
	if pt.zn.IsZero() {
		return nil, errors.Wrap(ErrVerificationFailed, "evaluation point in domain")
	}
	pt.notLast.Sub(zeta, &ctx.lastRow)
	pt.first, pt.last = ctx.lagrangeFirstLast(zeta, &pt.zn)
	pt.vanisher = ctx.constrainedVanishing(zeta, &pt.zn)
	return pt, nil
}

// linearization returns the coefficients of the shifted columns ip, ax
// and ay in the aggregated constraint.
func linearization(alphas *[constraintCount]fr.Element, e *RegisterEvaluations, pt *piopPoint) (kIp, kAx, kAy fr.Element) {
	var one, nb, dx, dy, t fr.Element
	one.SetOne()
	nb.Sub(&one, &e.Bits)
	dx.Sub(&e.Px, &e.CondAddAccX)
	dy.Sub(&e.Py, &e.CondAddAccY)

	kIp.Mul(&alphas[0], &pt.notLast)

	// α1·b·dx² + α2·(b·dy + 1 - b)
	kAx.Square(&dx)
	kAx.Mul(&kAx, &e.Bits)
	kAx.Mul(&kAx, &alphas[1])
	t.Mul(&e.Bits, &dy)
	t.Add(&t, &nb)
	t.Mul(&t, &alphas[2])
	kAx.Add(&kAx, &t)
	kAx.Mul(&kAx, &pt.notLast)

	// α1·(1 - b) + α2·b·dx
	kAy.Mul(&alphas[1], &nb)
	t.Mul(&e.Bits, &dx)
	t.Mul(&t, &alphas[2])
	kAy.Add(&kAy, &t)
	kAy.Mul(&kAy, &pt.notLast)
	return
}

// constantTerm evaluates the aggregated constraint at zeta with the shifted
// column terms removed.
func constantTerm(alphas *[constraintCount]fr.Element, e *RegisterEvaluations, pt *piopPoint, seedX, seedY, resX, resY *fr.Element) fr.Element {
	var one, nb, dx, dy, t, u, acc fr.Element
	one.SetOne()
	nb.Sub(&one, &e.Bits)
	dx.Sub(&e.Px, &e.CondAddAccX)
	dy.Sub(&e.Py, &e.CondAddAccY)

	// inner product: -(ip + b·sel)·nl
	t.Mul(&e.Bits, &e.Selector)
	t.Add(&t, &e.InnProdAcc)
	t.Neg(&t)
	t.Mul(&t, &pt.notLast)
	t.Mul(&t, &alphas[0])
	acc.Add(&acc, &t)

	// conditional addition x: b·((ax + px)·dx² - dy²) - (1 - b)·ay
	t.Add(&e.CondAddAccX, &e.Px)
	u.Square(&dx)
	t.Mul(&t, &u)
	u.Square(&dy)
	t.Sub(&t, &u)
	t.Mul(&t, &e.Bits)
	u.Mul(&nb, &e.CondAddAccY)
	t.Sub(&t, &u)
	t.Mul(&t, &pt.notLast)
	t.Mul(&t, &alphas[1])
	acc.Add(&acc, &t)

	// conditional addition y: b·(ay·dx - ax·dy) - (1 - b)·ax
	t.Mul(&e.CondAddAccY, &dx)
	u.Mul(&e.CondAddAccX, &dy)
	t.Sub(&t, &u)
	t.Mul(&t, &e.Bits)
	u.Mul(&nb, &e.CondAddAccX)
	t.Sub(&t, &u)
	t.Mul(&t, &pt.notLast)
	t.Mul(&t, &alphas[2])
	acc.Add(&acc, &t)

	// booleanity: b·(1 - b)
	t.Mul(&e.Bits, &nb)
	t.Mul(&t, &alphas[3])
	acc.Add(&acc, &t)

	// boundaries of the accumulators
	boundary := func(v, start, end, alpha *fr.Element) {
		var s, f fr.Element
		s.Sub(v, start)
		s.Mul(&s, &pt.first)
		f.Sub(v, end)
		f.Mul(&f, &pt.last)
		s.Add(&s, &f)
		s.Mul(&s, alpha)
		acc.Add(&acc, &s)
	}
	var zero fr.Element
	boundary(&e.CondAddAccX, seedX, resX, &alphas[4])
	boundary(&e.CondAddAccY, seedY, resY, &alphas[5])
	boundary(&e.InnProdAcc, &zero, &one, &alphas[6])
	return acc
}

// verifyRingProof checks that pkCom - r·H is one of the committed ring keys
// for some r.
func (ctx *RingContext) verifyRingProof(commitment *RingCommitment, statement *big.Int, pkCom *bandersnatch.Point, p *RingProof) error {
	var result bandersnatch.Point
	result.Add(ctx.seed, pkCom)
	resX, resY, ok := result.Weierstrass()
	if !ok {
		return errors.Wrap(ErrVerificationFailed, "accumulator result")
	}

	rt := newRingProofTranscript(ctx, commitment, statement, pkCom)
	alphas := rt.constraintChallenges(p)
	zeta := rt.evaluationPoint(p)
	nus := rt.aggregationChallenges(p)
	r := rt.batchChallenge(p)

	pt, err := ctx.evaluationDomain(&zeta)
	if err != nil {
		return err
	}
	e := &p.Evaluations
	kIp, kAx, kAy := linearization(&alphas, e, pt)
	constant := constantTerm(&alphas, e, pt, &ctx.seedX, &ctx.seedY, &resX, &resY)

	var quotientAtZeta fr.Element
	quotientAtZeta.Add(&constant, &p.LinAtZetaOmega)
	if pt.vanisher.IsZero() {
		return errors.Wrap(ErrVerificationFailed, "degenerate vanishing polynomial")
	}
	quotientAtZeta.Div(&quotientAtZeta, &pt.vanisher)

	var linCommitment bls12381.G1Affine
	if _, err := linCommitment.MultiExp(
		[]bls12381.G1Affine{p.InnProdAcc, p.CondAddAccX, p.CondAddAccY},
		[]fr.Element{kIp, kAx, kAy},
		ecc.MultiExpConfig{},
	); err != nil {
		return err
	}

	aggPoints := []bls12381.G1Affine{
		commitment.Px, commitment.Py, commitment.Selector,
		p.Bits, p.InnProdAcc, p.CondAddAccX, p.CondAddAccY, p.Quotient,
	}
	aggValues := []fr.Element{
		e.Px, e.Py, e.Selector, e.Bits, e.InnProdAcc, e.CondAddAccX, e.CondAddAccY, quotientAtZeta,
	}
	var aggCommitment bls12381.G1Affine
	if _, err := aggCommitment.MultiExp(aggPoints, nus[:], ecc.MultiExpConfig{}); err != nil {
		return err
	}
	aggValue := innerProduct(nus[:], aggValues)

	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &ctx.omega)
	valid, err := kzgBatchVerify(&ctx.vk, []kzgOpening{
		{commitment: aggCommitment, point: zeta, value: aggValue, proof: p.AggAtZetaProof},
		{commitment: linCommitment, point: zetaOmega, value: p.LinAtZetaOmega, proof: p.LinAtZetaOmegaProof},
	}, r)
	if err != nil {
		return err
	}
	if !valid {
		return errors.Wrap(ErrVerificationFailed, "ring proof")
	}
	return nil
}
