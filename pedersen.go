package ringvrf

import (
	"math/big"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/pkg/errors"
)

const PedersenProofSize = 3*bandersnatch.PointSize + 2*bandersnatch.ScalarSize

// PedersenProof proves that the key committed in PkCom = pk + b·H is the
// one that produced the VRF output.
type PedersenProof struct {
	PkCom *bandersnatch.Point
	R     *bandersnatch.Point
	Ok    *bandersnatch.Point
	S     *big.Int
	Sb    *big.Int
}

func (p *PedersenProof) Bytes() []byte {
	out := make([]byte, 0, PedersenProofSize)
	for _, pt := range []*bandersnatch.Point{p.PkCom, p.R, p.Ok} {
		b := pt.Bytes()
		out = append(out, b[:]...)
	}
	s := bandersnatch.ScalarBytes(p.S)
	sb := bandersnatch.ScalarBytes(p.Sb)
	out = append(out, s[:]...)
	return append(out, sb[:]...)
}

func parsePedersenProof(buf []byte) (*PedersenProof, error) {
	if len(buf) != PedersenProofSize {
		return nil, errors.Wrapf(ErrProofMalformed, "pedersen proof length %d", len(buf))
	}
	var p PedersenProof
	var err error
	off := 0
	for _, pt := range []**bandersnatch.Point{&p.PkCom, &p.R, &p.Ok} {
		if *pt, err = bandersnatch.Decode(buf[off : off+bandersnatch.PointSize]); err != nil {
			return nil, errors.Wrap(ErrProofMalformed, err.Error())
		}
		off += bandersnatch.PointSize
	}
	for _, s := range []**big.Int{&p.S, &p.Sb} {
		if *s, err = bandersnatch.ScalarFromBytes(buf[off : off+bandersnatch.ScalarSize]); err != nil {
			return nil, errors.Wrap(ErrProofMalformed, err.Error())
		}
		off += bandersnatch.ScalarSize
	}
	return &p, nil
}

// pedersenChallenge hashes the committed key, the VRF input and output and
// the proof nonces together with the additional data.
func pedersenChallenge(input, output *bandersnatch.Point, p *PedersenProof, ad []byte) *big.Int {
	return suiteChallenge([]*bandersnatch.Point{p.PkCom, input, output, p.R, p.Ok}, ad)
}

// verify checks O·c + Ok = I·s and PkCom·c + R = G·s + H·sb.
func (p *PedersenProof) verify(gens *PedersenGens, input, output *bandersnatch.Point, ad []byte) error {
	c := pedersenChallenge(input, output, p, ad)

	var lhs, rhs, t bandersnatch.Point
	lhs.ScalarMultiplication(output, c)
	lhs.Add(&lhs, p.Ok)
	rhs.ScalarMultiplication(input, p.S)
	if !lhs.Equal(&rhs) {
		return errors.Wrap(ErrVerificationFailed, "pedersen output")
	}

	lhs.ScalarMultiplication(p.PkCom, c)
	lhs.Add(&lhs, p.R)
	rhs.ScalarMultiplication(gens.B, p.S)
	t.ScalarMultiplication(gens.BBlinding, p.Sb)
	rhs.Add(&rhs, &t)
	if !lhs.Equal(&rhs) {
		return errors.Wrap(ErrVerificationFailed, "pedersen key")
	}
	return nil
}
