package ringvrf

import (
	"math/big"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/pkg/errors"
)

const IetfSignatureSize = bandersnatch.PointSize + 2*bandersnatch.ScalarSize

// IetfSignature is a non-anonymous VRF signature: the output point and a
// Schnorr-like proof (c, s) tying it to one public key.
type IetfSignature struct {
	Output *bandersnatch.Point
	C      *big.Int
	S      *big.Int
}

func (sig *IetfSignature) Bytes() []byte {
	out := make([]byte, 0, IetfSignatureSize)
	o := sig.Output.Bytes()
	c := bandersnatch.ScalarBytes(sig.C)
	s := bandersnatch.ScalarBytes(sig.S)
	out = append(out, o[:]...)
	out = append(out, c[:]...)
	return append(out, s[:]...)
}

func ParseIetfSignature(buf []byte) (*IetfSignature, error) {
	if len(buf) != IetfSignatureSize {
		return nil, errors.Wrapf(ErrProofMalformed, "ietf signature length %d", len(buf))
	}
	output, err := bandersnatch.Decode(buf[:bandersnatch.PointSize])
	if err != nil {
		return nil, errors.Wrap(ErrProofMalformed, err.Error())
	}
	off := bandersnatch.PointSize
	c, err := bandersnatch.ScalarFromBytes(buf[off : off+bandersnatch.ScalarSize])
	if err != nil {
		return nil, errors.Wrap(ErrProofMalformed, err.Error())
	}
	off += bandersnatch.ScalarSize
	s, err := bandersnatch.ScalarFromBytes(buf[off:])
	if err != nil {
		return nil, errors.Wrap(ErrProofMalformed, err.Error())
	}
	return &IetfSignature{Output: output, C: c, S: s}, nil
}

// VerifyIetf checks sig against public for the given input point and
// auxiliary data: with U = G·s - Y·c and V = I·s - O·c, the challenge of
// (Y, I, O, U, V) must equal c.
func VerifyIetf(public, input *bandersnatch.Point, auxData []byte, sig *IetfSignature) error {
	var u, v, t bandersnatch.Point
	u.ScalarMultiplication(bandersnatch.Generator(), sig.S)
	t.ScalarMultiplication(public, sig.C)
	u.Sub(&u, &t)

	v.ScalarMultiplication(input, sig.S)
	t.ScalarMultiplication(sig.Output, sig.C)
	v.Sub(&v, &t)

	c := suiteChallenge([]*bandersnatch.Point{public, input, sig.Output, &u, &v}, auxData)
	if c.Cmp(sig.C) != 0 {
		return ErrVerificationFailed
	}
	return nil
}
