package ringvrf

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

const fieldSize = fr.Bytes

// fieldFromBytes parses a canonical little-endian field element.
func fieldFromBytes(buf []byte) (fr.Element, error) {
	var e fr.Element
	if len(buf) != fieldSize {
		return e, errors.Wrapf(ErrProofMalformed, "field element length %d", len(buf))
	}
	be := make([]byte, fieldSize)
	for i := range buf {
		be[i] = buf[fieldSize-1-i]
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(fr.Modulus()) >= 0 {
		return e, errors.Wrap(ErrProofMalformed, "field element out of range")
	}
	e.SetBigInt(v)
	return e, nil
}

func fieldBytes(e *fr.Element) [fieldSize]byte {
	be := e.Bytes()
	var out [fieldSize]byte
	for i := range be {
		out[i] = be[fieldSize-1-i]
	}
	return out
}

// fieldFromBytesWide reduces a little-endian byte string of any length.
func fieldFromBytesWide(data []byte) fr.Element {
	be := make([]byte, len(data))
	for i := range data {
		be[i] = data[len(data)-1-i]
	}
	var e fr.Element
	e.SetBigInt(new(big.Int).SetBytes(be))
	return e
}

func nextPowerOfTwo(v int) int {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
