package bandersnatch

import (
	"math/big"

	"github.com/pkg/errors"
)

// ScalarFromBytes parses a canonical little-endian scalar (< Order).
func ScalarFromBytes(buf []byte) (*big.Int, error) {
	if len(buf) != ScalarSize {
		return nil, errors.Wrapf(ErrInvalidEncoding, "scalar length %d", len(buf))
	}
	k := new(big.Int).SetBytes(reverse(buf))
	if k.Cmp(Order) >= 0 {
		return nil, errors.Wrap(ErrInvalidEncoding, "scalar out of range")
	}
	return k, nil
}

// ScalarFromBytesReduce interprets buf as a little-endian integer of any
// length and reduces it modulo Order.
func ScalarFromBytesReduce(buf []byte) *big.Int {
	k := new(big.Int).SetBytes(reverse(buf))
	return k.Mod(k, Order)
}

// ScalarBytes returns the little-endian encoding of k mod Order.
func ScalarBytes(k *big.Int) [ScalarSize]byte {
	v := new(big.Int).Mod(k, Order)
	var be [ScalarSize]byte
	v.FillBytes(be[:])
	var out [ScalarSize]byte
	for i := range be {
		out[i] = be[ScalarSize-1-i]
	}
	return out
}
