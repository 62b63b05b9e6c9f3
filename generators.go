package ringvrf

import (
	"encoding/hex"
	"sync"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
)

type PedersenGens struct {
	B         *bandersnatch.Point
	BBlinding *bandersnatch.Point
}

// DefaultPedersenGens uses the curve generator for the secret and the
// blinding base for the blinding factor.
func DefaultPedersenGens() *PedersenGens {
	fixed := protocolPoints()
	return &PedersenGens{
		B:         bandersnatch.Generator(),
		BBlinding: fixed.blinding,
	}
}

// Compressed encodings of the suite's fixed points. All three lie in the
// prime order subgroup and have no known discrete log relation to the
// generator.
const (
	blindingBaseHex    = "e93da06b869766b158d20b843ec648cc68e0b7ba2f7083acf0f154205d04e23e"
	accumulatorSeedHex = "6e5574f9077fb76c885c36196a832dbadd64142d305be5487724967acf9595a0"
	paddingPointHex    = "92ca79e61dd90c1573a8693f199bf6e1e86835cc715cdcf93f5ef222560023aa"
)

type fixedPoints struct {
	blinding *bandersnatch.Point
	seed     *bandersnatch.Point
	padding  *bandersnatch.Point
}

var (
	fixedOnce sync.Once
	fixed     *fixedPoints
)

func mustFixedPoint(h string) *bandersnatch.Point {
	buf, err := hex.DecodeString(h)
	if err != nil {
		panic(err)
	}
	p, err := bandersnatch.Decode(buf)
	if err != nil {
		panic(err)
	}
	return p
}

func protocolPoints() *fixedPoints {
	fixedOnce.Do(func() {
		fixed = &fixedPoints{
			blinding: mustFixedPoint(blindingBaseHex),
			seed:     mustFixedPoint(accumulatorSeedHex),
			padding:  mustFixedPoint(paddingPointHex),
		}
	})
	return fixed
}

// BlindingBase returns the base H that blinds the committed ring key.
func BlindingBase() *bandersnatch.Point {
	var p bandersnatch.Point
	return p.Set(protocolPoints().blinding)
}

// PaddingPoint returns the placeholder filling unused ring slots.
func PaddingPoint() *bandersnatch.Point {
	var p bandersnatch.Point
	return p.Set(protocolPoints().padding)
}

// AccumulatorSeed returns the starting point of the conditional addition
// accumulator.
func AccumulatorSeed() *bandersnatch.Point {
	var p bandersnatch.Point
	return p.Set(protocolPoints().seed)
}

// blindingPowers returns H, 2H, 4H, ... with n elements.
func blindingPowers(n int) []*bandersnatch.Point {
	out := make([]*bandersnatch.Point, n)
	cur := BlindingBase()
	for i := range out {
		out[i] = cur
		var next bandersnatch.Point
		cur = next.Double(cur)
	}
	return out
}
