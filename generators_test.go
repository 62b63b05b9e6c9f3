package ringvrf

import (
	"testing"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerators(t *testing.T) {
	assert := assert.New(t)

	pg := DefaultPedersenGens()
	assert.True(pg.B.Equal(bandersnatch.Generator()))
	assert.True(pg.BBlinding.Equal(BlindingBase()))

	fixed := []*bandersnatch.Point{BlindingBase(), AccumulatorSeed(), PaddingPoint()}
	for i, p := range fixed {
		assert.True(p.IsOnCurve(), i)
		assert.True(p.IsInSubgroup(), i)
		assert.False(p.IsIdentity(), i)
		for j := i + 1; j < len(fixed); j++ {
			assert.False(p.Equal(fixed[j]))
		}
	}

	// fixed points are stable and returned by copy
	h := BlindingBase()
	h.Double(h)
	assert.False(h.Equal(BlindingBase()))

	// affine coordinates as published for the suite
	coords := []struct {
		p    *bandersnatch.Point
		x, y string
	}{
		{BlindingBase(),
			"6150229251051246713677296363717454238956877613358614224171740096471278798312",
			"28442734166467795856797249030329035618871580593056783094884474814923353898473"},
		{AccumulatorSeed(),
			"37805570861274048643170021838972902516980894313648523898085159469000338764576",
			"14738305321141000190236674389841754997202271418876976886494444739226156422510"},
		{PaddingPoint(),
			"26287722405578650394504321825321286533153045350760430979437739593351290020913",
			"19058981610000167534379068105702216971787064146691007947119244515951752366738"},
	}
	for i, c := range coords {
		var wantX, wantY fr.Element
		_, err := wantX.SetString(c.x)
		require.NoError(t, err)
		_, err = wantY.SetString(c.y)
		require.NoError(t, err)
		x, y := c.p.Affine()
		assert.True(x.Equal(&wantX), i)
		assert.True(y.Equal(&wantY), i)
	}

	hs := blindingPowers(4)
	var four bandersnatch.Point
	four.Double(hs[0])
	four.Double(&four)
	assert.True(hs[2].Equal(&four))
}
