package bandersnatch

import (
	"math/big"
	"testing"

	gb "github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/stretchr/testify/assert"
)

func TestCurveParams(t *testing.T) {
	assert := assert.New(t)

	order, _ := new(big.Int).SetString("1cfb69d4ca675f520cce760202687600ff8f87007419047174fd06b52876e7e1", 16)
	assert.Equal(0, order.Cmp(Order))
	assert.Equal(ScalarBits, Order.BitLen())
	assert.True(Generator().IsOnCurve())
	assert.False(Generator().IsIdentity())
}

func TestScalarMultiplication(t *testing.T) {
	assert := assert.New(t)

	g := Generator()
	curve := gb.GetEdwardsCurve()
	for _, k := range []*big.Int{
		big.NewInt(1),
		big.NewInt(2),
		big.NewInt(123456789),
		new(big.Int).Lsh(big.NewInt(1), 200),
		new(big.Int).Sub(Order, big.NewInt(2)),
	} {
		var glv, ladder Point
		glv.ScalarMultiplication(g, k)
		ladder.mulVartime(g, k)
		assert.True(glv.Equal(&ladder), k.String())

		var ref gb.PointAffine
		ref.ScalarMultiplication(&curve.Base, k)
		assert.Equal(ref.Bytes(), glv.Bytes(), k.String())
	}

	var p Point
	assert.True(p.ScalarMultiplication(g, Order).IsIdentity())
	assert.True(p.ScalarMultiplication(g, big.NewInt(0)).IsIdentity())
	assert.True(p.ScalarMultiplication(Identity(), big.NewInt(5)).IsIdentity())

	// reduced modulo the order
	var q Point
	q.ScalarMultiplication(g, new(big.Int).Add(Order, big.NewInt(3)))
	p.ScalarMultiplication(g, big.NewInt(3))
	assert.True(p.Equal(&q))
	q.ScalarMultiplication(g, big.NewInt(-1))
	assert.True(q.Equal(p.Neg(g)))
}

func TestSubgroupCheck(t *testing.T) {
	assert := assert.New(t)

	// (0, -1) has order two
	var a gb.PointAffine
	a.Y.SetOne()
	a.Y.Neg(&a.Y)
	var two Point
	two.setAffine(&a)
	assert.True(two.IsOnCurve())
	assert.False(two.IsInSubgroup())

	var mixed Point
	mixed.Add(Generator(), &two)
	assert.False(mixed.IsInSubgroup())
	mixed.Double(&mixed)
	assert.True(mixed.IsInSubgroup())
}
