package ringvrf

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/pkg/errors"
)

type kzgVerifierKey struct {
	g1    bls12381.G1Affine
	g2    bls12381.G2Affine
	tauG2 bls12381.G2Affine
}

// kzgOpening claims that the polynomial committed in commitment evaluates
// to value at point, with proof the commitment to the quotient.
type kzgOpening struct {
	commitment bls12381.G1Affine
	point      fr.Element
	value      fr.Element
	proof      bls12381.G1Affine
}

func kzgCommit(powers []bls12381.G1Affine, coeffs []fr.Element) (bls12381.G1Affine, error) {
	var c bls12381.G1Affine
	if len(coeffs) > len(powers) {
		return c, errors.Wrapf(ErrSRSTooSmall, "degree %d", len(coeffs)-1)
	}
	if _, err := c.MultiExp(powers[:len(coeffs)], coeffs, ecc.MultiExpConfig{}); err != nil {
		return c, err
	}
	return c, nil
}

// kzgBatchVerify checks all openings with one pairing product, combining
// them with powers of r:
// e(Σ rⁱ(Cᵢ - yᵢ·G + zᵢ·πᵢ), G₂) = e(Σ rⁱ·πᵢ, τG₂).
func kzgBatchVerify(vk *kzgVerifierKey, openings []kzgOpening, r fr.Element) (bool, error) {
	n := len(openings)
	points := make([]bls12381.G1Affine, 0, 2*n+1)
	scalars := make([]fr.Element, 0, 2*n+1)
	proofs := make([]bls12381.G1Affine, 0, n)
	weights := make([]fr.Element, 0, n)

	var ri, sumY fr.Element
	ri.SetOne()
	for i := range openings {
		o := &openings[i]
		var ry, rz fr.Element
		ry.Mul(&ri, &o.value)
		sumY.Add(&sumY, &ry)
		rz.Mul(&ri, &o.point)

		points = append(points, o.commitment, o.proof)
		scalars = append(scalars, ri, rz)
		proofs = append(proofs, o.proof)
		weights = append(weights, ri)
		ri.Mul(&ri, &r)
	}
	sumY.Neg(&sumY)
	points = append(points, vk.g1)
	scalars = append(scalars, sumY)

	var lhs, rhs bls12381.G1Affine
	if _, err := lhs.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return false, err
	}
	if _, err := rhs.MultiExp(proofs, weights, ecc.MultiExpConfig{}); err != nil {
		return false, err
	}
	rhs.Neg(&rhs)

	return bls12381.PairingCheck(
		[]bls12381.G1Affine{lhs, rhs},
		[]bls12381.G2Affine{vk.g2, vk.tauG2},
	)
}
