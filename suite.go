package ringvrf

import (
	"crypto/sha512"
	"math/big"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
)

const (
	SUITE_ID                    = "Bandersnatch_SHA-512_ELL2"
	H2C_SUITE_ID                = "Bandersnatch_XMD:SHA-512_ELL2_RO_"
	RING_VRF_DOMAIN_TAG         = "Bandersnatch_SHA-512_ELL2_ring_vrf"
	RING_PROOF_DOMAIN_TAG       = "Bandersnatch_SHA-512_ELL2_ring_proof"
	RING_FINGERPRINT_DOMAIN_TAG = "ring_vrf_ring_fingerprint"

	OutputSize = 32
)

const (
	challengeDomain = 0x02
	outputDomain    = 0x03
	suffixDomain    = 0x00
	challengeLen    = 32
)

// InputPoint maps VRF input data to a curve point.
func InputPoint(data []byte) (*bandersnatch.Point, error) {
	dst := "ECVRF_" + H2C_SUITE_ID + SUITE_ID
	return bandersnatch.HashToCurve(data, []byte(dst))
}

// suiteChallenge hashes the encoded points and additional data into a
// scalar of challengeLen bytes.
func suiteChallenge(points []*bandersnatch.Point, ad []byte) *big.Int {
	h := sha512.New()
	h.Write([]byte(SUITE_ID))
	h.Write([]byte{challengeDomain})
	for _, p := range points {
		enc := p.Bytes()
		h.Write(enc[:])
	}
	h.Write(ad)
	h.Write([]byte{suffixDomain})
	return bandersnatch.ScalarFromBytesReduce(h.Sum(nil)[:challengeLen])
}

// OutputHash derives the VRF output bytes from the output point.
func OutputHash(output *bandersnatch.Point) [OutputSize]byte {
	h := sha512.New()
	h.Write([]byte(SUITE_ID))
	h.Write([]byte{outputDomain})
	enc := output.Bytes()
	h.Write(enc[:])
	h.Write([]byte{suffixDomain})
	var out [OutputSize]byte
	copy(out[:], h.Sum(nil))
	return out
}
