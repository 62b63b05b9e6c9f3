package ringvrf

import (
	"encoding/binary"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/dchest/blake2b"
)

type Fingerprint [32]byte

// RingFingerprint identifies an ordered ring for a given ring size. Padding
// slots hash as the padding point.
func RingFingerprint(ringSize int, ring []*bandersnatch.Point) Fingerprint {
	hash := blake2b.New256()
	hash.Write([]byte(RING_FINGERPRINT_DOMAIN_TAG))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ringSize))
	hash.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(ring)))
	hash.Write(buf[:])
	padding := PaddingPoint().Bytes()
	for _, p := range ring {
		if p == nil {
			hash.Write(padding[:])
			continue
		}
		enc := p.Bytes()
		hash.Write(enc[:])
	}
	var f Fingerprint
	copy(f[:], hash.Sum(nil))
	return f
}
