package ringvrf

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/pkg/errors"
)

const (
	g1UncompressedSize = 96
	g2UncompressedSize = 192
	maxSRSPoints       = 1 << 22
)

// SRS holds KZG parameters: powers of a secret tau in G1 and
// [1]G2, [tau]G2.
type SRS struct {
	G1 []bls12381.G1Affine
	G2 [2]bls12381.G2Affine
}

// LoadSRSFile reads an SRS in the uncompressed layout of LoadSRS.
func LoadSRSFile(path string) (*SRS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open SRS")
	}
	defer f.Close()
	return LoadSRS(bufio.NewReader(f))
}

// LoadSRS reads a little-endian u64 count followed by uncompressed G1
// points, then a count followed by uncompressed G2 points.
func LoadSRS(r io.Reader) (*SRS, error) {
	n1, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if n1 < 2 {
		return nil, errors.Wrapf(ErrSRSMalformed, "%d G1 powers", n1)
	}
	srs := &SRS{G1: make([]bls12381.G1Affine, n1)}
	buf := make([]byte, g2UncompressedSize)
	for i := range srs.G1 {
		if _, err := io.ReadFull(r, buf[:g1UncompressedSize]); err != nil {
			return nil, errors.Wrapf(ErrSRSMalformed, "G1 power %d: %v", i, err)
		}
		if _, err := srs.G1[i].SetBytes(buf[:g1UncompressedSize]); err != nil {
			return nil, errors.Wrapf(ErrSRSMalformed, "G1 power %d: %v", i, err)
		}
	}

	n2, err := readCount(r)
	if err != nil {
		return nil, err
	}
	if n2 < 2 {
		return nil, errors.Wrapf(ErrSRSMalformed, "%d G2 powers", n2)
	}
	for i := 0; i < int(n2); i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(ErrSRSMalformed, "G2 power %d: %v", i, err)
		}
		if i >= 2 {
			continue
		}
		if _, err := srs.G2[i].SetBytes(buf); err != nil {
			return nil, errors.Wrapf(ErrSRSMalformed, "G2 power %d: %v", i, err)
		}
	}
	return srs, nil
}

func readCount(r io.Reader) (int, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, errors.Wrapf(ErrSRSMalformed, "length prefix: %v", err)
	}
	n := binary.LittleEndian.Uint64(b[:])
	if n > maxSRSPoints {
		return 0, errors.Wrapf(ErrSRSMalformed, "length %d", n)
	}
	return int(n), nil
}

// WriteTo serializes the SRS in the layout read by LoadSRS.
func (s *SRS) WriteTo(w io.Writer) (int64, error) {
	var written int64
	write := func(b []byte) error {
		n, err := w.Write(b)
		written += int64(n)
		return err
	}
	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(s.G1)))
	if err := write(count[:]); err != nil {
		return written, err
	}
	for i := range s.G1 {
		b := s.G1[i].RawBytes()
		if err := write(b[:]); err != nil {
			return written, err
		}
	}
	binary.LittleEndian.PutUint64(count[:], uint64(len(s.G2)))
	if err := write(count[:]); err != nil {
		return written, err
	}
	for i := range s.G2 {
		b := s.G2[i].RawBytes()
		if err := write(b[:]); err != nil {
			return written, err
		}
	}
	return written, nil
}

// MaxDomainSize returns the largest evaluation domain whose quotient
// polynomial fits in the SRS.
func (s *SRS) MaxDomainSize() int {
	n := 1
	for 3*(2*n)+1 <= len(s.G1) {
		n *= 2
	}
	return n
}

// MaxRingSize returns the largest ring size the SRS can commit to.
func (s *SRS) MaxRingSize() int {
	return s.MaxDomainSize() - blindingBits - zkRows - 1
}
