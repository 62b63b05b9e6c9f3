package ringvrf

import (
	"sync/atomic"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
	"github.com/pkg/errors"
)

type Option func(*options)

type options struct {
	logger Logger
}

func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) *options {
	o := &options{logger: NewNopLogger()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Verifier checks ring VRF signatures against one ring commitment. It is
// immutable after construction and safe for concurrent use until Release.
type Verifier struct {
	ctx        *RingContext
	gens       *PedersenGens
	commitment *RingCommitment
	ring       []*bandersnatch.Point
	released   atomic.Bool
	logger     Logger
}

// NewVerifier commits to the ordered ring. Nil keys are padding slots.
func NewVerifier(ctx *RingContext, ring []*bandersnatch.Point, opts ...Option) (*Verifier, error) {
	commitment, err := ctx.Commit(ring)
	if err != nil {
		return nil, err
	}
	v := NewVerifierFromCommitment(ctx, commitment, opts...)
	v.ring = append([]*bandersnatch.Point{}, ring...)
	return v, nil
}

// NewVerifierFromCommitment builds a verifier from a stored commitment
// without the ring keys. Such a verifier can't check IETF signatures.
func NewVerifierFromCommitment(ctx *RingContext, commitment *RingCommitment, opts ...Option) *Verifier {
	o := buildOptions(opts)
	c := *commitment
	return &Verifier{
		ctx:        ctx,
		gens:       DefaultPedersenGens(),
		commitment: &c,
		logger:     o.logger,
	}
}

func (v *Verifier) Commitment() *RingCommitment {
	v.mustBeLive()
	c := *v.commitment
	return &c
}

// Verify checks a ring VRF signature and returns the VRF output. The
// output is zero whenever valid is false.
func (v *Verifier) Verify(vrfInput, auxData, signature []byte) (bool, [OutputSize]byte) {
	v.mustBeLive()
	out, err := v.verify(vrfInput, auxData, signature)
	if err != nil {
		v.logger.Debug("ring signature rejected", "malformed", errors.Is(err, ErrProofMalformed))
		return false, [OutputSize]byte{}
	}
	return true, out
}

func (v *Verifier) verify(vrfInput, auxData, signature []byte) ([OutputSize]byte, error) {
	var out [OutputSize]byte
	sig, err := ParseRingSignature(signature)
	if err != nil {
		return out, err
	}
	input, err := InputPoint(vrfInput)
	if err != nil {
		return out, err
	}

	statement := Challenge(v.commitment, vrfInput, auxData)
	err = v.ctx.verifyRingProof(v.commitment, statement, sig.Pedersen.PkCom, sig.Ring)
	if err != nil {
		return out, err
	}
	err = sig.Pedersen.verify(v.gens, input, sig.Output, auxData)
	if err != nil {
		return out, err
	}
	return OutputHash(sig.Output), nil
}

// VerifyIETF checks a non-anonymous signature by the ring member at
// signerIndex. For the same signer and input its output equals the ring
// signature output.
func (v *Verifier) VerifyIETF(vrfInput, auxData, signature []byte, signerIndex int) (bool, [OutputSize]byte) {
	v.mustBeLive()
	out, err := v.verifyIETF(vrfInput, auxData, signature, signerIndex)
	if err != nil {
		v.logger.Debug("ietf signature rejected", "malformed", errors.Is(err, ErrProofMalformed))
		return false, [OutputSize]byte{}
	}
	return true, out
}

func (v *Verifier) verifyIETF(vrfInput, auxData, signature []byte, signerIndex int) ([OutputSize]byte, error) {
	var out [OutputSize]byte
	if signerIndex < 0 || signerIndex >= len(v.ring) || v.ring[signerIndex] == nil {
		return out, errors.Wrapf(ErrInvalidSignerIndex, "index %d", signerIndex)
	}
	sig, err := ParseIetfSignature(signature)
	if err != nil {
		return out, err
	}
	input, err := InputPoint(vrfInput)
	if err != nil {
		return out, err
	}
	if err := VerifyIetf(v.ring[signerIndex], input, auxData, sig); err != nil {
		return out, err
	}
	return OutputHash(sig.Output), nil
}

// Release ends the verifier's lifetime. Any later use, including a second
// Release, panics.
func (v *Verifier) Release() {
	if !v.released.CompareAndSwap(false, true) {
		panic("ringvrf: verifier released twice")
	}
	v.commitment = nil
	v.ring = nil
}

func (v *Verifier) mustBeLive() {
	if v.released.Load() {
		panic("ringvrf: verifier used after release")
	}
}
