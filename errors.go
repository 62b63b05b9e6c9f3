package ringvrf

import "github.com/pkg/errors"

var (
	ErrEmptyRing          = errors.New("ringvrf: empty ring")
	ErrRingTooLarge       = errors.New("ringvrf: ring too large")
	ErrProofMalformed     = errors.New("ringvrf: malformed proof")
	ErrVerificationFailed = errors.New("ringvrf: verification failed")
	ErrSRSMalformed       = errors.New("ringvrf: malformed SRS")
	ErrSRSTooSmall        = errors.New("ringvrf: SRS too small for ring size")
	ErrInvalidSignerIndex = errors.New("ringvrf: signer index out of range")
)
