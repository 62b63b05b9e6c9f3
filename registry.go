package ringvrf

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/MixinNetwork/ringvrf-go/bandersnatch"
)

// KeyHandle refers to a decoded public key held by a Registry. The zero
// handle marks a padding slot.
type KeyHandle uint64

// VerifierHandle refers to a Verifier held by a Registry.
type VerifierHandle uint64

type slot[T any] struct {
	generation uint32
	live       bool
	value      T
}

// arena stores values behind handles made of a slot index and a
// generation, so stale handles are detected after a slot is reused.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
}

func (a *arena[T]) insert(v T) uint64 {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[idx]
	s.generation++
	s.live = true
	s.value = v
	return uint64(s.generation)<<32 | uint64(idx)
}

func (a *arena[T]) lookup(h uint64) (T, bool) {
	var zero T
	idx, gen := uint32(h), uint32(h>>32)
	if int(idx) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx]
	if !s.live || s.generation != gen {
		return zero, false
	}
	return s.value, true
}

func (a *arena[T]) remove(h uint64) (T, bool) {
	v, ok := a.lookup(h)
	if !ok {
		return v, false
	}
	idx := uint32(h)
	var zero T
	a.slots[idx].live = false
	a.slots[idx].value = zero
	a.free = append(a.free, idx)
	return v, true
}

// Registry is the handle based boundary of the verifier: keys and
// verifiers are referenced by opaque generation checked handles.
type Registry struct {
	srs    *SRS
	logger Logger
	cache  *commitmentCache

	ctxMu    sync.Mutex
	contexts map[int]*RingContext
	ctxOrder []int

	mu        sync.RWMutex
	keys      arena[*bandersnatch.Point]
	verifiers arena[*Verifier]
}

func NewRegistry(srs *SRS, cacheSize int, opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		srs:      srs,
		logger:   o.logger,
		cache:    newCommitmentCache(cacheSize),
		contexts: make(map[int]*RingContext),
	}
}

// NewRegistryFromConfig loads the SRS named by cfg.
func NewRegistryFromConfig(cfg *Config, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	srs, err := LoadSRSFile(cfg.SRSPath)
	if err != nil {
		return nil, err
	}
	return NewRegistry(srs, cfg.CacheSize, opts...), nil
}

// maxContexts bounds the ring contexts kept alive by a Registry. Verifiers
// keep their own context, so evicting one only costs a later rebuild.
const maxContexts = 4

// Context returns the shared ring context for ringSize, deriving it on
// first use.
func (r *Registry) Context(ringSize int) (*RingContext, error) {
	r.ctxMu.Lock()
	defer r.ctxMu.Unlock()
	if ctx, ok := r.contexts[ringSize]; ok {
		return ctx, nil
	}
	ctx, err := NewRingContext(r.srs, ringSize)
	if err != nil {
		return nil, err
	}
	if len(r.ctxOrder) == maxContexts {
		delete(r.contexts, r.ctxOrder[0])
		r.ctxOrder = r.ctxOrder[1:]
	}
	r.contexts[ringSize] = ctx
	r.ctxOrder = append(r.ctxOrder, ringSize)
	r.logger.Info("ring context created", "ring_size", ringSize, "domain_size", ctx.domainSize, "keyset", ctx.keysetPart)
	return ctx, nil
}

// DecodePublicKey decodes a compressed key. It fails on any invalid
// encoding.
func (r *Registry) DecodePublicKey(buf []byte) (KeyHandle, bool) {
	p, err := bandersnatch.Decode(buf)
	if err != nil {
		r.logger.Debug("public key rejected", "err", err)
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return KeyHandle(r.keys.insert(p)), true
}

func (r *Registry) PublicKey(h KeyHandle) (*bandersnatch.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keys.lookup(uint64(h))
}

func (r *Registry) ReleaseKey(h KeyHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys.remove(uint64(h)); !ok {
		panic(fmt.Sprintf("ringvrf: release of unknown key handle %x", uint64(h)))
	}
}

// CreateVerifier builds a verifier for the ordered ring. Zero handles are
// padding slots. Commitments are shared between identical rings.
func (r *Registry) CreateVerifier(ring []KeyHandle, ringSize int) (VerifierHandle, bool) {
	points := make([]*bandersnatch.Point, len(ring))
	r.mu.RLock()
	for i, h := range ring {
		if h == 0 {
			continue
		}
		p, ok := r.keys.lookup(uint64(h))
		if !ok {
			r.mu.RUnlock()
			r.logger.Debug("unknown key handle", "index", i)
			return 0, false
		}
		points[i] = p
	}
	r.mu.RUnlock()

	ctx, err := r.Context(ringSize)
	if err != nil {
		r.logger.Error("ring context", "ring_size", ringSize, "err", err)
		return 0, false
	}

	fp := RingFingerprint(ringSize, points)
	commitment, hit := r.cache.get(fp)
	if !hit {
		if commitment, err = ctx.Commit(points); err != nil {
			r.logger.Debug("ring commitment failed", "err", err)
			return 0, false
		}
		r.cache.put(fp, commitment)
	}
	v := NewVerifierFromCommitment(ctx, commitment, WithLogger(r.logger))
	v.ring = points

	r.mu.Lock()
	h := VerifierHandle(r.verifiers.insert(v))
	r.mu.Unlock()
	r.logger.Debug("verifier created", "handle", uint64(h), "ring", hex.EncodeToString(fp[:8]), "cached", hit)
	return h, true
}

func (r *Registry) verifier(h VerifierHandle) *Verifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.verifiers.lookup(uint64(h))
	if !ok {
		panic(fmt.Sprintf("ringvrf: use of unknown verifier handle %x", uint64(h)))
	}
	return v
}

func (r *Registry) Verify(h VerifierHandle, vrfInput, auxData, signature []byte) (bool, [OutputSize]byte) {
	return r.verifier(h).Verify(vrfInput, auxData, signature)
}

func (r *Registry) VerifyIETF(h VerifierHandle, vrfInput, auxData, signature []byte, signerIndex int) (bool, [OutputSize]byte) {
	return r.verifier(h).VerifyIETF(vrfInput, auxData, signature, signerIndex)
}

// Commitment returns the ring commitment of a live verifier.
func (r *Registry) Commitment(h VerifierHandle) *RingCommitment {
	return r.verifier(h).Commitment()
}

// ReleaseVerifier invalidates h. Releasing an unknown or already released
// handle panics.
func (r *Registry) ReleaseVerifier(h VerifierHandle) {
	r.mu.Lock()
	v, ok := r.verifiers.remove(uint64(h))
	r.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("ringvrf: release of unknown verifier handle %x", uint64(h)))
	}
	v.Release()
	r.logger.Debug("verifier released", "handle", uint64(h))
}
