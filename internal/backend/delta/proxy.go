package delta

import (
	"context"
	"fmt"
	"sync"

	"github.com/openaccel/accml-core/internal/backend"
	"github.com/openaccel/accml-core/internal/model"
)

// Prefix marks a property name as a delta property. The underlying
// property name is the remainder after the prefix.
const Prefix = "delta_"

// SplitProperty reports whether propID names a delta property and returns
// the underlying property name (propID itself when not delta).
func SplitProperty(propID string) (bool, string) {
	if len(propID) > len(Prefix) && propID[:len(Prefix)] == Prefix {
		return true, propID[len(Prefix):]
	}
	return false, propID
}

// ReadProxy handles delta properties on a read-only backend.
//
// Non-delta operations pass straight through. A delta read reads the
// underlying property, establishes the reference on first contact and
// returns the filtered difference against it.
type ReadProxy struct {
	backend backend.Reader
	cache   *Cache
	filter  backend.Filter
}

// NewReadProxy wraps a read-only backend. A nil filter means the identity
// NoopFilter.
func NewReadProxy(b backend.Reader, cache *Cache, filter backend.Filter) *ReadProxy {
	if filter == nil {
		filter = backend.NoopFilter{}
	}
	return &ReadProxy{backend: b, cache: cache, filter: filter}
}

// NaturalViewName implements backend.Reader.
func (p *ReadProxy) NaturalViewName() string {
	return p.backend.NaturalViewName()
}

// Cache returns the reference cache, letting the owner force invalidation
// when the machine state changes underneath the proxy.
func (p *ReadProxy) Cache() *Cache {
	return p.cache
}

// Trigger implements backend.Reader. Triggering is independent of the
// delta/absolute framing, so the prefix is stripped and the call
// forwarded unchanged.
func (p *ReadProxy) Trigger(ctx context.Context, devID, propID string) error {
	_, base := SplitProperty(propID)
	return p.backend.Trigger(ctx, devID, base)
}

// Read implements backend.Reader.
//
// For a delta property the underlying property is read first; if no
// reference is cached yet the just-read value becomes the reference, so
// the first delta read returns zero by construction.
func (p *ReadProxy) Read(ctx context.Context, devID, propID string) (model.Value, error) {
	isDelta, base := SplitProperty(propID)
	if !isDelta {
		return p.backend.Read(ctx, devID, propID)
	}

	current, err := p.backend.Read(ctx, devID, base)
	if err != nil {
		return nil, err
	}

	rcmd := model.ReadCommand{ID: devID, Property: base}
	if p.cache.Get(rcmd) == nil {
		p.cache.Set(rcmd, current)
	}
	return p.deltaRead(rcmd, current)
}

// deltaRead computes filter(current) - filter(reference). The read path
// above guarantees a cached reference; failing here means the filter
// rejected it, which is a caller usage error, not a runtime condition.
func (p *ReadProxy) deltaRead(rcmd model.ReadCommand, current model.Value) (model.Value, error) {
	ref, err := p.usableReference(rcmd)
	if err != nil {
		return nil, err
	}

	cur, err := p.filter.Process(current)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: filter rejected current value for %v", ErrNoReference, rcmd)
	}

	return cur.Sub(ref)
}

// usableReference returns the filtered cached reference, or ErrNoReference
// when absent or rejected by the filter.
func (p *ReadProxy) usableReference(rcmd model.ReadCommand) (model.Value, error) {
	ref := p.cache.Get(rcmd)
	if ref == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoReference, rcmd)
	}
	filtered, err := p.filter.Process(ref)
	if err != nil {
		return nil, err
	}
	if filtered == nil {
		return nil, fmt.Errorf("%w: filter rejected reference for %v", ErrNoReference, rcmd)
	}
	return filtered, nil
}

// ReadWriteProxy handles delta properties on a read-write backend.
//
// A delta set is rewritten into an absolute set of the underlying
// property: reference + value. The reference is established lazily on the
// write path too, with a read of the underlying property.
type ReadWriteProxy struct {
	*ReadProxy
	backend backend.ReadWriter

	// keyed mutexes serialise delta writes per underlying ReadCommand so
	// concurrent writers cannot double-apply against a stale baseline.
	keysMu sync.Mutex
	keys   map[model.ReadCommand]*sync.Mutex
}

// NewReadWriteProxy wraps a read-write backend. A nil filter means the
// identity NoopFilter.
func NewReadWriteProxy(b backend.ReadWriter, cache *Cache, filter backend.Filter) *ReadWriteProxy {
	return &ReadWriteProxy{
		ReadProxy: NewReadProxy(b, cache, filter),
		backend:   b,
		keys:      make(map[model.ReadCommand]*sync.Mutex),
	}
}

// Set implements backend.ReadWriter.
func (p *ReadWriteProxy) Set(ctx context.Context, devID, propID string, value model.Value) error {
	isDelta, base := SplitProperty(propID)
	if !isDelta {
		return p.backend.Set(ctx, devID, propID, value)
	}

	rcmd := model.ReadCommand{ID: devID, Property: base}

	mu := p.keyLock(rcmd)
	mu.Lock()
	defer mu.Unlock()

	if _, err := p.usableReference(rcmd); err != nil {
		// Lazy baseline establishment on the write path.
		current, readErr := p.backend.Read(ctx, devID, base)
		if readErr != nil {
			return readErr
		}
		p.cache.Set(rcmd, current)
	}

	total, err := p.deltaSet(rcmd, value)
	if err != nil {
		return err
	}
	return p.backend.Set(ctx, devID, base, total)
}

// deltaSet computes filter(reference) + value as the absolute setpoint.
func (p *ReadWriteProxy) deltaSet(rcmd model.ReadCommand, value model.Value) (model.Value, error) {
	ref, err := p.usableReference(rcmd)
	if err != nil {
		return nil, err
	}
	return ref.Add(value)
}

// keyLock returns the mutex serialising writers of one underlying
// property.
func (p *ReadWriteProxy) keyLock(rcmd model.ReadCommand) *sync.Mutex {
	p.keysMu.Lock()
	defer p.keysMu.Unlock()
	mu, ok := p.keys[rcmd]
	if !ok {
		mu = &sync.Mutex{}
		p.keys[rcmd] = mu
	}
	return mu
}
