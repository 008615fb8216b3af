// Package flight provides a sharded, concurrency-safe cache of shared futures.
//
// A Group creates at most one future per key. The computation for a key runs
// once on its own goroutine and every caller asking for the same key receives
// the same future.
package flight

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/compat/internal/core/domain"
)

const shardCount = 64

// Func computes the value of one key.
type Func[V any] func() (V, error)

// Option configures a Group.
type Option func(*options)

type options struct {
	forgetFailures bool
}

// ForgetFailures evicts an entry once its computation has failed,
// so the next caller starts a fresh computation.
func ForgetFailures() Option {
	return func(o *options) {
		o.forgetFailures = true
	}
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[string]*domain.Future[V]
}

// Group is a keyed single-flight cache of futures.
type Group[V any] struct {
	shards [shardCount]shard[V]
	opts   options
}

// New creates an empty Group.
func New[V any](opts ...Option) *Group[V] {
	g := &Group[V]{}
	for _, opt := range opts {
		opt(&g.opts)
	}
	for i := range g.shards {
		g.shards[i].entries = make(map[string]*domain.Future[V])
	}
	return g
}

func (g *Group[V]) shardFor(key string) *shard[V] {
	return &g.shards[xxhash.Sum64String(key)%shardCount]
}

// Do returns the future for key, starting fn on a new goroutine if the key is not cached.
// created reports whether this call started the computation.
func (g *Group[V]) Do(key string, fn Func[V]) (fut *domain.Future[V], created bool) {
	s := g.shardFor(key)

	s.mu.Lock()
	if existing, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return existing, false
	}
	fut = domain.NewFuture[V]()
	s.entries[key] = fut
	s.mu.Unlock()

	go g.run(s, key, fut, fn)

	return fut, true
}

// Claim returns the future for key, creating an unresolved one if absent.
// When created is true the caller owns the computation and must resolve the future.
// Claimed entries are never evicted by ForgetFailures.
func (g *Group[V]) Claim(key string) (fut *domain.Future[V], created bool) {
	s := g.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing, false
	}
	fut = domain.NewFuture[V]()
	s.entries[key] = fut
	return fut, true
}

// Get returns the cached future for key, if any.
func (g *Group[V]) Get(key string) (*domain.Future[V], bool) {
	s := g.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	fut, ok := s.entries[key]
	return fut, ok
}

// Forget removes key from the cache. Callers already holding its future keep it.
func (g *Group[V]) Forget(key string) {
	s := g.shardFor(key)
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Len returns the number of cached keys.
func (g *Group[V]) Len() int {
	n := 0
	for i := range g.shards {
		s := &g.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

func (g *Group[V]) run(s *shard[V], key string, fut *domain.Future[V], fn Func[V]) {
	var (
		val V
		err error
	)
	defer func() {
		if r := recover(); r != nil {
			err = domain.Classify(domain.ErrCheckerPanicked, fmt.Errorf("panic: %v", r))
		}
		if err != nil && g.opts.forgetFailures {
			s.mu.Lock()
			if s.entries[key] == fut {
				delete(s.entries, key)
			}
			s.mu.Unlock()
		}
		fut.Resolve(val, err)
	}()
	val, err = fn()
}
