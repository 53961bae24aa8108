// Package strset implements a set of strings on top of an open-addressing
// hash table with linear probing.
//
// Deleted buckets are kept as tombstones so that values stored further
// down a probe run stay reachable. The table grows by doubling, rehashing
// every live value, once the load factor is reached, and is compacted in
// place when tombstones alone push it over that limit. It never shrinks.
//
// A Set is not safe for concurrent use.
package strset

import (
	"fmt"
	"log/slog"
)

const debug = false

type bucketState uint8

const (
	bucketEmpty bucketState = iota
	bucketOccupied
	bucketDeleted
)

type bucket struct {
	state bucketState
	hash  uint64
	value string
}

// Set is a set of strings compared byte-wise.
type Set struct {
	buckets     []bucket
	cardinality int
	tombstones  int

	maxCapacity int
	maxLoad     float64
	hasher      Hasher
	logger      *slog.Logger
	closed      bool
}

// New creates an empty set, by default with DefaultInitialCapacity buckets
// hashed with djb2.
func New(opts ...Option) (*Set, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.initialCapacity > o.maxCapacity {
		return nil, fmt.Errorf("%w: initial capacity %d exceeds maximum %d",
			ErrResourceExhausted, o.initialCapacity, o.maxCapacity)
	}

	return &Set{
		buckets:     make([]bucket, o.initialCapacity),
		maxCapacity: o.maxCapacity,
		maxLoad:     o.maxLoad,
		hasher:      o.hasher,
		logger:      o.logger,
	}, nil
}

// Close releases the bucket array. Any further operation fails with
// ErrClosed or reports an empty set.
func (s *Set) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.buckets = nil
	s.cardinality = 0
	s.tombstones = 0
	return nil
}

// Add ensures value is a member of the set. Adding a present value is a
// no-op.
func (s *Set) Add(value string) error {
	if s.closed {
		return ErrClosed
	}

	// growth is decided before the new value is hashed
	s.reserve()

	h := s.hasher(value)
	match, free := s.probe(h, value)
	if match >= 0 {
		return nil
	}
	if free < 0 {
		return fmt.Errorf("cannot add %q to set of %d buckets: %w", value, len(s.buckets), ErrTableFull)
	}

	if s.buckets[free].state == bucketDeleted {
		s.tombstones--
	}
	s.buckets[free] = bucket{state: bucketOccupied, hash: h, value: value}
	s.cardinality++
	s.checkInvariants()
	return nil
}

// Remove deletes value from the set and reports whether it was present.
func (s *Set) Remove(value string) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}

	match, _ := s.probe(s.hasher(value), value)
	if match < 0 {
		return false, nil
	}

	s.buckets[match] = bucket{state: bucketDeleted}
	s.cardinality--
	s.tombstones++
	s.checkInvariants()
	return true, nil
}

// Contains reports whether value is a member of the set.
func (s *Set) Contains(value string) bool {
	if s.closed {
		return false
	}
	match, _ := s.probe(s.hasher(value), value)
	return match >= 0
}

// Size returns the number of values in the set.
func (s *Set) Size() int {
	return s.cardinality
}

// Capacity returns the current number of buckets.
func (s *Set) Capacity() int {
	return len(s.buckets)
}

// Hasher returns the hash function the set was created with.
func (s *Set) Hasher() Hasher {
	return s.hasher
}

// probe walks the buckets circularly starting at h mod capacity. It returns
// the index of the bucket holding value, or -1 together with the first
// bucket value could be stored in. free is -1 when no bucket is available.
func (s *Set) probe(h uint64, value string) (match, free int) {
	n := len(s.buckets)
	free = -1
	i := int(h % uint64(n))
	for step := 0; step < n; step++ {
		b := &s.buckets[i]
		switch b.state {
		case bucketEmpty:
			if free < 0 {
				free = i
			}
			return -1, free
		case bucketDeleted:
			if free < 0 {
				free = i
			}
		case bucketOccupied:
			// distinct values with equal hashes keep probing
			if b.hash == h && b.value == value {
				return i, -1
			}
		}
		i++
		if i == n {
			i = 0
		}
	}
	return -1, free
}

func (s *Set) loadLimit() int {
	return int(float64(len(s.buckets)) * s.maxLoad)
}

func (s *Set) reserve() {
	limit := s.loadLimit()
	switch {
	case s.cardinality >= limit:
		s.grow()
	case s.cardinality+s.tombstones >= limit:
		s.rehash(len(s.buckets))
	}
}

func (s *Set) grow() {
	n := len(s.buckets)
	if n >= s.maxCapacity {
		s.logger.Debug("string set at maximum capacity",
			"capacity", n, "size", s.cardinality, "tombstones", s.tombstones)
		if s.tombstones > 0 {
			s.rehash(n)
		}
		return
	}

	next := n * 2
	if next > s.maxCapacity || next < n {
		next = s.maxCapacity
	}
	s.rehash(next)
}

// rehash moves every live value into a fresh array of the given capacity,
// dropping all tombstones.
func (s *Set) rehash(capacity int) {
	old := s.buckets
	s.buckets = make([]bucket, capacity)
	for _, b := range old {
		if b.state != bucketOccupied {
			continue
		}
		i := int(b.hash % uint64(capacity))
		for s.buckets[i].state == bucketOccupied {
			i++
			if i == capacity {
				i = 0
			}
		}
		s.buckets[i] = b
	}

	s.logger.Debug("string set rehashed",
		"from", len(old), "to", capacity, "size", s.cardinality, "dropped_tombstones", s.tombstones)
	s.tombstones = 0
	s.checkInvariants()
}

func (s *Set) checkInvariants() {
	if !debug {
		return
	}
	var occupied, deleted int
	for _, b := range s.buckets {
		switch b.state {
		case bucketOccupied:
			occupied++
		case bucketDeleted:
			deleted++
		}
	}
	if occupied != s.cardinality || deleted != s.tombstones {
		panic(fmt.Sprintf("invariant failed: counted %d occupied and %d deleted, expected %d and %d\n%s",
			occupied, deleted, s.cardinality, s.tombstones, s.DebugString()))
	}
}
