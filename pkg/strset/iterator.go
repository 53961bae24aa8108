package strset

import "iter"

// Iterator is a cursor over the values of a Set. It starts before the first
// value. The set must not be modified while the iterator is in use.
//
// A full pass costs O(Capacity) regardless of the number of values.
type Iterator struct {
	set   *Set
	next  int
	value string
	valid bool
}

// NewIterator returns an iterator positioned before the first value of s.
func NewIterator(s *Set) *Iterator {
	return &Iterator{set: s}
}

// Iterator is a shorthand for NewIterator(s).
func (s *Set) Iterator() *Iterator {
	return NewIterator(s)
}

// Next advances to the next value and reports whether there was one. Once
// it returns false the iterator is back before the first value, so another
// call starts a new pass.
func (it *Iterator) Next() bool {
	if it.set == nil {
		return false
	}

	buckets := it.set.buckets
	for i := it.next; i < len(buckets); i++ {
		if buckets[i].state == bucketOccupied {
			it.value = buckets[i].value
			it.valid = true
			it.next = i + 1
			return true
		}
	}

	it.value = ""
	it.valid = false
	it.next = 0
	return false
}

// Value returns the value at the cursor, or "" if Valid is false.
func (it *Iterator) Value() string {
	return it.value
}

// Valid reports whether the cursor is positioned on a value.
func (it *Iterator) Valid() bool {
	return it.valid
}

// Close detaches the iterator from its set. The set is not affected.
func (it *Iterator) Close() {
	it.set = nil
	it.value = ""
	it.valid = false
	it.next = 0
}

// All returns a sequence over the values of s in bucket order.
func (s *Set) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		it := s.Iterator()
		defer it.Close()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// ToSlice converts the set to a slice.
// The order of elements in the slice is not guaranteed.
func (s *Set) ToSlice() []string {
	result := make([]string, 0, s.Size())
	for v := range s.All() {
		result = append(result, v)
	}
	return result
}
