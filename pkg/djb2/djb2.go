// Package djb2 implements Dan Bernstein's djb2 string hash with 64-bit
// wraparound arithmetic.
package djb2

import "hash"

// Seed is the initial hash value.
const Seed uint64 = 5381

// Size of a djb2 checksum in bytes.
const Size = 8

// Sum64 returns the djb2 hash of b.
func Sum64(b []byte) uint64 {
	h := Seed
	for _, c := range b {
		h = (h << 5) + h + uint64(c)
	}
	return h
}

// Sum64String returns the djb2 hash of s without copying it.
func Sum64String(s string) uint64 {
	h := Seed
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + uint64(s[i])
	}
	return h
}

type digest struct {
	h uint64
}

// New returns a streaming hash.Hash64. Writing data in any number of chunks
// produces the same value as Sum64 over the concatenation.
func New() hash.Hash64 {
	return &digest{h: Seed}
}

func (d *digest) Write(p []byte) (int, error) {
	h := d.h
	for _, c := range p {
		h = (h << 5) + h + uint64(c)
	}
	d.h = h
	return len(p), nil
}

func (d *digest) WriteString(s string) (int, error) {
	h := d.h
	for i := 0; i < len(s); i++ {
		h = (h << 5) + h + uint64(s[i])
	}
	d.h = h
	return len(s), nil
}

func (d *digest) Sum64() uint64 { return d.h }

// Sum appends the big-endian encoding of the current hash to b.
func (d *digest) Sum(b []byte) []byte {
	h := d.h
	return append(b,
		byte(h>>56), byte(h>>48), byte(h>>40), byte(h>>32),
		byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}

func (d *digest) Reset()         { d.h = Seed }
func (d *digest) Size() int      { return Size }
func (d *digest) BlockSize() int { return 1 }
