// Package random implements a seedable, reproducible random number source.
//
// The generator expands a textual seed through SHA-1 into a 40-byte pool
// and serves random bytes by repeatedly hashing the pool, incrementing it
// as a little-endian 320-bit counter each time a fresh block is needed.
// The same seed always produces the same stream, which is what makes
// generated puzzles replayable from their seed strings.
//
// source: https://git.tartarus.org/simon/puzzles.git/random.c
package random

import "crypto/sha1"

// Random is a deterministic random source. Not safe for concurrent use.
type Random struct {
	seedbuf [40]byte
	databuf [20]byte
	pos     int
}

// New creates a generator from an arbitrary binary seed.
func New(seed []byte) *Random {
	r := &Random{}
	first := sha1.Sum(seed)
	copy(r.seedbuf[:20], first[:])
	second := sha1.Sum(r.seedbuf[:20])
	copy(r.seedbuf[20:], second[:])
	r.databuf = sha1.Sum(r.seedbuf[:])
	r.pos = 0
	return r
}

// NewString creates a generator from a textual seed.
func NewString(seed string) *Random {
	return New([]byte(seed))
}

// Copy returns an independent generator at the same stream position.
func (r *Random) Copy() *Random {
	dup := *r
	return &dup
}

// Bits returns a uniform value in [0, 2^bits). bits must be at most 32;
// whole bytes are consumed from the stream regardless of bit count.
func (r *Random) Bits(bits int) uint32 {
	var ret uint64
	for n := 0; n < bits; n += 8 {
		if r.pos >= 20 {
			for i := 0; i < 20; i++ {
				if r.seedbuf[i] != 0xFF {
					r.seedbuf[i]++
					break
				}
				r.seedbuf[i] = 0
			}
			r.databuf = sha1.Sum(r.seedbuf[:])
			r.pos = 0
		}
		ret = (ret << 8) | uint64(r.databuf[r.pos])
		r.pos++
	}
	return uint32(ret & (uint64(1)<<bits - 1))
}

// UpTo returns a uniform value in [0, limit). limit must be positive.
func (r *Random) UpTo(limit int) int {
	if limit <= 0 {
		panic("random: UpTo with non-positive limit")
	}
	bits := 0
	for limit>>bits != 0 {
		bits++
	}

	// A few extra bits keeps the rejection probability low without
	// biasing the result.
	bits += 3

	max := 1 << bits
	divisor := max / limit
	max = limit * divisor

	var data int
	for {
		data = int(r.Bits(bits))
		if data < max {
			break
		}
	}
	return data / divisor
}

// Bool returns a uniform random boolean.
func (r *Random) Bool() bool {
	return r.Bits(1) != 0
}

// Shuffle permutes the first n elements uniformly. swap exchanges the
// elements at the two given indices.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.UpTo(i + 1)
		if j != i {
			swap(i, j)
		}
	}
}
