// Package obfuscate provides a keyless, reversible masking of small
// bitmaps, used by puzzle descriptions that want to hide their internal
// data from casual inspection (so a saved game ID doesn't spoil the
// puzzle it encodes). This is deliberately not encryption: anyone can
// reverse it, the point is only that nobody does so by accident.
//
// The construction is OAEP-like: the padded byte stream is split into two
// halves, and each half is XORed with a SHA-1 mask keyed by the other
// half. Decoding applies the same two steps in the opposite order.
//
// source: https://git.tartarus.org/simon/puzzles.git/misc.c
package obfuscate

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// mask XORs target with the pseudorandom stream derived from seed: the
// concatenation of SHA-1(seed || "0"), SHA-1(seed || "1"), ...
func mask(seed, target []byte) {
	var digest [sha1.Size]byte
	digestpos, counter := sha1.Size, 0
	for i := range target {
		if digestpos >= sha1.Size {
			h := sha1.New()
			h.Write(seed)
			h.Write([]byte(strconv.Itoa(counter)))
			counter++
			h.Sum(digest[:0])
			digestpos = 0
		}
		target[i] ^= digest[digestpos]
		digestpos++
	}
}

// Mask obfuscates (decode false) or deobfuscates (decode true) the first
// bits bits of bmp in place. bmp must hold at least (bits+7)/8 bytes; any
// pad bits in the final byte are cleared on return.
func Mask(bmp []byte, bits int, decode bool) {
	bytes := (bits + 7) / 8
	firsthalf := bytes / 2

	type step struct{ seed, target []byte }
	steps := [2]step{
		{seed: bmp[firsthalf:bytes], target: bmp[:firsthalf]},
		{seed: bmp[:firsthalf], target: bmp[firsthalf:bytes]},
	}
	if decode {
		steps[0], steps[1] = steps[1], steps[0]
	}

	for _, s := range steps {
		mask(s.seed, s.target)
		if bits%8 != 0 {
			bmp[bits/8] &= byte(uint(0xFF00) >> (bits % 8))
		}
	}
}

// ToHex renders data as lowercase hex.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes a hex string produced by ToHex.
func FromHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
