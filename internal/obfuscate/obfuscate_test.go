package obfuscate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskRoundTrip(t *testing.T) {
	original := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}
	bmp := append([]byte(nil), original...)

	Mask(bmp, len(bmp)*8, false)
	assert.NotEqual(t, original, bmp)

	Mask(bmp, len(bmp)*8, true)
	assert.Equal(t, original, bmp)
}

func TestMaskIsDeterministic(t *testing.T) {
	a := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	b := append([]byte(nil), a...)
	Mask(a, 64, false)
	Mask(b, 64, false)
	assert.Equal(t, a, b)
}

func TestMaskPartialFinalByte(t *testing.T) {
	// 21 bits: the low 3 bits of the final byte are padding and must come
	// back zero.
	bmp := []byte{0xFF, 0xFF, 0xF8}
	original := append([]byte(nil), bmp...)

	Mask(bmp, 21, false)
	assert.Zero(t, bmp[2]&0x07)

	Mask(bmp, 21, true)
	assert.Equal(t, original, bmp)
}

func TestHex(t *testing.T) {
	data := []byte{0x0F, 0xA0, 0x55}
	s := ToHex(data)
	assert.Equal(t, "0fa055", s)

	back, err := FromHex(s)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	_, err = FromHex("zz")
	assert.Error(t, err)
}
