package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/flood"
	"github.com/vancomm/puzzle-server/internal/penrose"
	"github.com/vancomm/puzzle-server/internal/samegame"
)

func TestDecodeParamsDTODefaults(t *testing.T) {
	p, err := decodeParamsDTO("flood", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, flood.DefaultParams(), p)
}

func TestDecodeParamsDTOFields(t *testing.T) {
	p, err := decodeParamsDTO("flood", url.Values{
		"width":   {"10"},
		"height":  {"8"},
		"colours": {"4"},
	})
	require.NoError(t, err)

	got, ok := p.(flood.GameParams)
	require.True(t, ok)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 8, got.Height)
	assert.Equal(t, 4, got.Colours)
	// Unset fields keep their defaults.
	assert.Equal(t, flood.DefaultParams().Leniency, got.Leniency)
}

func TestDecodeParamsDTOIgnoresUnknownKeys(t *testing.T) {
	_, err := decodeParamsDTO("samegame", url.Values{"nonsense": {"1"}})
	assert.NoError(t, err)
}

func TestDecodeParamsDTOParamsString(t *testing.T) {
	p, err := decodeParamsDTO("samegame", url.Values{
		"params": {"10x8c4s3"},
		// Individual fields lose to a full params string.
		"width": {"99"},
	})
	require.NoError(t, err)

	got, ok := p.(samegame.GameParams)
	require.True(t, ok)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 8, got.Height)
	assert.Equal(t, 4, got.Colours)
}

func TestDecodeParamsDTOUnknownEngine(t *testing.T) {
	_, err := decodeParamsDTO("fifteen", url.Values{})
	assert.Error(t, err)

	_, err = decodeParamsDTO("fifteen", url.Values{"params": {"4x4"}})
	assert.Error(t, err)
}

func TestDecodeParamsDTOAllEngines(t *testing.T) {
	for _, name := range []string{"filling", "flood", "inertia", "kurodoko", "penrose", "samegame"} {
		p, err := decodeParamsDTO(name, url.Values{})
		require.NoError(t, err, name)
		assert.NoError(t, p.Validate(true), name)
	}
}

func TestDecodeParamsDTOPenroseWhich(t *testing.T) {
	p, err := decodeParamsDTO("penrose", url.Values{"which": {"1"}})
	require.NoError(t, err)

	got, ok := p.(penrose.GameParams)
	require.True(t, ok)
	assert.Equal(t, penrose.P3, got.Which)
}
