package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	engines := All()
	require.Len(t, engines, 6)

	names := make(map[string]bool)
	for _, eng := range engines {
		require.NotEmpty(t, eng.Name())
		assert.False(t, names[eng.Name()], "duplicate engine %q", eng.Name())
		names[eng.Name()] = true

		// Every engine's defaults must be usable for generation.
		assert.NoError(t, eng.DefaultParams().Validate(true), eng.Name())
	}

	for _, name := range []string{"filling", "flood", "inertia", "kurodoko", "penrose", "samegame"} {
		assert.True(t, names[name], "missing engine %q", name)
	}
}

func TestLookup(t *testing.T) {
	eng, ok := Lookup("flood")
	require.True(t, ok)
	assert.Equal(t, "flood", eng.Name())

	_, ok = Lookup("fifteen")
	assert.False(t, ok)
}
