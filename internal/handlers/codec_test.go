package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/puzzle-server/internal/puzzle"
	"github.com/vancomm/puzzle-server/internal/random"
	"github.com/vancomm/puzzle-server/internal/registry"
)

// Round-trip a freshly generated state for every engine through the gob
// codec and check the decoded copy still plays.
func TestStateCodecRoundTrip(t *testing.T) {
	for _, eng := range registry.All() {
		t.Run(eng.Name(), func(t *testing.T) {
			params := eng.DefaultParams()
			rng := random.NewString("codec-" + eng.Name())

			desc, _, err := eng.Generate(params, rng)
			require.NoError(t, err)

			st, err := eng.NewState(params, desc)
			require.NoError(t, err)

			b, err := encodeState(st)
			require.NoError(t, err)

			back, err := decodeState(b)
			require.NoError(t, err)

			assert.Equal(t, st.Status(), back.Status())
			assert.Equal(t, st.MoveCount(), back.MoveCount())

			if eng.CanFormatAsText() {
				want, err := eng.FormatAsText(st)
				require.NoError(t, err)
				got, err := eng.FormatAsText(back)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			if eng.CanSolve() && back.Status() == puzzle.StatusOngoing {
				move, err := eng.Solve(back)
				require.NoError(t, err)
				next, err := eng.ApplyMove(back, move)
				require.NoError(t, err)
				assert.NotNil(t, next)
			}
		})
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	_, err := decodeState([]byte("not a gob stream"))
	assert.Error(t, err)
}
