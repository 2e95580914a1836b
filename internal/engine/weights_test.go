package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWeights(t *testing.T) {
	t.Run("nil map yields defaults", func(t *testing.T) {
		w, err := DecodeWeights(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultWeights(), w)
	})

	t.Run("overrides land, untouched keys keep defaults", func(t *testing.T) {
		w, err := DecodeWeights(map[string]any{
			"w1":             3,
			"minGapDays":     9,
			"runLocalSearch": false,
		})
		require.NoError(t, err)
		assert.Equal(t, 3.0, w.W1)
		assert.Equal(t, 9, w.MinGapDays)
		assert.False(t, w.RunLocalSearch)
		assert.Equal(t, DefaultWeights().WFri, w.WFri)
		assert.Equal(t, DefaultWeights().Top2MissedSlotPenalty, w.Top2MissedSlotPenalty)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := DecodeWeights(map[string]any{"w9": 1})
		assert.Error(t, err)
	})

	t.Run("weakly typed numbers are accepted", func(t *testing.T) {
		w, err := DecodeWeights(map[string]any{"alpha": "2.5"})
		require.NoError(t, err)
		assert.Equal(t, 2.5, w.Alpha)
	})
}
