package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMatchups(t *testing.T) {
	teams := testTeams()
	matchups := GenerateMatchups(teams, DefaultWeights())

	t.Run("all 15 pairings, no duplicates", func(t *testing.T) {
		assert.Len(t, matchups, MatchupCount)
		seen := make(map[PairKey]bool)
		for _, m := range matchups {
			assert.False(t, seen[m.Key()], "duplicate pairing %v", m.Key())
			seen[m.Key()] = true
		}
	})

	t.Run("top-two fixture scores highest", func(t *testing.T) {
		top := NewPairKey("ars", "liv")
		for _, m := range matchups {
			if m.Key() == top {
				continue
			}
			topScore := competitiveness(1, 2, DefaultWeights())
			assert.LessOrEqual(t, m.Competitiveness, topScore)
		}
	})

	t.Run("stronger rank provisionally hosts", func(t *testing.T) {
		for _, m := range matchups {
			assert.Less(t, m.Home.Ranking, m.Away.Ranking)
		}
	})
}

func TestCompetitiveness(t *testing.T) {
	w := DefaultWeights()

	t.Run("closer ranks score higher at equal strength sum", func(t *testing.T) {
		// 3+4 and 2+5 have the same sum; the closer pairing wins.
		assert.Greater(t, competitiveness(3, 4, w), competitiveness(2, 5, w))
	})

	t.Run("stronger pair scores higher at equal diff", func(t *testing.T) {
		assert.Greater(t, competitiveness(1, 2, w), competitiveness(5, 6, w))
	})
}

func TestTopPair(t *testing.T) {
	assert.Equal(t, NewPairKey("ars", "liv"), topPair(testTeams()))
}
