package engine

import (
	"math/rand"
	"testing"
)

func TestOrderMatchups(t *testing.T) {
	p := testProblem()
	matchups := GenerateMatchups(p.Teams, p.Weights)
	rng := rand.New(rand.NewSource(1))

	t.Run("descending puts big games first", func(t *testing.T) {
		ordered := StrategyDescending.orderMatchups(matchups, rng)
		for i := 1; i < len(ordered); i++ {
			if ordered[i].Competitiveness > ordered[i-1].Competitiveness {
				t.Fatalf("matchup %d (%v) more competitive than %d (%v)",
					i, ordered[i].Competitiveness, i-1, ordered[i-1].Competitiveness)
			}
		}
	})

	t.Run("ascending is the mirror image", func(t *testing.T) {
		ordered := StrategyAscending.orderMatchups(matchups, rng)
		for i := 1; i < len(ordered); i++ {
			if ordered[i].Competitiveness < ordered[i-1].Competitiveness {
				t.Fatalf("matchup %d less competitive than %d", i, i-1)
			}
		}
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := append([]Matchup(nil), matchups...)
		StrategyRandom.orderMatchups(matchups, rng)
		for i := range matchups {
			if matchups[i].Key() != before[i].Key() {
				t.Fatalf("matchup %d reordered in place", i)
			}
		}
	})
}

func TestRoundOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("descending tries late rounds first", func(t *testing.T) {
		order := StrategyDescending.roundOrder(rng)
		if order != [RoundCount]int{4, 3, 2, 1, 0} {
			t.Errorf("order = %v", order)
		}
	})

	t.Run("ascending tries early rounds first", func(t *testing.T) {
		order := StrategyAscending.roundOrder(rng)
		if order != [RoundCount]int{0, 1, 2, 3, 4} {
			t.Errorf("order = %v", order)
		}
	})

	t.Run("random is a permutation", func(t *testing.T) {
		order := StrategyRandom.roundOrder(rng)
		seen := make(map[int]bool)
		for _, r := range order {
			if r < 0 || r >= RoundCount || seen[r] {
				t.Fatalf("order = %v is not a permutation", order)
			}
			seen[r] = true
		}
	})
}

func TestStrategyString(t *testing.T) {
	cases := map[Strategy]string{
		StrategyDescending: "descending",
		StrategyAscending:  "ascending",
		StrategyRandom:     "random",
		Strategy(99):       "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", s, got, want)
		}
	}
}
