package engine

import (
	"math/rand"
	"sort"
)

// Strategy controls the order matchups are fed to the round solver and
// the order rounds are tried for each matchup.
type Strategy int

const (
	// StrategyDescending feeds the most competitive matchups first and
	// tries late rounds first, biasing big games toward the season end.
	StrategyDescending Strategy = iota
	// StrategyAscending is the mirror image.
	StrategyAscending
	// StrategyRandom shuffles matchups and visits rounds in random order.
	StrategyRandom
)

// Strategies lists every ordering strategy the orchestrator iterates.
var Strategies = []Strategy{StrategyDescending, StrategyAscending, StrategyRandom}

func (s Strategy) String() string {
	switch s {
	case StrategyDescending:
		return "descending"
	case StrategyAscending:
		return "ascending"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// orderMatchups returns a fresh slice ordered per the strategy.
func (s Strategy) orderMatchups(matchups []Matchup, rng *rand.Rand) []Matchup {
	ordered := append([]Matchup(nil), matchups...)
	switch s {
	case StrategyDescending:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Competitiveness > ordered[j].Competitiveness
		})
	case StrategyAscending:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Competitiveness < ordered[j].Competitiveness
		})
	case StrategyRandom:
		rng.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	return ordered
}

// roundOrder returns the order in which rounds are offered to each
// matchup during backtracking.
func (s Strategy) roundOrder(rng *rand.Rand) [RoundCount]int {
	var order [RoundCount]int
	for i := range order {
		order[i] = i
	}
	switch s {
	case StrategyDescending:
		for i, j := 0, RoundCount-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	case StrategyRandom:
		rng.Shuffle(RoundCount, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}
