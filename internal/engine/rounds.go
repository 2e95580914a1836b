package engine

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// roundSolver assigns the 15 matchups into 5 rounds of 3 fixtures by
// recursive backtracking. Round buckets are append/truncate only, so a
// failed branch can never leak fixtures into its siblings.
type roundSolver struct {
	matchups   []Matchup
	matchSlots []int // roundIndex -> weekSlotIndex
	visitOrder [RoundCount]int

	rounds   [RoundCount][]Fixture
	occupied [RoundCount]map[string]bool

	// memo records failed states keyed by matchup index plus the
	// canonical per-round team sets, so a verdict is only reused for a
	// genuinely identical partial assignment.
	memo map[string]bool
}

// assignRounds places ordered matchups into rounds. On success every
// fixture carries its round and week-slot index.
func assignRounds(matchups []Matchup, matchSlots []int, strat Strategy, rng *rand.Rand) ([]Fixture, bool) {
	if len(matchups) != MatchupCount || len(matchSlots) != RoundCount {
		return nil, false
	}

	s := &roundSolver{
		matchups:   strat.orderMatchups(matchups, rng),
		matchSlots: matchSlots,
		visitOrder: strat.roundOrder(rng),
		memo:       make(map[string]bool),
	}
	for r := range s.occupied {
		s.occupied[r] = make(map[string]bool, TeamCount)
	}

	if !s.place(0) {
		return nil, false
	}

	fixtures := make([]Fixture, 0, MatchupCount)
	for r := range s.rounds {
		if len(s.rounds[r]) != FixturesPerRound {
			return nil, false
		}
		fixtures = append(fixtures, s.rounds[r]...)
	}
	return fixtures, true
}

func (s *roundSolver) place(idx int) bool {
	if idx == len(s.matchups) {
		for r := range s.rounds {
			if len(s.rounds[r]) != FixturesPerRound {
				return false
			}
		}
		return true
	}

	key := s.stateKey(idx)
	if s.memo[key] {
		return false
	}

	m := s.matchups[idx]
	for _, r := range s.visitOrder {
		if !s.admits(r, m) {
			continue
		}
		s.push(r, m)
		if s.place(idx + 1) {
			return true
		}
		s.pop(r, m)
	}

	s.memo[key] = true
	return false
}

// admits reports whether round r can take the matchup: room left and
// neither team already playing that weekend.
func (s *roundSolver) admits(r int, m Matchup) bool {
	if len(s.rounds[r]) >= FixturesPerRound {
		return false
	}
	return !s.occupied[r][m.Home.ID] && !s.occupied[r][m.Away.ID]
}

func (s *roundSolver) push(r int, m Matchup) {
	s.rounds[r] = append(s.rounds[r], Fixture{
		Matchup:  m,
		Round:    r,
		WeekSlot: s.matchSlots[r],
	})
	s.occupied[r][m.Home.ID] = true
	s.occupied[r][m.Away.ID] = true
}

func (s *roundSolver) pop(r int, m Matchup) {
	s.rounds[r] = s.rounds[r][:len(s.rounds[r])-1]
	delete(s.occupied[r], m.Home.ID)
	delete(s.occupied[r], m.Away.ID)
}

// stateKey canonicalizes the partial assignment: matchup cursor plus the
// sorted team-id set of every round. Two states with equal keys have
// identical remaining subproblems.
func (s *roundSolver) stateKey(idx int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(idx))
	for r := range s.rounds {
		b.WriteByte('|')
		ids := make([]string, 0, 2*len(s.rounds[r]))
		for id := range s.occupied[r] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		b.WriteString(strings.Join(ids, ","))
	}
	return b.String()
}
