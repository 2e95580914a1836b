package engine

import (
	"errors"
	"sort"
	"time"
)

// Number of teams the engine supports. The round structure (5 rounds of 3
// fixtures) is derived from it and hard-wired throughout.
const (
	TeamCount        = 6
	RoundCount       = TeamCount - 1
	FixturesPerRound = TeamCount / 2
	MatchupCount     = TeamCount * (TeamCount - 1) / 2
)

// ErrNoFeasibleSchedule is returned when no pattern/strategy combination
// produced a schedule satisfying every hard constraint.
var ErrNoFeasibleSchedule = errors.New("no feasible schedule found for any rest pattern and ordering strategy")

// Stadium is a team's home ground.
type Stadium struct {
	ID        string
	City      string
	Latitude  float64
	Longitude float64
}

// Team is an immutable engine input. Ranking 1 is the strongest team.
type Team struct {
	ID      string
	Name    string
	Ranking int
	Stadium Stadium
}

// PairKey identifies an unordered team pair. A <= B always.
type PairKey struct {
	A, B string
}

// NewPairKey normalizes two team ids into a PairKey.
func NewPairKey(a, b string) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Venue is a forced or resolved home/away assignment.
type Venue int

const (
	VenueAway Venue = iota
	VenueHome
)

// Matchup is one of the 15 unordered pairings, scored by how interesting
// the game is expected to be.
type Matchup struct {
	Home            *Team
	Away            *Team
	Competitiveness float64
}

// Key returns the matchup's normalized pair key.
func (m Matchup) Key() PairKey {
	return NewPairKey(m.Home.ID, m.Away.ID)
}

// Fixture is a matchup placed into the season: a round, a calendar week
// slot, a resolved venue (Home hosts Away), and eventually a kickoff time.
type Fixture struct {
	Matchup
	Round    int // 0..4
	WeekSlot int // position in the season calendar, rest weeks included
	Date     time.Time
}

// Flip swaps the fixture's home and away sides.
func (f *Fixture) Flip() {
	f.Home, f.Away = f.Away, f.Home
}

// Involves reports whether the fixture includes the given team.
func (f *Fixture) Involves(teamID string) bool {
	return f.Home.ID == teamID || f.Away.ID == teamID
}

// RestPattern marks which calendar slots host a round (true) and which are
// rest weekends (false). Exactly RoundCount slots are true.
type RestPattern []bool

// MatchSlots returns the calendar indices of the match weekends, in order.
func (p RestPattern) MatchSlots() []int {
	slots := make([]int, 0, RoundCount)
	for i, match := range p {
		if match {
			slots = append(slots, i)
		}
	}
	return slots
}

// InteriorRests counts rest weekends falling strictly between the first
// and last match weekend. Leading and trailing rests merely shift the
// season and are not counted.
func (p RestPattern) InteriorRests() int {
	slots := p.MatchSlots()
	if len(slots) == 0 {
		return 0
	}
	return slots[len(slots)-1] - slots[0] + 1 - len(slots)
}

// LockMap is the externally supplied set of hard venue locks:
// team id -> round index (0-based) -> forced venue.
type LockMap map[string]map[int]Venue

// LastYearMap records, per unordered pair, which team was home last
// season. The alternation rule forces the other team home this season.
type LastYearMap map[PairKey]string

// Problem is one scheduling request. All fields are read-only to the
// engine; each run works on its own copies of anything it mutates.
type Problem struct {
	Teams              []Team
	LastYearHome       LastYearMap
	Locks              LockMap
	Rivalries          []PairKey
	SeasonYear         int
	RequestedRestWeeks int // 0 means any interior-rest count
	Weights            Weights
}

// Schedule is a complete candidate: 15 fixtures, the rest pattern they
// were placed on, and the evaluated cost.
type Schedule struct {
	Fixtures  []Fixture
	Pattern   RestPattern
	Cost      float64
	Breakdown CostBreakdown
}

// Clone returns a deep, independently mutable copy of the schedule.
// Teams are immutable and stay shared.
func (s *Schedule) Clone() *Schedule {
	out := &Schedule{
		Fixtures:  append([]Fixture(nil), s.Fixtures...),
		Pattern:   append(RestPattern(nil), s.Pattern...),
		Cost:      s.Cost,
		Breakdown: s.Breakdown,
	}
	return out
}

// FixtureRecord is the flat output row handed to callers: ids only, ready
// for persistence or rendering.
type FixtureRecord struct {
	Round      int // 1-based
	Date       time.Time
	HomeTeamID string
	AwayTeamID string
	StadiumID  string
	Location   string
	Season     int
}

// Records returns the schedule's fixtures as flat rows in kickoff order.
func (s *Schedule) Records(season int) []FixtureRecord {
	records := make([]FixtureRecord, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		records = append(records, FixtureRecord{
			Round:      f.Round + 1,
			Date:       f.Date,
			HomeTeamID: f.Home.ID,
			AwayTeamID: f.Away.ID,
			StadiumID:  f.Home.Stadium.ID,
			Location:   f.Home.Stadium.City,
			Season:     season,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}
