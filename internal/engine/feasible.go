package engine

// feasible is the hard-constraint oracle. It is pure: it inspects the
// fixture set and the problem's locks and prior-season map, short-circuits
// on the first violated rule, and never mutates anything. It runs on
// nearly every search step, so every check is O(fixtures).
func feasible(fixtures []Fixture, locks LockMap, lastYear LastYearMap) bool {
	return roundShapeOK(fixtures) &&
		locksOK(fixtures, locks) &&
		alternationOK(fixtures, lastYear) &&
		awayStreaksOK(fixtures) &&
		homeCountsOK(fixtures)
}

// roundShapeOK: every round holds exactly 3 fixtures covering 6 distinct
// teams.
func roundShapeOK(fixtures []Fixture) bool {
	if len(fixtures) != MatchupCount {
		return false
	}
	var counts [RoundCount]int
	var teams [RoundCount]map[string]bool
	for _, f := range fixtures {
		if f.Round < 0 || f.Round >= RoundCount {
			return false
		}
		counts[f.Round]++
		if teams[f.Round] == nil {
			teams[f.Round] = make(map[string]bool, TeamCount)
		}
		if teams[f.Round][f.Home.ID] || teams[f.Round][f.Away.ID] {
			return false
		}
		teams[f.Round][f.Home.ID] = true
		teams[f.Round][f.Away.ID] = true
	}
	for r := range counts {
		if counts[r] != FixturesPerRound {
			return false
		}
	}
	return true
}

// locksOK: every externally forced venue is honored exactly.
func locksOK(fixtures []Fixture, locks LockMap) bool {
	for _, f := range fixtures {
		if v, ok := locks[f.Home.ID][f.Round]; ok && v != VenueHome {
			return false
		}
		if v, ok := locks[f.Away.ID][f.Round]; ok && v != VenueAway {
			return false
		}
	}
	return true
}

// alternationOK: a team that hosted a pairing last season must travel
// this season.
func alternationOK(fixtures []Fixture, lastYear LastYearMap) bool {
	for _, f := range fixtures {
		if prevHome, ok := lastYear[f.Key()]; ok && prevHome == f.Home.ID {
			return false
		}
	}
	return true
}

// awayStreaksOK: no team is away on 3 consecutive calendar weekends.
// Adjacency is measured on WeekSlot, so a rest weekend breaks the streak.
func awayStreaksOK(fixtures []Fixture) bool {
	awayAt := make(map[string]map[int]bool, TeamCount)
	for _, f := range fixtures {
		if awayAt[f.Away.ID] == nil {
			awayAt[f.Away.ID] = make(map[int]bool, RoundCount)
		}
		awayAt[f.Away.ID][f.WeekSlot] = true
	}
	for _, slots := range awayAt {
		for slot := range slots {
			if slots[slot+1] && slots[slot+2] {
				return false
			}
		}
	}
	return true
}

// homeCountsOK: every team hosts 2 or 3 of its 5 fixtures.
func homeCountsOK(fixtures []Fixture) bool {
	homes := make(map[string]int, TeamCount)
	for _, f := range fixtures {
		homes[f.Home.ID]++
	}
	for _, f := range fixtures {
		for _, id := range []string{f.Home.ID, f.Away.ID} {
			if n := homes[id]; n < 2 || n > 3 {
				return false
			}
		}
	}
	return true
}
