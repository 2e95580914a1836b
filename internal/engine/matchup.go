package engine

// GenerateMatchups builds all C(6,2)=15 pairings. The stronger-ranked
// team is placed on the home side as a provisional assignment; the
// home/away assignor owns the final venue decision.
func GenerateMatchups(teams []Team, w Weights) []Matchup {
	matchups := make([]Matchup, 0, MatchupCount)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			home, away := &teams[i], &teams[j]
			if away.Ranking < home.Ranking {
				home, away = away, home
			}
			matchups = append(matchups, Matchup{
				Home:            home,
				Away:            away,
				Competitiveness: competitiveness(home.Ranking, away.Ranking, w),
			})
		}
	}
	return matchups
}

// competitiveness scores a pairing from the two rankings: alpha rewards
// rank closeness, beta rewards combined strength. With 6 teams ranked
// 1..6 the score is highest for the 1-vs-2 fixture.
func competitiveness(rankA, rankB int, w Weights) float64 {
	diff := rankA - rankB
	if diff < 0 {
		diff = -diff
	}
	closeness := float64(TeamCount - diff)
	strength := float64(2*TeamCount - (rankA + rankB))
	return w.Alpha*closeness + w.Beta*strength
}

// topPair returns the pair key of the two best-ranked teams.
func topPair(teams []Team) PairKey {
	var first, second *Team
	for i := range teams {
		t := &teams[i]
		switch {
		case first == nil || t.Ranking < first.Ranking:
			first, second = t, first
		case second == nil || t.Ranking < second.Ranking:
			second = t
		}
	}
	return NewPairKey(first.ID, second.ID)
}
