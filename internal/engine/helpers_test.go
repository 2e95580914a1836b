package engine

import "time"

// testTeams returns six ranked teams with real stadium coordinates.
func testTeams() []Team {
	return []Team{
		{ID: "ars", Name: "Arsenal", Ranking: 1, Stadium: Stadium{ID: "emirates", City: "London", Latitude: 51.5549, Longitude: -0.1084}},
		{ID: "liv", Name: "Liverpool", Ranking: 2, Stadium: Stadium{ID: "anfield", City: "Liverpool", Latitude: 53.4308, Longitude: -2.9608}},
		{ID: "mci", Name: "Manchester City", Ranking: 3, Stadium: Stadium{ID: "etihad", City: "Manchester", Latitude: 53.4831, Longitude: -2.2004}},
		{ID: "new", Name: "Newcastle", Ranking: 4, Stadium: Stadium{ID: "st-james", City: "Newcastle", Latitude: 54.9756, Longitude: -1.6217}},
		{ID: "bha", Name: "Brighton", Ranking: 5, Stadium: Stadium{ID: "amex", City: "Brighton", Latitude: 50.8616, Longitude: -0.0837}},
		{ID: "avl", Name: "Aston Villa", Ranking: 6, Stadium: Stadium{ID: "villa-park", City: "Birmingham", Latitude: 52.5092, Longitude: -1.8849}},
	}
}

func testProblem() *Problem {
	return &Problem{
		Teams:              testTeams(),
		LastYearHome:       LastYearMap{},
		Locks:              LockMap{},
		SeasonYear:         2027,
		RequestedRestWeeks: 3,
		Weights:            DefaultWeights(),
	}
}

// testWeekSlots spreads the 5 rounds over an 8-slot calendar with rest
// weekends after rounds 1, 2, and 3.
var testWeekSlots = []int{0, 2, 4, 6, 7}

// testFixtures builds a known-feasible round robin: every round covers
// all six teams, every team hosts 2 or 3 times, and no team plays three
// consecutive away weekends on the test calendar.
func testFixtures(teams []Team) []Fixture {
	byID := make(map[string]*Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	rounds := [][][2]string{
		{{"ars", "avl"}, {"bha", "liv"}, {"mci", "new"}},
		{{"bha", "ars"}, {"avl", "new"}, {"liv", "mci"}},
		{{"ars", "new"}, {"mci", "bha"}, {"avl", "liv"}},
		{{"mci", "ars"}, {"new", "liv"}, {"bha", "avl"}},
		{{"liv", "ars"}, {"avl", "mci"}, {"new", "bha"}},
	}

	var fixtures []Fixture
	for r, pairs := range rounds {
		for _, pair := range pairs {
			home, away := byID[pair[0]], byID[pair[1]]
			fixtures = append(fixtures, Fixture{
				Matchup: Matchup{
					Home:            home,
					Away:            away,
					Competitiveness: competitiveness(home.Ranking, away.Ranking, DefaultWeights()),
				},
				Round:    r,
				WeekSlot: testWeekSlots[r],
			})
		}
	}
	return fixtures
}

// testDatedFixtures additionally stamps Saturday 14:00 kickoffs.
func testDatedFixtures(teams []Team) []Fixture {
	fixtures := testFixtures(teams)
	anchor := seasonAnchor(2027)
	for i := range fixtures {
		weekend := anchor.AddDate(0, 0, fixtures[i].WeekSlot*7)
		fixtures[i].Date = weekend.AddDate(0, 0, 1).Add(14 * time.Hour)
	}
	return fixtures
}
