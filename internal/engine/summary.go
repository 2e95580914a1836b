package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Summary renders the schedule as a line-oriented report: the cost
// breakdown, per-team travel, and the fixture list in kickoff order.
func (s *Schedule) Summary(teams []Team, distances DistanceTable) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total cost: %.2f\n", s.Cost)
	b.WriteString("Cost breakdown:\n")
	for _, term := range []struct {
		name  string
		value float64
	}{
		{"consecutive away", s.Breakdown.ConsecutiveAway},
		{"max travel", s.Breakdown.MaxTravel},
		{"total travel", s.Breakdown.TotalTravel},
		{"travel stddev", s.Breakdown.TravelStdDev},
		{"competitiveness", s.Breakdown.Competitiveness},
		{"broadcast", s.Breakdown.Broadcast},
		{"timeslot", s.Breakdown.Timeslot},
		{"short gap", s.Breakdown.ShortGap},
		{"top-two slot", s.Breakdown.Top2MissedSlot},
	} {
		fmt.Fprintf(&b, "  %-18s %10.2f\n", term.name, term.value)
	}

	b.WriteString("\nPer-team travel (km):\n")
	travel := make(map[string]float64, len(teams))
	for _, f := range s.Fixtures {
		travel[f.Away.ID] += 2 * distances.Between(f.Home.ID, f.Away.ID)
	}
	byID := lo.KeyBy(teams, func(t Team) string { return t.ID })
	ids := lo.Keys(travel)
	for _, t := range teams {
		if !lo.Contains(ids, t.ID) {
			travel[t.ID] = 0
		}
	}
	names := lo.Map(teams, func(t Team, _ int) string { return t.ID })
	sort.Slice(names, func(i, j int) bool {
		return travel[names[i]] > travel[names[j]]
	})
	for _, id := range names {
		fmt.Fprintf(&b, "  %-20s %8.0f\n", byID[id].Name, travel[id])
	}

	b.WriteString("\nFixtures:\n")
	fixtures := append([]Fixture(nil), s.Fixtures...)
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Date.Before(fixtures[j].Date)
	})
	for _, f := range fixtures {
		fmt.Fprintf(&b, "  R%d  %s  %s v %s  (%s)\n",
			f.Round+1,
			f.Date.Format("Mon 02 Jan 15:04"),
			f.Home.Name, f.Away.Name,
			f.Home.Stadium.City)
	}

	return b.String()
}
