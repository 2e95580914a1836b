package engine

import (
	"math"
	"time"

	"github.com/samber/lo"
)

// CostBreakdown holds the weighted contribution of every soft-cost term.
// Total is their sum. Evaluating the same schedule twice yields identical
// numbers; the evaluator keeps no state between calls.
type CostBreakdown struct {
	ConsecutiveAway float64
	MaxTravel       float64
	TotalTravel     float64
	TravelStdDev    float64
	Competitiveness float64
	Broadcast       float64
	Timeslot        float64
	ShortGap        float64
	Top2MissedSlot  float64
	Total           float64
}

// evaluator computes the soft cost of candidate schedules. Date-dependent
// terms (broadcast, timeslot, short gap, top-two slot) contribute zero
// until fixtures carry kickoff times.
type evaluator struct {
	distances DistanceTable
	weights   Weights
	top       PairKey
	meanComp  float64
}

func newEvaluator(teams []Team, matchups []Matchup, distances DistanceTable, w Weights) *evaluator {
	return &evaluator{
		distances: distances,
		weights:   w,
		top:       topPair(teams),
		meanComp: lo.SumBy(matchups, func(m Matchup) float64 { return m.Competitiveness }) /
			float64(len(matchups)),
	}
}

func (e *evaluator) evaluate(fixtures []Fixture) CostBreakdown {
	w := e.weights
	travel := e.teamTravel(fixtures)
	travels := lo.Values(travel)

	b := CostBreakdown{
		ConsecutiveAway: w.W1 * consecutiveAwayPairs(fixtures),
		MaxTravel:       w.W2 * lo.Max(travels),
		TotalTravel:     w.WTravelTotal * lo.Sum(travels),
		TravelStdDev:    w.WTravelFair * stddev(travels),
		Competitiveness: w.W3 * competitivenessOrdering(fixtures),
		Broadcast:       w.WFri * e.broadcastOverload(fixtures),
		Timeslot:        w.WSlot * e.timeslotAdjustments(fixtures),
		ShortGap:        w.WShortGap * shortGaps(fixtures, w.MinGapDays),
		Top2MissedSlot:  w.W4 * e.top2MissedSlot(fixtures),
	}
	b.Total = b.ConsecutiveAway + b.MaxTravel + b.TotalTravel + b.TravelStdDev +
		b.Competitiveness + b.Broadcast + b.Timeslot + b.ShortGap + b.Top2MissedSlot
	return b
}

// teamTravel sums each team's round-trip travel: the away side commutes
// to the host's stadium and back.
func (e *evaluator) teamTravel(fixtures []Fixture) map[string]float64 {
	travel := make(map[string]float64, TeamCount)
	for _, f := range fixtures {
		if _, ok := travel[f.Home.ID]; !ok {
			travel[f.Home.ID] = 0 // hosts with no away games still count for fairness
		}
		travel[f.Away.ID] += 2 * e.distances.Between(f.Home.ID, f.Away.ID)
	}
	return travel
}

// consecutiveAwayPairs counts, per team, adjacent calendar weekends both
// played away. The hard rule forbids three in a row; this softly
// discourages even two.
func consecutiveAwayPairs(fixtures []Fixture) float64 {
	awayAt := make(map[string]map[int]bool, TeamCount)
	for _, f := range fixtures {
		if awayAt[f.Away.ID] == nil {
			awayAt[f.Away.ID] = make(map[int]bool, RoundCount)
		}
		awayAt[f.Away.ID][f.WeekSlot] = true
	}
	pairs := 0
	for _, slots := range awayAt {
		for slot := range slots {
			if slots[slot+1] {
				pairs++
			}
		}
	}
	return float64(pairs)
}

// competitivenessOrdering penalizes interesting matchups placed early:
// each fixture contributes its score times the rounds remaining after it.
func competitivenessOrdering(fixtures []Fixture) float64 {
	total := 0.0
	for _, f := range fixtures {
		total += f.Competitiveness * float64(RoundCount-1-f.Round)
	}
	return total
}

// broadcastOverload charges FridayNightPenalty per Friday-20:00 fixture
// beyond the configured limit.
func (e *evaluator) broadcastOverload(fixtures []Fixture) float64 {
	nights := lo.CountBy(fixtures, func(f Fixture) bool {
		return !f.Date.IsZero() && f.Date.Weekday() == time.Friday && f.Date.Hour() == 20
	})
	excess := nights - e.weights.FridayNightLimit
	if excess <= 0 {
		return 0
	}
	return float64(excess) * e.weights.FridayNightPenalty
}

// timeslotAdjustments rewards above-average matchups in prime slots
// (Saturday 20:00, Sunday 18:00) and penalizes Friday-night placement
// generally.
func (e *evaluator) timeslotAdjustments(fixtures []Fixture) float64 {
	total := 0.0
	for _, f := range fixtures {
		if f.Date.IsZero() {
			continue
		}
		day, hour := f.Date.Weekday(), f.Date.Hour()
		if day == time.Friday {
			total += 2
		}
		big := f.Competitiveness >= e.meanComp
		if big && ((day == time.Saturday && hour == 20) || (day == time.Sunday && hour == 18)) {
			total -= 3
		}
	}
	return total
}

// shortGaps sums, per team, how far below minGapDays each gap between its
// consecutive fixture dates falls.
func shortGaps(fixtures []Fixture, minGapDays int) float64 {
	dates := make(map[string][]time.Time, TeamCount)
	for _, f := range fixtures {
		if f.Date.IsZero() {
			continue
		}
		dates[f.Home.ID] = insertSortedDate(dates[f.Home.ID], f.Date)
		dates[f.Away.ID] = insertSortedDate(dates[f.Away.ID], f.Date)
	}
	total := 0.0
	for _, ds := range dates {
		for i := 1; i < len(ds); i++ {
			gap := ds[i].Sub(ds[i-1]).Hours() / 24
			if shortfall := float64(minGapDays) - gap; shortfall > 0 {
				total += shortfall
			}
		}
	}
	return total
}

// top2MissedSlot applies the flagship penalty when the two best-ranked
// teams' fixture is not the final 18:00 game of the last round.
func (e *evaluator) top2MissedSlot(fixtures []Fixture) float64 {
	for _, f := range fixtures {
		if f.Key() != e.top {
			continue
		}
		if f.Date.IsZero() {
			return 0
		}
		if f.Round == RoundCount-1 && f.Date.Hour() == 18 {
			return 0
		}
		return e.weights.Top2MissedSlotPenalty
	}
	return 0
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := lo.Sum(values) / float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}

func insertSortedDate(dates []time.Time, d time.Time) []time.Time {
	i := 0
	for i < len(dates) && dates[i].Before(d) {
		i++
	}
	dates = append(dates, time.Time{})
	copy(dates[i+1:], dates[i:])
	dates[i] = d
	return dates
}
