package engine

import (
	"fmt"
	"time"
)

// kickoff is an offset from a round's weekend-start Friday.
type kickoff struct {
	dayOffset int // 0 = Friday, 1 = Saturday, 2 = Sunday
	hour      int
}

// Rounds 1-4 offer four candidate kickoffs.
var regularKickoffs = []kickoff{
	{0, 20}, // Friday 20:00
	{1, 14}, // Saturday 14:00
	{1, 20}, // Saturday 20:00
	{2, 14}, // Sunday 14:00
}

// Round 5 is Super Saturday: three same-day slots, the title game last.
var superSaturdayKickoffs = []kickoff{
	{1, 14},
	{1, 16},
	{1, 18},
}

// assignDates stamps every fixture with a concrete kickoff time. The
// season anchors on the first Friday of February; each round's weekend
// starts WeekSlot weeks later. Rivalry fixtures take the prime Saturday
// and Sunday slots; the top-two fixture owns Super Saturday's 18:00 slot.
// Fixtures are mutated in place; an error rejects the whole candidate.
func assignDates(fixtures []Fixture, seasonYear int, rivalries []PairKey, top PairKey) error {
	anchor := seasonAnchor(seasonYear)

	byRound := make([][]int, RoundCount)
	for i, f := range fixtures {
		if f.Round < 0 || f.Round >= RoundCount {
			return fmt.Errorf("fixture %s-%s has round %d out of range", f.Home.ID, f.Away.ID, f.Round)
		}
		byRound[f.Round] = append(byRound[f.Round], i)
	}
	for r, idxs := range byRound {
		if len(idxs) != FixturesPerRound {
			return fmt.Errorf("round %d has %d fixtures, want %d", r+1, len(idxs), FixturesPerRound)
		}
	}

	for r, idxs := range byRound {
		weekend := anchor.AddDate(0, 0, fixtures[idxs[0]].WeekSlot*7)
		if r == RoundCount-1 {
			assignSuperSaturday(fixtures, idxs, weekend, top)
		} else {
			assignRegularRound(fixtures, idxs, weekend, rivalries)
		}
	}
	return nil
}

// assignRegularRound pins the round's first rivalry fixture to Saturday
// 20:00 and a second one to Sunday 14:00; everything else fills the
// remaining slots in input order.
func assignRegularRound(fixtures []Fixture, idxs []int, weekend time.Time, rivalries []PairKey) {
	taken := make([]bool, len(regularKickoffs))
	dated := make([]bool, len(idxs))

	rivalrySlots := []int{2, 3} // Saturday 20:00, Sunday 14:00
	next := 0
	for pos, i := range idxs {
		if next >= len(rivalrySlots) {
			break
		}
		if !isRivalry(fixtures[i], rivalries) {
			continue
		}
		slot := rivalrySlots[next]
		fixtures[i].Date = at(weekend, regularKickoffs[slot])
		taken[slot] = true
		dated[pos] = true
		next++
	}

	slot := 0
	for pos, i := range idxs {
		if dated[pos] {
			continue
		}
		for taken[slot] {
			slot++
		}
		fixtures[i].Date = at(weekend, regularKickoffs[slot])
		taken[slot] = true
	}
}

// assignSuperSaturday fills the final round's three Saturday slots,
// forcing the top-ranked pairing into the 18:00 finale when present.
func assignSuperSaturday(fixtures []Fixture, idxs []int, weekend time.Time, top PairKey) {
	taken := make([]bool, len(superSaturdayKickoffs))
	dated := make([]bool, len(idxs))

	for pos, i := range idxs {
		if fixtures[i].Key() == top {
			fixtures[i].Date = at(weekend, superSaturdayKickoffs[2])
			taken[2] = true
			dated[pos] = true
			break
		}
	}

	slot := 0
	for pos, i := range idxs {
		if dated[pos] {
			continue
		}
		for taken[slot] {
			slot++
		}
		fixtures[i].Date = at(weekend, superSaturdayKickoffs[slot])
		taken[slot] = true
	}
}

func isRivalry(f Fixture, rivalries []PairKey) bool {
	key := f.Key()
	for _, r := range rivalries {
		if r == key {
			return true
		}
	}
	return false
}

// seasonAnchor returns the first Friday of February at midnight UTC.
func seasonAnchor(year int) time.Time {
	d := time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func at(weekend time.Time, k kickoff) time.Time {
	return weekend.AddDate(0, 0, k.dayOffset).Add(time.Duration(k.hour) * time.Hour)
}
