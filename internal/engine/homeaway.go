package engine

import (
	"math"
	"math/rand"
)

const localSearchPasses = 300

// assignHomeAway resolves every fixture's venue in four phases: seed from
// locks or coin flips, force prior-season alternation to a fixed point,
// gate on feasibility, then greedy first-improvement flips. Fixtures are
// mutated in place. Returns the resulting cost, or +Inf when the hard
// constraints cannot be met; alternation and locks are never traded for
// cost.
func assignHomeAway(fixtures []Fixture, p *Problem, eval *evaluator, rng *rand.Rand) float64 {
	seedVenues(fixtures, p.Locks, rng)
	enforceAlternation(fixtures, p)

	if !feasible(fixtures, p.Locks, p.LastYearHome) {
		return math.Inf(1)
	}

	cost := eval.evaluate(fixtures).Total
	if p.Weights.RunLocalSearch {
		cost = localSearch(fixtures, p, eval, cost)
	}
	return cost
}

// seedVenues honors per-round locks and randomizes everything else.
func seedVenues(fixtures []Fixture, locks LockMap, rng *rand.Rand) {
	for i := range fixtures {
		f := &fixtures[i]
		if v, ok := locks[f.Home.ID][f.Round]; ok {
			if v == VenueAway {
				f.Flip()
			}
			continue
		}
		if v, ok := locks[f.Away.ID][f.Round]; ok {
			if v == VenueHome {
				f.Flip()
			}
			continue
		}
		if rng.Intn(2) == 1 {
			f.Flip()
		}
	}
}

func hasLock(locks LockMap, teamID string, round int) bool {
	_, ok := locks[teamID][round]
	return ok
}

// enforceAlternation flips every fixture contradicting last season's
// venue. Each flip is reverted if it breaks any other hard rule; the
// alternation rule itself is excluded from that gate, otherwise one
// unresolved violation would veto fixing all the others. Repeats to a
// fixed point, capped at 2x the fixture count to guard against
// oscillation.
func enforceAlternation(fixtures []Fixture, p *Problem) {
	venuesOK := func() bool {
		return locksOK(fixtures, p.Locks) && awayStreaksOK(fixtures) && homeCountsOK(fixtures)
	}
	for pass := 0; pass < 2*len(fixtures); pass++ {
		changed := false
		for i := range fixtures {
			f := &fixtures[i]
			prevHome, ok := p.LastYearHome[f.Key()]
			if !ok || prevHome != f.Home.ID {
				continue
			}
			f.Flip()
			if !venuesOK() {
				f.Flip()
				continue
			}
			changed = true
		}
		if !changed {
			return
		}
	}
}

// localSearch is a bounded first-improvement descent: flip each free
// fixture, keep the flip only if it stays feasible and strictly lowers
// cost. Terminates at a feasibility-respecting local minimum.
func localSearch(fixtures []Fixture, p *Problem, eval *evaluator, cost float64) float64 {
	for pass := 0; pass < localSearchPasses; pass++ {
		improved := false
		for i := range fixtures {
			f := &fixtures[i]
			if !venueFree(*f, p) {
				continue
			}
			f.Flip()
			if feasible(fixtures, p.Locks, p.LastYearHome) {
				if next := eval.evaluate(fixtures).Total; next < cost {
					cost = next
					improved = true
					continue
				}
			}
			f.Flip()
		}
		if !improved {
			break
		}
	}
	return cost
}

// venueFree reports whether a fixture's venue may be flipped: no lock on
// either side for its round and no prior-season alternation entry.
func venueFree(f Fixture, p *Problem) bool {
	if hasLock(p.Locks, f.Home.ID, f.Round) || hasLock(p.Locks, f.Away.ID, f.Round) {
		return false
	}
	_, constrained := p.LastYearHome[f.Key()]
	return !constrained
}
