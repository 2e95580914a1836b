package engine

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

const (
	defaultAnnealIterations = 400
	initialTemperature      = 50.0
	coolingFactor           = 0.95
	stallKickFactor         = 0.9
	stallLimit              = 20
)

// anneal polishes a complete feasible schedule with simulated annealing.
// Moves: flip a free fixture's venue (40%), swap two fixtures between
// rounds (30%), or scatter one round's fixtures to random rounds (30%,
// the big jump out of local optima). Infeasible proposals are discarded;
// worsening ones are accepted with the Metropolis probability
// exp(-delta/temperature). The best schedule ever visited is tracked and
// returned, not merely the end of the random walk.
func anneal(sched *Schedule, p *Problem, eval *evaluator, rng *rand.Rand, iterations int, log zerolog.Logger) *Schedule {
	if iterations <= 0 {
		iterations = defaultAnnealIterations
	}
	matchSlots := sched.Pattern.MatchSlots()
	top := topPair(p.Teams)

	current := append([]Fixture(nil), sched.Fixtures...)
	currentCost := sched.Cost
	best := sched.Clone()

	temp := initialTemperature
	stall := 0
	accepted := 0

	for iter := 0; iter < iterations; iter++ {
		candidate := append([]Fixture(nil), current...)
		moved, redate := propose(candidate, p, matchSlots, rng)
		if moved {
			if redate {
				if err := assignDates(candidate, p.SeasonYear, p.Rivalries, top); err != nil {
					moved = false
				}
			}
			if moved && !feasible(candidate, p.Locks, p.LastYearHome) {
				moved = false
			}
		}

		if moved {
			cost := eval.evaluate(candidate).Total
			delta := cost - currentCost
			if delta < 0 || rng.Float64() < math.Exp(-delta/temp) {
				current = candidate
				currentCost = cost
				accepted++
				stall = 0
				if cost < best.Cost {
					best.Fixtures = append(best.Fixtures[:0], candidate...)
					best.Breakdown = eval.evaluate(candidate)
					best.Cost = best.Breakdown.Total
				}
			} else {
				stall++
			}
		} else {
			stall++
		}

		temp *= coolingFactor
		if stall >= stallLimit {
			temp *= stallKickFactor
			stall = 0
		}
	}

	log.Debug().
		Int("iterations", iterations).
		Int("accepted", accepted).
		Float64("cost", best.Cost).
		Msg("annealing finished")

	return best
}

// propose mutates candidate with one random move. Returns whether a move
// was applied and whether kickoff dates must be recomputed.
func propose(candidate []Fixture, p *Problem, matchSlots []int, rng *rand.Rand) (moved, redate bool) {
	switch roll := rng.Float64(); {
	case roll < 0.4:
		return flipMove(candidate, p, rng), false
	case roll < 0.7:
		return swapMove(candidate, rng), true
	default:
		return scatterMove(candidate, matchSlots, rng), true
	}
}

// flipMove flips the venue of a random unlocked, unconstrained fixture.
func flipMove(candidate []Fixture, p *Problem, rng *rand.Rand) bool {
	i := rng.Intn(len(candidate))
	if !venueFree(candidate[i], p) {
		return false
	}
	candidate[i].Flip()
	return true
}

// swapMove exchanges the round (and week slot) of two fixtures in
// different rounds.
func swapMove(candidate []Fixture, rng *rand.Rand) bool {
	i, j := rng.Intn(len(candidate)), rng.Intn(len(candidate))
	if candidate[i].Round == candidate[j].Round {
		return false
	}
	candidate[i].Round, candidate[j].Round = candidate[j].Round, candidate[i].Round
	candidate[i].WeekSlot, candidate[j].WeekSlot = candidate[j].WeekSlot, candidate[i].WeekSlot
	return true
}

// scatterMove reassigns every fixture of one random round to an
// independently random round. Almost always infeasible, occasionally the
// jump that escapes a local optimum.
func scatterMove(candidate []Fixture, matchSlots []int, rng *rand.Rand) bool {
	target := rng.Intn(RoundCount)
	moved := false
	for i := range candidate {
		if candidate[i].Round != target {
			continue
		}
		r := rng.Intn(RoundCount)
		candidate[i].Round = r
		candidate[i].WeekSlot = matchSlots[r]
		moved = true
	}
	return moved
}
