package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"
)

// Options bounds a scheduling run. The engine has no cancellation
// mechanism; worst-case latency is controlled purely by these caps.
type Options struct {
	// Seed fixes the run's randomness; 0 derives one per run.
	Seed int64
	// Runs is the random-restart count of the outer wrapper.
	Runs int
	// AnnealIterations caps the polish pass; 0 uses the default, a
	// negative value disables annealing.
	AnnealIterations int
}

// Solve runs the full search once: for every rest pattern and every
// matchup-ordering strategy it assigns rounds, resolves venues, dates the
// fixtures, and keeps the cheapest feasible schedule. Returns
// ErrNoFeasibleSchedule when every combination fails.
func Solve(p *Problem, opts Options, log zerolog.Logger) (*Schedule, error) {
	if err := validateProblem(p); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	distances := BuildDistanceTable(p.Teams)
	matchups := GenerateMatchups(p.Teams, p.Weights)
	eval := newEvaluator(p.Teams, matchups, distances, p.Weights)
	patterns := GeneratePatterns(p.RequestedRestWeeks)
	top := topPair(p.Teams)

	var best *Schedule
	attempts, infeasible := 0, 0

	for _, pattern := range patterns {
		matchSlots := pattern.MatchSlots()
		for _, strat := range Strategies {
			attempts++

			fixtures, ok := assignRounds(matchups, matchSlots, strat, rng)
			if !ok {
				infeasible++
				continue
			}

			if cost := assignHomeAway(fixtures, p, eval, rng); math.IsInf(cost, 1) {
				infeasible++
				continue
			}

			if err := assignDates(fixtures, p.SeasonYear, p.Rivalries, top); err != nil {
				infeasible++
				continue
			}

			breakdown := eval.evaluate(fixtures)
			candidate := &Schedule{
				Fixtures:  fixtures,
				Pattern:   pattern,
				Cost:      breakdown.Total,
				Breakdown: breakdown,
			}

			if opts.AnnealIterations >= 0 {
				candidate = anneal(candidate, p, eval, rng, opts.AnnealIterations, log)
			}

			log.Debug().
				Str("strategy", strat.String()).
				Ints("matchSlots", matchSlots).
				Float64("cost", candidate.Cost).
				Msg("candidate schedule")

			if best == nil || candidate.Cost < best.Cost {
				best = candidate
			}
		}
	}

	log.Info().
		Int("attempts", attempts).
		Int("infeasible", infeasible).
		Msg("search finished")

	if best == nil {
		return nil, ErrNoFeasibleSchedule
	}
	return best, nil
}

// SolveN repeats Solve with fresh randomness and keeps the global best,
// a crude but effective random restart given the search's sensitivity to
// seeds. Each run receives its own deep copy of the problem, so callers
// may reuse (and concurrently share) the original.
func SolveN(p *Problem, opts Options, log zerolog.Logger) (*Schedule, error) {
	runs := opts.Runs
	if runs <= 0 {
		runs = 1
	}

	seeder := rand.New(rand.NewSource(opts.Seed))
	var best *Schedule

	for run := 0; run < runs; run++ {
		owned := new(Problem)
		if err := deepcopy.Copy(owned, p); err != nil {
			return nil, fmt.Errorf("cloning problem for run %d: %w", run+1, err)
		}

		runOpts := opts
		if opts.Seed != 0 {
			runOpts.Seed = seeder.Int63()
		} else {
			runOpts.Seed = 0
		}

		sched, err := Solve(owned, runOpts, log.With().Int("run", run+1).Logger())
		if err != nil {
			if errors.Is(err, ErrNoFeasibleSchedule) {
				continue
			}
			return nil, err
		}
		if best == nil || sched.Cost < best.Cost {
			best = sched
		}
	}

	if best == nil {
		return nil, ErrNoFeasibleSchedule
	}
	return best, nil
}

func validateProblem(p *Problem) error {
	if len(p.Teams) != TeamCount {
		return fmt.Errorf("scheduling requires exactly %d teams, got %d", TeamCount, len(p.Teams))
	}
	seen := make(map[string]bool, TeamCount)
	for _, t := range p.Teams {
		if t.ID == "" {
			return fmt.Errorf("team %q has no id", t.Name)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate team id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Ranking < 1 {
			return fmt.Errorf("team %q has ranking %d, want >= 1", t.ID, t.Ranking)
		}
	}
	return nil
}
