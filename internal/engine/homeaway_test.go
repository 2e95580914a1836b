package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvaluator(p *Problem) *evaluator {
	matchups := GenerateMatchups(p.Teams, p.Weights)
	return newEvaluator(p.Teams, matchups, BuildDistanceTable(p.Teams), p.Weights)
}

// solveVenues retries random seeds until the assignor yields a finite
// cost. Random seeding legitimately produces infeasible candidates (the
// orchestrator simply tries again), so tests assert on a feasible one.
func solveVenues(t *testing.T, p *Problem) ([]Fixture, float64) {
	t.Helper()
	eval := testEvaluator(p)
	for seed := int64(0); seed < 200; seed++ {
		fixtures := testFixtures(p.Teams)
		rng := rand.New(rand.NewSource(seed))
		if cost := assignHomeAway(fixtures, p, eval, rng); !math.IsInf(cost, 1) {
			return fixtures, cost
		}
	}
	t.Fatal("no seed produced a feasible venue assignment")
	return nil, 0
}

func TestAssignHomeAwayProducesFeasibleVenues(t *testing.T) {
	p := testProblem()
	fixtures, cost := solveVenues(t, p)

	assert.True(t, feasible(fixtures, p.Locks, p.LastYearHome))
	assert.InDelta(t, cost, testEvaluator(p).evaluate(fixtures).Total, 1e-9)
}

func TestAssignHomeAwayHonorsLocks(t *testing.T) {
	p := testProblem()
	p.Locks = LockMap{"mci": {1: VenueAway}} // round 2, 0-based

	fixtures, _ := solveVenues(t, p)
	for _, f := range fixtures {
		if f.Round == 1 && f.Involves("mci") {
			assert.Equal(t, "mci", f.Away.ID)
		}
	}
}

func TestAssignHomeAwayHonorsAlternation(t *testing.T) {
	p := testProblem()
	// Arsenal hosted Liverpool last season, so Liverpool hosts now.
	p.LastYearHome = LastYearMap{NewPairKey("ars", "liv"): "ars"}

	fixtures, _ := solveVenues(t, p)
	for _, f := range fixtures {
		if f.Key() == NewPairKey("ars", "liv") {
			assert.Equal(t, "liv", f.Home.ID)
		}
	}
}

func TestAssignHomeAwayInfeasibleIsInfinite(t *testing.T) {
	p := testProblem()
	// Lock contradicts last season: Arsenal must host round 5 per the
	// lock, but hosted Liverpool (their only round-5 opponent) last year.
	p.Locks = LockMap{"ars": {4: VenueHome}}
	p.LastYearHome = LastYearMap{NewPairKey("ars", "liv"): "ars"}

	eval := testEvaluator(p)
	for seed := int64(0); seed < 20; seed++ {
		fixtures := testFixtures(p.Teams)
		rng := rand.New(rand.NewSource(seed))
		cost := assignHomeAway(fixtures, p, eval, rng)
		assert.True(t, math.IsInf(cost, 1), "seed %d", seed)
	}
}

func TestLocalSearchNeverWorsensCost(t *testing.T) {
	p := testProblem()
	p.Weights.RunLocalSearch = false // isolate phases 1-3 first
	eval := testEvaluator(p)

	fixtures, before := solveVenues(t, p)
	require.True(t, feasible(fixtures, p.Locks, p.LastYearHome))

	after := localSearch(fixtures, p, eval, before)

	assert.LessOrEqual(t, after, before)
	assert.True(t, feasible(fixtures, p.Locks, p.LastYearHome))
	assert.InDelta(t, after, eval.evaluate(fixtures).Total, 1e-9)
}

func TestVenueFree(t *testing.T) {
	p := testProblem()
	fixtures := testFixtures(p.Teams)

	t.Run("unconstrained fixture is free", func(t *testing.T) {
		assert.True(t, venueFree(fixtures[0], p))
	})

	t.Run("locked fixture is not", func(t *testing.T) {
		p.Locks = LockMap{"ars": {0: VenueHome}}
		assert.False(t, venueFree(fixtures[0], p))
	})

	t.Run("alternation-bound fixture is not", func(t *testing.T) {
		p.Locks = LockMap{}
		p.LastYearHome = LastYearMap{fixtures[0].Key(): "avl"}
		assert.False(t, venueFree(fixtures[0], p))
	})
}
