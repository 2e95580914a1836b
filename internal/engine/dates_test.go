package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonAnchor(t *testing.T) {
	t.Run("first Friday of February 2027", func(t *testing.T) {
		anchor := seasonAnchor(2027)
		assert.Equal(t, time.Friday, anchor.Weekday())
		assert.Equal(t, time.Date(2027, 2, 5, 0, 0, 0, 0, time.UTC), anchor)
	})

	t.Run("February 1st already a Friday", func(t *testing.T) {
		anchor := seasonAnchor(2030)
		assert.Equal(t, time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC), anchor)
	})
}

func TestAssignDates(t *testing.T) {
	teams := testTeams()
	top := topPair(teams)

	t.Run("every fixture is dated on its weekend", func(t *testing.T) {
		fixtures := testFixtures(teams)
		require.NoError(t, assignDates(fixtures, 2027, nil, top))

		anchor := seasonAnchor(2027)
		for _, f := range fixtures {
			assert.False(t, f.Date.IsZero())
			weekend := anchor.AddDate(0, 0, f.WeekSlot*7)
			assert.False(t, f.Date.Before(weekend))
			assert.True(t, f.Date.Before(weekend.AddDate(0, 0, 3)))
		}
	})

	t.Run("rounds 1-4 use the regular kickoff slots", func(t *testing.T) {
		fixtures := testFixtures(teams)
		require.NoError(t, assignDates(fixtures, 2027, nil, top))

		for _, f := range fixtures {
			if f.Round == RoundCount-1 {
				continue
			}
			day, hour := f.Date.Weekday(), f.Date.Hour()
			valid := (day == time.Friday && hour == 20) ||
				(day == time.Saturday && (hour == 14 || hour == 20)) ||
				(day == time.Sunday && hour == 14)
			assert.True(t, valid, "fixture %s-%s at %s", f.Home.ID, f.Away.ID, f.Date)
		}
	})

	t.Run("final round is Super Saturday", func(t *testing.T) {
		fixtures := testFixtures(teams)
		require.NoError(t, assignDates(fixtures, 2027, nil, top))

		hours := map[int]bool{}
		for _, f := range fixtures {
			if f.Round != RoundCount-1 {
				continue
			}
			assert.Equal(t, time.Saturday, f.Date.Weekday())
			hours[f.Date.Hour()] = true
		}
		assert.Equal(t, map[int]bool{14: true, 16: true, 18: true}, hours)
	})

	t.Run("top pair takes the 18:00 finale", func(t *testing.T) {
		fixtures := testFixtures(teams)
		require.NoError(t, assignDates(fixtures, 2027, nil, top))

		for _, f := range fixtures {
			if f.Key() == top {
				assert.Equal(t, RoundCount-1, f.Round)
				assert.Equal(t, 18, f.Date.Hour())
			}
		}
	})

	t.Run("first rivalry pinned to Saturday night", func(t *testing.T) {
		fixtures := testFixtures(teams)
		rivalries := []PairKey{NewPairKey("mci", "new")} // round 1 fixture
		require.NoError(t, assignDates(fixtures, 2027, rivalries, top))

		for _, f := range fixtures {
			if f.Key() == rivalries[0] {
				assert.Equal(t, time.Saturday, f.Date.Weekday())
				assert.Equal(t, 20, f.Date.Hour())
			}
		}
	})

	t.Run("two rivalries in one round split the prime slots", func(t *testing.T) {
		fixtures := testFixtures(teams)
		rivalries := []PairKey{
			NewPairKey("ars", "avl"), // listed first in round 1
			NewPairKey("bha", "liv"),
		}
		require.NoError(t, assignDates(fixtures, 2027, rivalries, top))

		var got []string
		for _, f := range fixtures {
			if f.Round != 0 {
				continue
			}
			if isRivalry(f, rivalries) {
				got = append(got, f.Date.Format("Mon 15:04"))
			}
		}
		assert.ElementsMatch(t, []string{"Sat 20:00", "Sun 14:00"}, got)
	})

	t.Run("malformed round buckets are rejected", func(t *testing.T) {
		fixtures := testFixtures(teams)
		fixtures[0].Round = 1
		assert.Error(t, assignDates(fixtures, 2027, nil, top))
	})
}
