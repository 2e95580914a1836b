package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomasvid/leaguesched/internal/config"
	"github.com/tomasvid/leaguesched/internal/engine"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

type parsedFixture struct {
	Row      int
	Round    int
	Date     time.Time
	HomeID   string
	AwayID   string
	WeekSlot int
}

// Validate reads a schedule workbook and re-checks it against the
// config's hard constraints and soft guidelines. Hard failures are
// "error" violations; guideline misses are "warning".
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fixtures, err := readFixtures(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	weights, err := engine.DecodeWeights(cfg.Weights)
	if err != nil {
		return nil, err
	}

	var violations []Violation

	// Hard constraints
	violations = append(violations, checkRoundShape(fixtures)...)
	violations = append(violations, checkHomeCounts(fixtures, cfg)...)
	violations = append(violations, checkAwayStreaks(fixtures)...)
	violations = append(violations, checkAlternation(fixtures, cfg)...)
	violations = append(violations, checkLocks(fixtures, cfg)...)

	// Soft guidelines
	violations = append(violations, checkRestGaps(fixtures, weights.MinGapDays)...)
	violations = append(violations, checkFridayNights(fixtures, weights.FridayNightLimit)...)

	return violations, nil
}

func readFixtures(f *excelize.File, cfg *config.Config) ([]parsedFixture, error) {
	rows, err := f.GetRows("Fixtures")
	if err != nil {
		return nil, fmt.Errorf("reading Fixtures sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Fixtures sheet is empty")
	}

	idByName := make(map[string]string, len(cfg.Teams))
	for _, t := range cfg.Teams {
		idByName[t.Name] = t.ID
	}
	anchor := seasonAnchor(cfg.Season.Year)

	var fixtures []parsedFixture
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 6 || row[0] == "" {
			continue
		}

		var round int
		if _, err := fmt.Sscanf(row[0], "%d", &round); err != nil {
			return nil, fmt.Errorf("row %d: bad round %q", i+1, row[0])
		}
		date, err := time.Parse("01/02/2006 15:04", row[1]+" "+row[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date/time: %w", i+1, err)
		}

		homeID, ok := idByName[row[4]]
		if !ok {
			return nil, fmt.Errorf("row %d: unknown home team %q", i+1, row[4])
		}
		awayID, ok := idByName[row[5]]
		if !ok {
			return nil, fmt.Errorf("row %d: unknown away team %q", i+1, row[5])
		}

		fixtures = append(fixtures, parsedFixture{
			Row:      i + 1,
			Round:    round,
			Date:     date,
			HomeID:   homeID,
			AwayID:   awayID,
			WeekSlot: weekSlotOf(date, anchor),
		})
	}

	return fixtures, nil
}

// seasonAnchor mirrors the engine's calendar anchor: the first Friday of
// February.
func seasonAnchor(year int) time.Time {
	d := time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// weekSlotOf maps a kickoff back to its calendar weekend index.
func weekSlotOf(date, anchor time.Time) int {
	// Walk back to the weekend's Friday.
	friday := date
	for friday.Weekday() != time.Friday {
		friday = friday.AddDate(0, 0, -1)
	}
	friday = time.Date(friday.Year(), friday.Month(), friday.Day(), 0, 0, 0, 0, time.UTC)
	return int(friday.Sub(anchor).Hours() / 24 / 7)
}

func checkRoundShape(fixtures []parsedFixture) []Violation {
	var violations []Violation

	if len(fixtures) != engine.MatchupCount {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("schedule has %d fixtures, want %d", len(fixtures), engine.MatchupCount),
		})
	}

	byRound := make(map[int][]parsedFixture)
	for _, fx := range fixtures {
		byRound[fx.Round] = append(byRound[fx.Round], fx)
	}
	for round := 1; round <= engine.RoundCount; round++ {
		rf := byRound[round]
		if len(rf) != engine.FixturesPerRound {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("round %d has %d fixtures, want %d", round, len(rf), engine.FixturesPerRound),
			})
			continue
		}
		seen := make(map[string]bool)
		for _, fx := range rf {
			for _, id := range []string{fx.HomeID, fx.AwayID} {
				if seen[id] {
					violations = append(violations, Violation{
						Row:     fx.Row,
						Type:    "error",
						Message: fmt.Sprintf("%s appears twice in round %d", id, round),
					})
				}
				seen[id] = true
			}
		}
	}

	return violations
}

func checkHomeCounts(fixtures []parsedFixture, cfg *config.Config) []Violation {
	homes := make(map[string]int)
	for _, fx := range fixtures {
		homes[fx.HomeID]++
	}

	var violations []Violation
	for _, t := range cfg.Teams {
		if n := homes[t.ID]; n < 2 || n > 3 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s hosts %d fixtures, want 2 or 3", t.Name, n),
			})
		}
	}
	return violations
}

func checkAwayStreaks(fixtures []parsedFixture) []Violation {
	awayAt := make(map[string]map[int]bool)
	for _, fx := range fixtures {
		if awayAt[fx.AwayID] == nil {
			awayAt[fx.AwayID] = make(map[int]bool)
		}
		awayAt[fx.AwayID][fx.WeekSlot] = true
	}

	var violations []Violation
	for team, slots := range awayAt {
		for slot := range slots {
			if slots[slot+1] && slots[slot+2] {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%s is away on 3 consecutive weekends starting week %d", team, slot+1),
				})
			}
		}
	}
	return violations
}

func checkAlternation(fixtures []parsedFixture, cfg *config.Config) []Violation {
	var violations []Violation
	for _, prev := range cfg.LastSeason {
		key := engine.NewPairKey(prev.Home, prev.Away)
		for _, fx := range fixtures {
			if engine.NewPairKey(fx.HomeID, fx.AwayID) != key {
				continue
			}
			if fx.HomeID == prev.Home {
				violations = append(violations, Violation{
					Row:     fx.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s hosted %s last season and hosts again", prev.Home, prev.Away),
				})
			}
		}
	}
	return violations
}

func checkLocks(fixtures []parsedFixture, cfg *config.Config) []Violation {
	var violations []Violation
	for _, lock := range cfg.Locks {
		for _, fx := range fixtures {
			if fx.Round != lock.Round {
				continue
			}
			if fx.HomeID != lock.Team && fx.AwayID != lock.Team {
				continue
			}
			isHome := fx.HomeID == lock.Team
			if (lock.Venue == "home") != isHome {
				violations = append(violations, Violation{
					Row:     fx.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s is locked %s in round %d but scheduled otherwise", lock.Team, lock.Venue, lock.Round),
				})
			}
		}
	}
	return violations
}

func checkRestGaps(fixtures []parsedFixture, minGapDays int) []Violation {
	if minGapDays <= 0 {
		return nil
	}

	dates := make(map[string][]time.Time)
	for _, fx := range fixtures {
		dates[fx.HomeID] = append(dates[fx.HomeID], fx.Date)
		dates[fx.AwayID] = append(dates[fx.AwayID], fx.Date)
	}

	var violations []Violation
	for team, ds := range dates {
		sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
		for i := 1; i < len(ds); i++ {
			gap := ds[i].Sub(ds[i-1]).Hours() / 24
			if gap < float64(minGapDays) {
				violations = append(violations, Violation{
					Type: "warning",
					Message: fmt.Sprintf("%s plays again after only %.1f days (min %d): %s and %s",
						team, gap, minGapDays, ds[i-1].Format("01/02"), ds[i].Format("01/02")),
				})
			}
		}
	}
	return violations
}

func checkFridayNights(fixtures []parsedFixture, limit int) []Violation {
	count := 0
	for _, fx := range fixtures {
		if fx.Date.Weekday() == time.Friday && fx.Date.Hour() == 20 {
			count++
		}
	}
	if count <= limit {
		return nil
	}
	return []Violation{{
		Type:    "warning",
		Message: fmt.Sprintf("%d Friday-night fixtures (limit %d)", count, limit),
	}}
}
