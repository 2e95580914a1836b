package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomasvid/leaguesched/internal/engine"
)

type Stadium struct {
	ID        string  `yaml:"id"`
	City      string  `yaml:"city"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type Team struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Ranking int     `yaml:"ranking"`
	Stadium Stadium `yaml:"stadium"`
}

type Season struct {
	Year      int `yaml:"year"`
	RestWeeks int `yaml:"rest_weeks"`
}

// LastSeasonResult records that Home hosted Away last season; the
// alternation rule forces Away home this season.
type LastSeasonResult struct {
	Home string `yaml:"home"`
	Away string `yaml:"away"`
}

// Lock forces a team's venue in a specific round (1-based).
type Lock struct {
	Team  string `yaml:"team"`
	Round int    `yaml:"round"`
	Venue string `yaml:"venue"` // "home" or "away"
}

type Config struct {
	Season     Season             `yaml:"season"`
	Teams      []Team             `yaml:"teams"`
	LastSeason []LastSeasonResult `yaml:"last_season"`
	Locks      []Lock             `yaml:"locks"`
	Rivalries  [][]string         `yaml:"rivalries"`
	Weights    map[string]any     `yaml:"weights"`
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if len(c.Teams) != engine.TeamCount {
		return fmt.Errorf("exactly %d teams are required, got %d", engine.TeamCount, len(c.Teams))
	}

	teams := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.ID == "" {
			return fmt.Errorf("team %q has no id", t.Name)
		}
		if teams[t.ID] {
			return fmt.Errorf("duplicate team id %q", t.ID)
		}
		teams[t.ID] = true
		if t.Ranking < 1 || t.Ranking > engine.TeamCount {
			return fmt.Errorf("team %q: ranking %d out of range 1-%d", t.ID, t.Ranking, engine.TeamCount)
		}
		if t.Stadium.ID == "" {
			return fmt.Errorf("team %q has no stadium id", t.ID)
		}
	}

	if c.Season.Year < 1900 {
		return fmt.Errorf("season year %d is not a calendar year", c.Season.Year)
	}
	if c.Season.RestWeeks < 0 || c.Season.RestWeeks > 3 {
		return fmt.Errorf("rest_weeks %d out of range 0-3", c.Season.RestWeeks)
	}

	seenPairs := make(map[engine.PairKey]bool)
	for _, r := range c.LastSeason {
		if !teams[r.Home] || !teams[r.Away] {
			return fmt.Errorf("last_season entry %s vs %s references unknown team", r.Home, r.Away)
		}
		if r.Home == r.Away {
			return fmt.Errorf("last_season entry pairs %q with itself", r.Home)
		}
		key := engine.NewPairKey(r.Home, r.Away)
		if seenPairs[key] {
			return fmt.Errorf("duplicate last_season entry for %s vs %s", r.Home, r.Away)
		}
		seenPairs[key] = true
	}

	seenLocks := make(map[string]map[int]bool)
	for _, l := range c.Locks {
		if !teams[l.Team] {
			return fmt.Errorf("lock references unknown team %q", l.Team)
		}
		if l.Round < 1 || l.Round > engine.RoundCount {
			return fmt.Errorf("lock for %q: round %d out of range 1-%d", l.Team, l.Round, engine.RoundCount)
		}
		if l.Venue != "home" && l.Venue != "away" {
			return fmt.Errorf("lock for %q round %d: venue must be \"home\" or \"away\", got %q", l.Team, l.Round, l.Venue)
		}
		if seenLocks[l.Team][l.Round] {
			return fmt.Errorf("duplicate lock for %q in round %d", l.Team, l.Round)
		}
		if seenLocks[l.Team] == nil {
			seenLocks[l.Team] = make(map[int]bool)
		}
		seenLocks[l.Team][l.Round] = true
	}

	for _, pair := range c.Rivalries {
		if len(pair) != 2 {
			return fmt.Errorf("rivalry %v must name exactly two teams", pair)
		}
		if !teams[pair[0]] || !teams[pair[1]] {
			return fmt.Errorf("rivalry %s vs %s references unknown team", pair[0], pair[1])
		}
	}

	return nil
}

// ToProblem converts the config into an engine problem, decoding the
// loosely-typed weights map onto the documented defaults.
func (c *Config) ToProblem() (*engine.Problem, error) {
	weights, err := engine.DecodeWeights(c.Weights)
	if err != nil {
		return nil, err
	}

	teams := make([]engine.Team, 0, len(c.Teams))
	for _, t := range c.Teams {
		teams = append(teams, engine.Team{
			ID:      t.ID,
			Name:    t.Name,
			Ranking: t.Ranking,
			Stadium: engine.Stadium{
				ID:        t.Stadium.ID,
				City:      t.Stadium.City,
				Latitude:  t.Stadium.Latitude,
				Longitude: t.Stadium.Longitude,
			},
		})
	}

	lastYear := make(engine.LastYearMap, len(c.LastSeason))
	for _, r := range c.LastSeason {
		lastYear[engine.NewPairKey(r.Home, r.Away)] = r.Home
	}

	locks := make(engine.LockMap)
	for _, l := range c.Locks {
		if locks[l.Team] == nil {
			locks[l.Team] = make(map[int]engine.Venue)
		}
		venue := engine.VenueAway
		if l.Venue == "home" {
			venue = engine.VenueHome
		}
		locks[l.Team][l.Round-1] = venue
	}

	rivalries := make([]engine.PairKey, 0, len(c.Rivalries))
	for _, pair := range c.Rivalries {
		rivalries = append(rivalries, engine.NewPairKey(pair[0], pair[1]))
	}

	return &engine.Problem{
		Teams:              teams,
		LastYearHome:       lastYear,
		Locks:              locks,
		Rivalries:          rivalries,
		SeasonYear:         c.Season.Year,
		RequestedRestWeeks: c.Season.RestWeeks,
		Weights:            weights,
	}, nil
}
