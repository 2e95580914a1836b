package excel

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomasvid/leaguesched/internal/config"
	"github.com/tomasvid/leaguesched/internal/engine"
)

// Generate creates an Excel workbook with the fixture list, per-team
// sheets, and the cost breakdown.
func Generate(cfg *config.Config, sched *engine.Schedule) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeFixtureSheet(f, sched); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}

	if err := writeTeamSheets(f, cfg, sched); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	if err := writeCostSheet(f, sched); err != nil {
		return nil, fmt.Errorf("writing cost sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// FixtureSheet is the master sheet every reader and the validator use.
const FixtureSheet = "Fixtures"

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeFixtureSheet(f *excelize.File, sched *engine.Schedule) error {
	sheet := FixtureSheet
	f.NewSheet(sheet)

	headers := []string{"Round", "Date", "Day", "Time", "Home", "Away", "Stadium", "City"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}

	fixtures := append([]engine.Fixture(nil), sched.Fixtures...)
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Date.Before(fixtures[j].Date)
	})

	for i, fx := range fixtures {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), fx.Round+1)
		f.SetCellValue(sheet, cellRef(2, row), fx.Date.Format("01/02/2006"))
		f.SetCellValue(sheet, cellRef(3, row), fx.Date.Format("Mon"))
		f.SetCellValue(sheet, cellRef(4, row), fx.Date.Format("15:04"))
		f.SetCellValue(sheet, cellRef(5, row), fx.Home.Name)
		f.SetCellValue(sheet, cellRef(6, row), fx.Away.Name)
		f.SetCellValue(sheet, cellRef(7, row), fx.Home.Stadium.ID)
		f.SetCellValue(sheet, cellRef(8, row), fx.Home.Stadium.City)
	}

	widths := map[string]float64{"A": 8, "B": 14, "C": 8, "D": 8, "E": 22, "F": 22, "G": 18, "H": 18}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	return nil
}

func writeTeamSheets(f *excelize.File, cfg *config.Config, sched *engine.Schedule) error {
	distances := engine.BuildDistanceTable(problemTeams(cfg))

	for _, team := range cfg.Teams {
		sheet := team.Name
		f.NewSheet(sheet)

		headers := []string{"Round", "Date", "Time", "Opponent", "Venue", "Travel (km)"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellRef(i+1, 1), h)
		}
		if style := headerStyle(f); style != 0 {
			f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
		}

		type teamFixture struct {
			round    int
			date     time.Time
			opponent string
			venue    string
			travel   float64
		}
		var rows []teamFixture
		for _, fx := range sched.Fixtures {
			switch team.ID {
			case fx.Home.ID:
				rows = append(rows, teamFixture{fx.Round + 1, fx.Date, fx.Away.Name, "Home", 0})
			case fx.Away.ID:
				rows = append(rows, teamFixture{
					fx.Round + 1, fx.Date, fx.Home.Name, "Away",
					2 * distances.Between(fx.Home.ID, fx.Away.ID),
				})
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

		for i, r := range rows {
			row := i + 2
			f.SetCellValue(sheet, cellRef(1, row), r.round)
			f.SetCellValue(sheet, cellRef(2, row), r.date.Format("01/02/2006"))
			f.SetCellValue(sheet, cellRef(3, row), r.date.Format("15:04"))
			f.SetCellValue(sheet, cellRef(4, row), r.opponent)
			f.SetCellValue(sheet, cellRef(5, row), r.venue)
			f.SetCellValue(sheet, cellRef(6, row), fmt.Sprintf("%.0f", r.travel))
		}

		widths := map[string]float64{"A": 8, "B": 14, "C": 8, "D": 22, "E": 10, "F": 12}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}

	return nil
}

func writeCostSheet(f *excelize.File, sched *engine.Schedule) error {
	sheet := "Cost"
	f.NewSheet(sheet)

	for i, h := range []string{"Term", "Weighted value"} {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(2, 1), style)
	}

	b := sched.Breakdown
	terms := []struct {
		name  string
		value float64
	}{
		{"Consecutive away", b.ConsecutiveAway},
		{"Max travel", b.MaxTravel},
		{"Total travel", b.TotalTravel},
		{"Travel stddev", b.TravelStdDev},
		{"Competitiveness", b.Competitiveness},
		{"Broadcast", b.Broadcast},
		{"Timeslot", b.Timeslot},
		{"Short gap", b.ShortGap},
		{"Top-two slot", b.Top2MissedSlot},
		{"Total", b.Total},
	}
	for i, term := range terms {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), term.name)
		f.SetCellValue(sheet, cellRef(2, row), term.value)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 16)
	return nil
}

func problemTeams(cfg *config.Config) []engine.Team {
	teams := make([]engine.Team, 0, len(cfg.Teams))
	for _, t := range cfg.Teams {
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
	return teams
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
