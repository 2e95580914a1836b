package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomasvid/leaguesched/internal/config"
	"github.com/tomasvid/leaguesched/internal/engine"
	"github.com/tomasvid/leaguesched/internal/excel"
	"github.com/tomasvid/leaguesched/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "leaguesched",
		Short: "Six-team season fixture generator",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate season schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var (
		outputFile  string
		runs        int
		seed        int64
		annealIters int
		verbose     bool
	)
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a season schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, engine.Options{
				Seed:             seed,
				Runs:             runs,
				AnnealIterations: annealIters,
			}, verbose)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().IntVar(&runs, "runs", 3, "Random-restart count")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = nondeterministic)")
	generateCmd.Flags().IntVar(&annealIters, "anneal-iters", 0, "Annealing iterations per candidate (0 = default, negative disables)")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log search progress")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule workbook against config rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Season fixture configuration
# ============================
# Defines the inputs for generating a 6-team round-robin season:
# 15 fixtures over 5 match weekends.

# season.year anchors the calendar: round weekends count from the first
# Friday of February. rest_weeks requests how many rest weekends fall
# between the first and last round (0 = let the engine choose).
season:
  year: 2027
  rest_weeks: 3

# Exactly 6 teams. Ranking 1 is the strongest; stadium coordinates drive
# the travel-fairness cost terms.
teams:
  - id: dragons
    name: Northbridge Dragons
    ranking: 1
    stadium: {id: northbridge-arena, city: Northbridge, latitude: 52.52, longitude: 13.40}
  - id: harbour
    name: Harbour City FC
    ranking: 2
    stadium: {id: harbour-park, city: Harbour City, latitude: 53.55, longitude: 9.99}
  - id: miners
    name: Westfield Miners
    ranking: 3
    stadium: {id: westfield-grounds, city: Westfield, latitude: 51.51, longitude: 7.46}
  - id: albion
    name: Albion Rovers
    ranking: 4
    stadium: {id: albion-road, city: Albion, latitude: 50.94, longitude: 6.96}
  - id: united
    name: Southgate United
    ranking: 5
    stadium: {id: southgate-field, city: Southgate, latitude: 48.14, longitude: 11.58}
  - id: wanderers
    name: Eastvale Wanderers
    ranking: 6
    stadium: {id: eastvale-stadium, city: Eastvale, latitude: 50.11, longitude: 8.68}

# Prior-season hosts. Each entry means "home hosted away last season",
# which forces the reverse venue this season (hard constraint).
last_season:
  - home: dragons
    away: harbour

# Per-round venue locks (hard constraints). Rounds are 1-5.
locks: []
#  - team: miners
#    round: 2
#    venue: away

# Rivalry pairings get the prime Saturday/Sunday kickoff slots.
rivalries:
  - [dragons, harbour]
  - [miners, albion]

# Cost weights. Omitted keys use the engine defaults; unknown keys are
# rejected. See the generate command's documentation for the full list.
weights:
  minGapDays: 6
  fridayNightLimit: 2
  runLocalSearch: true
`

func runGenerate(configPath, outputPath string, opts engine.Options, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	problem, err := cfg.ToProblem()
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	fmt.Printf("Scheduling %d fixtures across %d rounds (%d runs)...\n",
		engine.MatchupCount, engine.RoundCount, opts.Runs)

	sched, err := engine.SolveN(problem, opts, log)
	if err != nil {
		if errors.Is(err, engine.ErrNoFeasibleSchedule) {
			fmt.Fprintln(os.Stderr, "⚠ No feasible schedule; try relaxing locks or rest_weeks")
		}
		return err
	}

	fmt.Printf("✓ Feasible schedule found (cost %.2f)\n\n", sched.Cost)
	fmt.Println(sched.Summary(problem.Teams, engine.BuildDistanceTable(problem.Teams)))

	f, err := excel.Generate(cfg, sched)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
