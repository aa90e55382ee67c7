package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rallyhq/courtplan/internal/database"
	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/rallyhq/courtplan/internal/tourney"
)

// seedFile is the YAML shape of a seed file: reusable formats with their
// match templates, plus concrete tournaments referencing them.
type seedFile struct {
	Formats     []seedFormat     `yaml:"formats"`
	Tournaments []seedTournament `yaml:"tournaments"`
}

type seedFormat struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Templates   []seedTemplate `yaml:"templates"`
}

type seedTemplate struct {
	MatchNumber       int    `yaml:"match_number"`
	MatchCode         string `yaml:"match_code"`
	Phase             string `yaml:"phase"`
	BlockName         string `yaml:"block_name"`
	RoundName         string `yaml:"round_name"`
	Team1             string `yaml:"team1"`
	Team2             string `yaml:"team2"`
	DayNumber         int    `yaml:"day_number"`
	ExecutionPriority int    `yaml:"execution_priority"`
	FixedStartTime    string `yaml:"fixed_start_time"`
	FixedCourtNumber  *int   `yaml:"fixed_court_number"`
}

type seedTournament struct {
	ID                   string         `yaml:"id"`
	Name                 string         `yaml:"name"`
	FormatID             string         `yaml:"format_id"`
	CourtCount           int            `yaml:"court_count"`
	AvailableCourts      []int          `yaml:"available_courts"`
	MatchDurationMinutes int            `yaml:"match_duration_minutes"`
	BreakDurationMinutes int            `yaml:"break_duration_minutes"`
	DayStartTime         string         `yaml:"day_start_time"`
	Dates                map[int]string `yaml:"dates"`
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	seedPath := flag.String("file", "seed.yaml", "Path to the seed file")
	flag.Parse()

	log.Info("Starting database seeder...", "file", *seedPath)
	dbName, primaryURL, authToken := loadConfig()

	raw, err := os.ReadFile(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %s", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %s", err)
	}

	db, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer db.Close()

	store := tourney.New(db)

	for _, f := range seed.Formats {
		templates, err := buildTemplates(f)
		if err != nil {
			log.Fatalf("Invalid format %s: %s", f.ID, err)
		}
		format := tourney.Format{ID: f.ID, Name: f.Name, Description: f.Description}
		if err := store.UpsertFormat(format, templates); err != nil {
			log.Fatalf("Failed to seed format %s: %s", f.ID, err)
		}
		log.Info("Seeded format", "format_id", f.ID, "templates", len(templates))
	}

	for _, seedT := range seed.Tournaments {
		tournament, err := buildTournament(seedT)
		if err != nil {
			log.Fatalf("Invalid tournament %s: %s", seedT.ID, err)
		}
		if err := store.UpsertTournament(tournament); err != nil {
			log.Fatalf("Failed to seed tournament %s: %s", seedT.ID, err)
		}
		log.Info("Seeded tournament", "tournament_id", tournament.ID, "format_id", tournament.FormatID)
	}

	log.Info("Seeding complete.", "formats", len(seed.Formats), "tournaments", len(seed.Tournaments))
}

func buildTemplates(f seedFormat) ([]schedule.MatchTemplate, error) {
	templates := make([]schedule.MatchTemplate, 0, len(f.Templates))
	for _, t := range f.Templates {
		template := schedule.MatchTemplate{
			MatchNumber:       t.MatchNumber,
			MatchCode:         t.MatchCode,
			Phase:             schedule.Phase(t.Phase),
			BlockName:         t.BlockName,
			RoundName:         t.RoundName,
			Team1:             t.Team1,
			Team2:             t.Team2,
			DayNumber:         t.DayNumber,
			ExecutionPriority: t.ExecutionPriority,
			FixedCourtNumber:  t.FixedCourtNumber,
		}
		if t.FixedStartTime != "" {
			start, err := schedule.ParseClock(t.FixedStartTime)
			if err != nil {
				return nil, fmt.Errorf("match %s: %w", t.MatchCode, err)
			}
			template.FixedStartTime = &start
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func buildTournament(t seedTournament) (*tourney.Tournament, error) {
	dayStart, err := schedule.ParseClock(t.DayStartTime)
	if err != nil {
		return nil, fmt.Errorf("day_start_time: %w", err)
	}
	return &tourney.Tournament{
		ID:       t.ID,
		Name:     t.Name,
		FormatID: t.FormatID,
		Settings: schedule.Settings{
			CourtCount:           t.CourtCount,
			AvailableCourts:      t.AvailableCourts,
			MatchDurationMinutes: t.MatchDurationMinutes,
			BreakDurationMinutes: t.BreakDurationMinutes,
			DayStartTime:         dayStart,
			Dates:                t.Dates,
		},
	}, nil
}
