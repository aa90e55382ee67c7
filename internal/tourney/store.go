package tourney

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// New creates a new TournamentStore.
func New(db *sql.DB) TournamentStore {
	return &store{
		db: db,
	}
}

// UpsertFormat replaces a format and its full template list in one
// transaction. Templates are keyed by (format, match number), so re-seeding
// a format updates slots in place instead of duplicating them.
func (s *store) UpsertFormat(format Format, templates []schedule.MatchTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO formats (id, name, description)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description;
	`, format.ID, format.Name, format.Description)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to upsert format: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO match_templates (id, format_id, match_number, match_code, phase, block_name, round_name, team1, team2, day_number, execution_priority, fixed_court_number, fixed_start_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(format_id, match_number) DO UPDATE SET
			match_code = excluded.match_code,
			phase = excluded.phase,
			block_name = excluded.block_name,
			round_name = excluded.round_name,
			team1 = excluded.team1,
			team2 = excluded.team2,
			day_number = excluded.day_number,
			execution_priority = excluded.execution_priority,
			fixed_court_number = excluded.fixed_court_number,
			fixed_start_time = excluded.fixed_start_time;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, tpl := range templates {
		var fixedStart any
		if tpl.FixedStartTime != nil {
			fixedStart = tpl.FixedStartTime.String()
		}
		id := tpl.StoredMatchID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = stmt.Exec(id, format.ID, tpl.MatchNumber, tpl.MatchCode, string(tpl.Phase), tpl.BlockName, tpl.RoundName, tpl.Team1, tpl.Team2, tpl.DayNumber, tpl.ExecutionPriority, tpl.FixedCourtNumber, fixedStart)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert template %d: %w", tpl.MatchNumber, err)
		}
	}

	return tx.Commit()
}

// GetFormats retrieves all stored formats.
func (s *store) GetFormats() ([]Format, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, description FROM formats ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formats []Format
	for rows.Next() {
		var f Format
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &description); err != nil {
			return nil, err
		}
		f.Description = description.String
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// GetTemplates retrieves a format's templates in match number order. The
// stored row ID travels along so committed assignments can be keyed by it.
func (s *store) GetTemplates(formatID string) ([]schedule.MatchTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, match_number, match_code, phase, block_name, round_name, team1, team2, day_number, execution_priority, fixed_court_number, fixed_start_time
		FROM match_templates
		WHERE format_id = ?
		ORDER BY match_number
	`, formatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []schedule.MatchTemplate
	for rows.Next() {
		var tpl schedule.MatchTemplate
		var phase string
		var blockName, roundName, fixedStart sql.NullString
		var fixedCourt sql.NullInt64
		if err := rows.Scan(&tpl.StoredMatchID, &tpl.MatchNumber, &tpl.MatchCode, &phase, &blockName, &roundName, &tpl.Team1, &tpl.Team2, &tpl.DayNumber, &tpl.ExecutionPriority, &fixedCourt, &fixedStart); err != nil {
			return nil, err
		}
		tpl.Phase = schedule.Phase(phase)
		tpl.BlockName = blockName.String
		tpl.RoundName = roundName.String
		if fixedCourt.Valid {
			court := int(fixedCourt.Int64)
			tpl.FixedCourtNumber = &court
		}
		if fixedStart.Valid {
			start, err := schedule.ParseClock(fixedStart.String)
			if err != nil {
				return nil, fmt.Errorf("template %d has corrupt fixed start time: %w", tpl.MatchNumber, err)
			}
			tpl.FixedStartTime = &start
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// UpsertTournament inserts or updates a tournament. The commit version is
// never written here; only CommitSchedule advances it.
func (s *store) UpsertTournament(tournament *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courtsJSON, err := json.Marshal(tournament.Settings.AvailableCourts)
	if err != nil {
		return err
	}
	datesJSON, err := json.Marshal(tournament.Settings.Dates)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	if tournament.CreatedAt == 0 {
		tournament.CreatedAt = now
	}
	tournament.UpdatedAt = now
	if tournament.ScheduleState == "" {
		tournament.ScheduleState = schedule.StateEmpty
	}

	_, err = s.db.Exec(`
		INSERT INTO tournaments (id, name, format_id, court_count, available_courts, match_duration_minutes, break_duration_minutes, day_start_time, dates_json, schedule_state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			format_id = excluded.format_id,
			court_count = excluded.court_count,
			available_courts = excluded.available_courts,
			match_duration_minutes = excluded.match_duration_minutes,
			break_duration_minutes = excluded.break_duration_minutes,
			day_start_time = excluded.day_start_time,
			dates_json = excluded.dates_json,
			schedule_state = excluded.schedule_state,
			updated_at = excluded.updated_at;
	`, tournament.ID, tournament.Name, tournament.FormatID,
		tournament.Settings.CourtCount, string(courtsJSON),
		tournament.Settings.MatchDurationMinutes, tournament.Settings.BreakDurationMinutes,
		tournament.Settings.DayStartTime.String(), string(datesJSON),
		string(tournament.ScheduleState), tournament.CreatedAt, tournament.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tournament: %w", err)
	}
	return nil
}

// GetTournament retrieves one tournament by ID.
func (s *store) GetTournament(tournamentID string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getTournament(tournamentID)
}

func (s *store) getTournament(tournamentID string) (*Tournament, error) {
	row := s.db.QueryRow(`
		SELECT id, name, format_id, court_count, available_courts, match_duration_minutes, break_duration_minutes, day_start_time, dates_json, schedule_state, commit_version, created_at, updated_at
		FROM tournaments
		WHERE id = ?
	`, tournamentID)

	var t Tournament
	var courtsJSON, datesJSON sql.NullString
	var dayStart, state string
	err := row.Scan(&t.ID, &t.Name, &t.FormatID,
		&t.Settings.CourtCount, &courtsJSON,
		&t.Settings.MatchDurationMinutes, &t.Settings.BreakDurationMinutes,
		&dayStart, &datesJSON, &state, &t.CommitVersion, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament %s: %w", tournamentID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	t.ScheduleState = schedule.State(state)
	t.Settings.DayStartTime, err = schedule.ParseClock(dayStart)
	if err != nil {
		return nil, fmt.Errorf("tournament %s has corrupt day start time: %w", tournamentID, err)
	}
	if courtsJSON.Valid && courtsJSON.String != "" {
		if err := json.Unmarshal([]byte(courtsJSON.String), &t.Settings.AvailableCourts); err != nil {
			return nil, fmt.Errorf("tournament %s has corrupt court list: %w", tournamentID, err)
		}
	}
	if datesJSON.Valid && datesJSON.String != "" {
		if err := json.Unmarshal([]byte(datesJSON.String), &t.Settings.Dates); err != nil {
			return nil, fmt.Errorf("tournament %s has corrupt dates: %w", tournamentID, err)
		}
	}
	return &t, nil
}

// GetSettings retrieves just the scheduling parameters of a tournament.
func (s *store) GetSettings(tournamentID string) (schedule.Settings, error) {
	t, err := s.GetTournament(tournamentID)
	if err != nil {
		return schedule.Settings{}, err
	}
	return t.Settings, nil
}

// UpdateScheduleState transitions a tournament's schedule lifecycle column.
func (s *store) UpdateScheduleState(tournamentID string, state schedule.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE tournaments SET schedule_state = ?, updated_at = ? WHERE id = ?",
		string(state), time.Now().Unix(), tournamentID)
	return err
}

// CommitSchedule persists the flattened assignments atomically, guarded by
// the tournament's commit version. A stale expectedVersion means another
// commit landed in between; the caller gets ErrVersionConflict and nothing
// is written.
func (s *store) CommitSchedule(tournamentID string, assignments []schedule.Assignment, expectedVersion int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	newVersion := expectedVersion + 1
	res, err := tx.Exec(`
		UPDATE tournaments
		SET commit_version = ?, schedule_state = ?, updated_at = ?
		WHERE id = ? AND commit_version = ?
	`, newVersion, string(schedule.StateCommitted), time.Now().Unix(), tournamentID, expectedVersion)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if affected == 0 {
		tx.Rollback()
		if _, err := s.getTournament(tournamentID); err != nil {
			return 0, err
		}
		return 0, ErrVersionConflict
	}

	if _, err := tx.Exec("DELETE FROM schedule_assignments WHERE tournament_id = ?", tournamentID); err != nil {
		tx.Rollback()
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO schedule_assignments (tournament_id, match_identifier, start_time, court_number, committed_at, version)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	committedAt := time.Now().Unix()
	for _, a := range assignments {
		if _, err := stmt.Exec(tournamentID, a.MatchIdentifier, a.StartTime.String(), a.CourtNumber, committedAt, newVersion); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to commit assignment %s: %w", a.MatchIdentifier, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info("Committed schedule", "tournament_id", tournamentID, "assignments", len(assignments), "version", newVersion)
	return newVersion, nil
}

// GetCommittedSchedule retrieves the last committed assignments.
func (s *store) GetCommittedSchedule(tournamentID string) ([]CommittedAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_identifier, start_time, court_number, committed_at, version
		FROM schedule_assignments
		WHERE tournament_id = ?
		ORDER BY start_time, court_number
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []CommittedAssignment
	for rows.Next() {
		var a CommittedAssignment
		var start string
		if err := rows.Scan(&a.MatchIdentifier, &start, &a.CourtNumber, &a.CommittedAt, &a.Version); err != nil {
			return nil, err
		}
		a.StartTime, err = schedule.ParseClock(start)
		if err != nil {
			return nil, fmt.Errorf("assignment %s has corrupt start time: %w", a.MatchIdentifier, err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// SaveOverride pins one match's slot; a second save for the same match
// replaces the first.
func (s *store) SaveOverride(tournamentID string, override Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO schedule_overrides (tournament_id, match_identifier, start_time, court_number, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tournament_id, match_identifier) DO UPDATE SET
			start_time = excluded.start_time,
			court_number = excluded.court_number,
			created_at = excluded.created_at;
	`, tournamentID, override.MatchIdentifier, override.StartTime.String(), override.CourtNumber, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save override for %s: %w", override.MatchIdentifier, err)
	}
	return nil
}

// ListOverrides retrieves all pinned slots for a tournament.
func (s *store) ListOverrides(tournamentID string) ([]Override, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT match_identifier, start_time, court_number, created_at
		FROM schedule_overrides
		WHERE tournament_id = ?
		ORDER BY match_identifier
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overrides []Override
	for rows.Next() {
		var o Override
		var start string
		var court sql.NullInt64
		if err := rows.Scan(&o.MatchIdentifier, &start, &court, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.StartTime, err = schedule.ParseClock(start)
		if err != nil {
			return nil, fmt.Errorf("override %s has corrupt start time: %w", o.MatchIdentifier, err)
		}
		if court.Valid {
			c := int(court.Int64)
			o.CourtNumber = &c
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// Clear removes all data. Used by tests and the admin clear endpoint.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"schedule_overrides", "schedule_assignments", "match_templates", "tournaments", "formats"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}
