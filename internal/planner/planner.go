package planner

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/rallyhq/courtplan/internal/export"
	"github.com/rallyhq/courtplan/internal/metrics"
	"github.com/rallyhq/courtplan/internal/pubsub"
	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/rallyhq/courtplan/internal/tourney"
)

// New creates a new Planner.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Planner {
	return &Planner{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		sessions: make(map[string]*session),
	}
}

// Preview loads a tournament's templates, settings and pinned overrides,
// computes a fresh schedule and opens a session around it. A prior session
// for the tournament is discarded; preview always reflects current inputs.
func (p *Planner) Preview(tournamentID string, dryRun bool) (*PreviewResult, error) {
	tournament, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	templates, err := p.store.GetTemplates(tournament.FormatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	overrides, err := p.store.ListOverrides(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	templates = applyOverrides(templates, overrides)

	startTime := time.Now()
	engine, err := schedule.NewSession(templates, tournament.Settings)
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveBuildDuration(time.Since(startTime).Seconds())
	p.metrics.IncSchedulesBuilt()
	p.metrics.AddConflictsDetected(len(engine.Schedule.TeamConflicts))

	p.mu.Lock()
	p.sessions[tournamentID] = &session{engine: engine, baseVersion: tournament.CommitVersion}
	p.mu.Unlock()

	if err := p.store.UpdateScheduleState(tournamentID, schedule.StateComputed); err != nil {
		log.Error("Failed to persist schedule state", "error", err, "tournament_id", tournamentID)
	}

	if !engine.Schedule.Feasible {
		log.Warn("Computed schedule is not feasible", "tournament_id", tournamentID, "conflicts", len(engine.Schedule.TeamConflicts))
		if err := p.notifier.SendFeasibilityWarning(tournament.Name, engine.Schedule, dryRun); err != nil {
			log.Error("Failed to send feasibility warning", "error", err)
		}
	}

	log.Info("Computed schedule", "tournament_id", tournamentID, "matches", engine.Schedule.TotalMatches, "feasible", engine.Schedule.Feasible)
	return p.result(engine), nil
}

// Edit applies one cascading start-time change to the tournament's current
// session.
func (p *Planner) Edit(tournamentID string, dayIndex, matchIndex int, newStart schedule.Clock) (*PreviewResult, error) {
	s, err := p.session(tournamentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.engine.Edit(dayIndex, matchIndex, newStart); err != nil {
		return nil, err
	}
	p.metrics.IncEditsApplied()

	if err := p.store.UpdateScheduleState(tournamentID, schedule.StateEdited); err != nil {
		log.Error("Failed to persist schedule state", "error", err, "tournament_id", tournamentID)
	}

	log.Info("Applied schedule edit", "tournament_id", tournamentID, "day_index", dayIndex, "match_index", matchIndex, "new_start", newStart)
	return p.result(s.engine), nil
}

// Reset discards all edits on the tournament's session and rebuilds the
// schedule from its stored inputs.
func (p *Planner) Reset(tournamentID string) (*PreviewResult, error) {
	s, err := p.session(tournamentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.engine.Reset(); err != nil {
		return nil, err
	}

	if err := p.store.UpdateScheduleState(tournamentID, schedule.StateComputed); err != nil {
		log.Error("Failed to persist schedule state", "error", err, "tournament_id", tournamentID)
	}

	log.Info("Reset schedule", "tournament_id", tournamentID)
	return p.result(s.engine), nil
}

// Commit flattens the session's schedule and persists it, guarded by the
// commit version captured at preview time. On success the session becomes
// terminal, subscribers are notified and an event is published.
func (p *Planner) Commit(tournamentID string, dryRun bool) (*PreviewResult, error) {
	s, err := p.session(tournamentID)
	if err != nil {
		return nil, err
	}

	tournament, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, err
	}

	if dryRun {
		log.Info("[Dry Run] Would commit schedule", "tournament_id", tournamentID, "assignments", len(s.engine.Schedule.Flatten()))
		return p.result(s.engine), nil
	}

	newVersion, err := p.store.CommitSchedule(tournamentID, s.engine.Schedule.Flatten(), s.baseVersion)
	if err != nil {
		return nil, err
	}
	s.engine.MarkCommitted()
	s.baseVersion = newVersion
	p.metrics.IncCommits()

	if err := p.notifier.SendCommitNotification(tournament.Name, s.engine.Schedule, newVersion, dryRun); err != nil {
		log.Error("Failed to send commit notification", "error", err)
	}

	event := pubsub.ScheduleCommittedEvent{
		TournamentID: tournamentID,
		Version:      newVersion,
		MatchCount:   s.engine.Schedule.TotalMatches,
		Feasible:     s.engine.Schedule.Feasible,
		WarningCount: len(s.engine.Schedule.Warnings),
	}
	if err := p.pubsub.SendMessage(pubsub.EventScheduleCommitted, event); err != nil {
		log.Error("Failed to publish schedule-committed event", "error", err)
	}

	log.Info("Committed schedule", "tournament_id", tournamentID, "version", newVersion)
	return p.result(s.engine), nil
}

// Export renders the tournament's current in-session schedule as an Excel
// workbook, returning the tournament name for the download filename.
func (p *Planner) Export(tournamentID string) (*excelize.File, string, error) {
	s, err := p.session(tournamentID)
	if err != nil {
		return nil, "", err
	}
	tournament, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, "", err
	}
	workbook, err := export.Generate(tournament.Name, s.engine.Schedule)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}
	return workbook, tournament.Name, nil
}

// Schedule returns the tournament's current in-session schedule.
func (p *Planner) Schedule(tournamentID string) (*PreviewResult, error) {
	s, err := p.session(tournamentID)
	if err != nil {
		return nil, err
	}
	return p.result(s.engine), nil
}

func (p *Planner) session(tournamentID string) (*session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[tournamentID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

func (p *Planner) result(engine *schedule.Session) *PreviewResult {
	return &PreviewResult{
		SessionID: engine.ID,
		State:     engine.State,
		Version:   engine.Version,
		Schedule:  engine.Schedule,
	}
}

// applyOverrides pins each overridden match's slot onto its template before
// the allocator runs. Overrides are keyed the same way Flatten keys
// assignments: stored ID first, template sequence number as fallback.
func applyOverrides(templates []schedule.MatchTemplate, overrides []tourney.Override) []schedule.MatchTemplate {
	if len(overrides) == 0 {
		return templates
	}
	byID := make(map[string]tourney.Override, len(overrides))
	for _, o := range overrides {
		byID[o.MatchIdentifier] = o
	}

	pinned := make([]schedule.MatchTemplate, len(templates))
	copy(pinned, templates)
	for i := range pinned {
		id := pinned[i].StoredMatchID
		if id == "" {
			id = strconv.Itoa(pinned[i].MatchNumber)
		}
		o, ok := byID[id]
		if !ok {
			continue
		}
		start := o.StartTime
		pinned[i].FixedStartTime = &start
		if o.CourtNumber != nil {
			court := *o.CourtNumber
			pinned[i].FixedCourtNumber = &court
		}
	}
	return pinned
}
