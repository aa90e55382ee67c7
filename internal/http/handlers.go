package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/rallyhq/courtplan/internal/planner"
	"github.com/rallyhq/courtplan/internal/schedule"
	"github.com/rallyhq/courtplan/internal/tourney"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListFormatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formats, err := s.Store.GetFormats()
		if err != nil {
			log.Error("Failed to list formats", "error", err)
			http.Error(w, "Failed to list formats", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, formats)
	}
}

func (s *Server) ListTemplatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formatID := r.URL.Query().Get("format_id")
		if formatID == "" {
			http.Error(w, "Missing 'format_id' query parameter", http.StatusBadRequest)
			return
		}
		templates, err := s.Store.GetTemplates(formatID)
		if err != nil {
			log.Error("Failed to list templates", "error", err, "format_id", formatID)
			http.Error(w, "Failed to list templates", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, templates)
	}
}

func (s *Server) GetScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}
		result, err := s.Planner.Schedule(tournamentID)
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) PreviewScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}
		result, err := s.Planner.Preview(tournamentID, isDryRunFromContext(r))
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		s.Counters.Increment("schedules_built")
		respondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) EditScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}

		var req editRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		newStart, err := schedule.ParseClock(req.NewStart)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := s.Planner.Edit(tournamentID, req.DayIndex, req.MatchIndex, newStart)
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) CommitScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}
		dryRun := isDryRunFromContext(r)
		result, err := s.Planner.Commit(tournamentID, dryRun)
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		if !dryRun {
			s.Counters.Increment("schedules_committed")
		}
		respondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) ResetScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}
		result, err := s.Planner.Reset(tournamentID)
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, result)
	}
}

func (s *Server) ExportScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}

		workbook, name, err := s.Planner.Export(tournamentID)
		if err != nil {
			respondWithPlannerError(w, err)
			return
		}
		defer workbook.Close()

		var buf bytes.Buffer
		if err := workbook.Write(&buf); err != nil {
			log.Error("Failed to serialize workbook", "error", err, "tournament_id", tournamentID)
			http.Error(w, "Failed to serialize workbook", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func (s *Server) GetCommittedScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}
		assignments, err := s.Store.GetCommittedSchedule(tournamentID)
		if err != nil {
			log.Error("Failed to load committed schedule", "error", err, "tournament_id", tournamentID)
			http.Error(w, "Failed to load committed schedule", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, assignments)
	}
}

func (s *Server) OverridesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromRequest(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodGet:
			overrides, err := s.Store.ListOverrides(tournamentID)
			if err != nil {
				log.Error("Failed to list overrides", "error", err, "tournament_id", tournamentID)
				http.Error(w, "Failed to list overrides", http.StatusInternalServerError)
				return
			}
			respondWithJSON(w, http.StatusOK, overrides)
		case http.MethodPost:
			var req overrideRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			start, err := schedule.ParseClock(req.StartTime)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			override := tourney.Override{
				MatchIdentifier: req.MatchIdentifier,
				StartTime:       start,
				CourtNumber:     req.CourtNumber,
			}
			if err := s.Store.SaveOverride(tournamentID, override); err != nil {
				log.Error("Failed to save override", "error", err, "tournament_id", tournamentID)
				http.Error(w, "Failed to save override", http.StatusInternalServerError)
				return
			}
			respondWithJSON(w, http.StatusOK, override)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to load stats", "error", err)
			http.Error(w, "Failed to load stats", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, stats)
	}
}

func tournamentIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	tournamentID := r.URL.Query().Get("tournament_id")
	if tournamentID == "" {
		http.Error(w, "Missing 'tournament_id' query parameter", http.StatusBadRequest)
		return "", false
	}
	return tournamentID, true
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondWithPlannerError maps domain errors onto HTTP status codes.
func respondWithPlannerError(w http.ResponseWriter, err error) {
	var validationErr *schedule.ValidationError
	var editErr *schedule.EditError

	switch {
	case errors.Is(err, tourney.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, planner.ErrNoSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tourney.ErrVersionConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &validationErr), errors.As(err, &editErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("Unhandled planner error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
