// Package bracket resolves team placeholders of the form "winner of M5" or
// "loser of A3" against recorded match results. Resolution runs before
// scheduling; the scheduler itself never looks inside a display name.
package bracket

import (
	"fmt"
	"strings"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// Result records the outcome of one completed match, keyed by match code.
type Result struct {
	MatchCode string
	Winner    string
	Loser     string
}

// ResolvePlaceholder maps a team source string to a concrete team name.
// Literal team names pass through unchanged. A placeholder referencing a
// match without a recorded result is an error, so callers never schedule a
// phantom team by accident.
func ResolvePlaceholder(source string, results map[string]Result) (string, error) {
	code, wantWinner, ok := parse(source)
	if !ok {
		return source, nil
	}

	result, found := results[code]
	if !found {
		return "", fmt.Errorf("placeholder %q: no result recorded for match %s", source, code)
	}
	if wantWinner {
		if result.Winner == "" {
			return "", fmt.Errorf("placeholder %q: match %s has no winner yet", source, code)
		}
		return result.Winner, nil
	}
	if result.Loser == "" {
		return "", fmt.Errorf("placeholder %q: match %s has no loser yet", source, code)
	}
	return result.Loser, nil
}

// ResolveTemplates resolves both team slots of every template against the
// recorded results and returns the rewritten list. The input is not mutated.
func ResolveTemplates(templates []schedule.MatchTemplate, results map[string]Result) ([]schedule.MatchTemplate, error) {
	resolved := make([]schedule.MatchTemplate, len(templates))
	copy(resolved, templates)
	for i := range resolved {
		team1, err := ResolvePlaceholder(resolved[i].Team1, results)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", resolved[i].MatchCode, err)
		}
		team2, err := ResolvePlaceholder(resolved[i].Team2, results)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", resolved[i].MatchCode, err)
		}
		resolved[i].Team1 = team1
		resolved[i].Team2 = team2
	}
	return resolved, nil
}

func parse(source string) (code string, wantWinner, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(source))
	switch {
	case strings.HasPrefix(lower, "winner of "):
		wantWinner = true
	case strings.HasPrefix(lower, "loser of "):
	default:
		return "", false, false
	}
	_, rest, _ := strings.Cut(strings.TrimSpace(source), " of ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false, false
	}
	return rest, wantWinner, true
}
