package schedule

import (
	"fmt"
	"sort"
)

// detectTeamConflicts finds every pair of matches within one day that share
// a team and overlap in time. Each team's matches are sorted by start time
// (match number on ties) before the pairwise walk, so detection does not
// depend on storage order.
func detectTeamConflicts(day DaySchedule) []TeamConflict {
	byTeam := make(map[string][]ScheduledMatch)
	for _, m := range day.Matches {
		byTeam[m.Template.Team1] = append(byTeam[m.Template.Team1], m)
		byTeam[m.Template.Team2] = append(byTeam[m.Template.Team2], m)
	}

	teams := make([]string, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	var conflicts []TeamConflict
	for _, team := range teams {
		matches := byTeam[team]
		if len(matches) < 2 {
			continue
		}
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Start != matches[j].Start {
				return matches[i].Start < matches[j].Start
			}
			return matches[i].Template.MatchNumber < matches[j].Template.MatchNumber
		})

		var pairs []ConflictPair
		for i := 0; i < len(matches)-1; i++ {
			first, second := matches[i], matches[i+1]
			if first.End > second.Start {
				pairs = append(pairs, ConflictPair{
					Match1: first.Template.MatchCode,
					Match2: second.Template.MatchCode,
					Description: fmt.Sprintf("%s plays %s (%s-%s) and %s (%s-%s) at overlapping times on day %d",
						team,
						first.Template.MatchCode, first.Start, first.End,
						second.Template.MatchCode, second.Start, second.End,
						day.DayNumber),
				})
			}
		}
		if len(pairs) > 0 {
			conflicts = append(conflicts, TeamConflict{Team: team, Conflicts: pairs})
		}
	}
	return conflicts
}

// courtOverlapWarnings reports two matches booked onto the same physical
// court at overlapping times. The auto-allocator never produces these, but
// organizer-pinned fixed slots can; they surface as warnings rather than
// conflicts so a deliberately tight plan does not read as infeasible.
func courtOverlapWarnings(day DaySchedule) []string {
	byCourt := make(map[int][]ScheduledMatch)
	for _, m := range day.Matches {
		byCourt[m.CourtNumber] = append(byCourt[m.CourtNumber], m)
	}

	courts := make([]int, 0, len(byCourt))
	for court := range byCourt {
		courts = append(courts, court)
	}
	sort.Ints(courts)

	var warnings []string
	for _, court := range courts {
		matches := byCourt[court]
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Start != matches[j].Start {
				return matches[i].Start < matches[j].Start
			}
			return matches[i].Template.MatchNumber < matches[j].Template.MatchNumber
		})
		for i := 0; i < len(matches)-1; i++ {
			first, second := matches[i], matches[i+1]
			if first.End > second.Start {
				warnings = append(warnings, fmt.Sprintf("court %d hosts %s (%s-%s) and %s (%s-%s) at overlapping times on day %d",
					court,
					first.Template.MatchCode, first.Start, first.End,
					second.Template.MatchCode, second.Start, second.End,
					day.DayNumber))
			}
		}
	}
	return warnings
}
