package schedule

import "fmt"

// summarizeDay computes a day's statistics from its allocated matches.
func summarizeDay(dayNumber int, matches []ScheduledMatch, settings Settings) DaySchedule {
	day := DaySchedule{
		Date:      settings.Dates[dayNumber],
		DayNumber: dayNumber,
		Matches:   matches,
	}
	refreshDayStats(&day)
	return day
}

// refreshDayStats recomputes the derived day fields in place. The editor
// calls this again after every manual shift.
func refreshDayStats(day *DaySchedule) {
	if len(day.Matches) == 0 {
		day.TotalDuration = 0
		day.RequiredCourts = 0
		day.TimeSlots = 0
		return
	}

	earliest, latest := day.Matches[0].Start, day.Matches[0].End
	distinct := make(map[Clock]bool, len(day.Matches))
	for _, m := range day.Matches {
		if m.Start < earliest {
			earliest = m.Start
		}
		if m.End > latest {
			latest = m.End
		}
		distinct[m.Start] = true
	}

	day.TotalDuration = Minutes(latest - earliest)
	day.RequiredCourts = peakConcurrency(day.Matches)
	day.TimeSlots = len(distinct)
}

// peakConcurrency is the largest number of matches in play at once, which is
// the number of courts the day actually needs.
func peakConcurrency(matches []ScheduledMatch) int {
	peak := 0
	for _, m := range matches {
		overlapping := 0
		for _, n := range matches {
			if n.Start < m.End && m.Start < n.End {
				overlapping++
			}
		}
		if overlapping > peak {
			peak = overlapping
		}
	}
	return peak
}

// finalize rolls per-day schedules into the tournament view: conflict
// detection, warnings, feasibility, and the overall occupied span. It runs
// on fresh allocations and again after every manual edit.
func finalize(days []DaySchedule, settings Settings) *TournamentSchedule {
	t := &TournamentSchedule{
		Days:     days,
		Warnings: []string{},
		Feasible: true,
	}

	var earliest, latest Clock
	first := true
	for _, day := range days {
		t.TotalMatches += len(day.Matches)
		for _, m := range day.Matches {
			if first {
				earliest, latest = m.Start, m.End
				first = false
				continue
			}
			if m.Start < earliest {
				earliest = m.Start
			}
			if m.End > latest {
				latest = m.End
			}
		}
	}
	if !first {
		t.TotalDuration = Minutes(latest - earliest)
	}

	capacity := len(settings.Courts())
	for _, day := range days {
		for _, conflict := range detectTeamConflicts(day) {
			t.TeamConflicts = append(t.TeamConflicts, conflict)
			for _, pair := range conflict.Conflicts {
				t.Warnings = append(t.Warnings, "time conflict: "+pair.Description)
			}
		}
		t.Warnings = append(t.Warnings, courtOverlapWarnings(day)...)
		if day.RequiredCourts > capacity {
			t.Warnings = append(t.Warnings, fmt.Sprintf("day %d needs %d courts but only %d are configured",
				day.DayNumber, day.RequiredCourts, capacity))
		}
	}

	t.Feasible = len(t.TeamConflicts) == 0
	return t
}
