package schedule

import "fmt"

// Build turns an ordered template list and settings into a complete
// timetable. It is the single scheduling entry point shared by the preview
// path and the commit path, so the two can never drift apart. The
// allocation is a greedy earliest-free-court pass over each day's templates
// in execution order; given identical input it produces identical output.
func Build(templates []MatchTemplate, settings Settings) (*TournamentSchedule, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := validateTemplates(templates); err != nil {
		return nil, err
	}

	buckets := groupByDay(templates)
	days := make([]DaySchedule, 0, len(buckets))
	for _, dayNumber := range sortedDayNumbers(buckets) {
		matches := allocateDay(buckets[dayNumber], settings)
		days = append(days, summarizeDay(dayNumber, matches, settings))
	}

	return finalize(days, settings), nil
}

func validateTemplates(templates []MatchTemplate) error {
	for _, tpl := range templates {
		if tpl.Team1 == "" || tpl.Team2 == "" {
			return &ValidationError{
				Field:  "templates",
				Reason: fmt.Sprintf("match %d (%s) is missing a team display name", tpl.MatchNumber, tpl.MatchCode),
			}
		}
		if tpl.DayNumber < 1 {
			return &ValidationError{
				Field:  "templates",
				Reason: fmt.Sprintf("match %d (%s) has day number %d; days are 1-based", tpl.MatchNumber, tpl.MatchCode, tpl.DayNumber),
			}
		}
	}
	return nil
}

// allocateDay assigns a court and start time to every template of one day.
// The court clock map lives only inside this call; nothing here survives
// between days or between runs.
func allocateDay(bucket []MatchTemplate, settings Settings) []ScheduledMatch {
	courts := settings.Courts()
	courtFreeAt := make(map[int]Clock, len(courts))
	for _, court := range courts {
		courtFreeAt[court] = settings.DayStartTime
	}

	duration := Clock(settings.MatchDurationMinutes)
	pause := Clock(settings.BreakDurationMinutes)

	matches := make([]ScheduledMatch, 0, len(bucket))
	for _, tpl := range bucket {
		var court int
		var start Clock

		if tpl.FixedStartTime != nil {
			// Organizer-authoritative slot. The court clock is advanced with a
			// max so a fixed slot entered out of chronological order cannot
			// shrink the court's recorded occupancy.
			start = *tpl.FixedStartTime
			if tpl.FixedCourtNumber != nil && hasCourt(courts, *tpl.FixedCourtNumber) {
				court = *tpl.FixedCourtNumber
			} else {
				court = earliestFreeCourt(courts, courtFreeAt)
			}
			if next := start + duration + pause; next > courtFreeAt[court] {
				courtFreeAt[court] = next
			}
		} else {
			court = earliestFreeCourt(courts, courtFreeAt)
			start = courtFreeAt[court]
			courtFreeAt[court] = start + duration + pause
		}

		matches = append(matches, ScheduledMatch{
			Template:    tpl,
			Date:        settings.Dates[tpl.DayNumber],
			Start:       start,
			End:         start + duration,
			CourtNumber: court,
		})
	}

	indexTimeSlots(matches)
	return matches
}

// earliestFreeCourt picks the court with the smallest free-at time, lowest
// court number first on ties. Courts are iterated in ascending order so the
// choice is deterministic.
func earliestFreeCourt(courts []int, courtFreeAt map[int]Clock) int {
	best := courts[0]
	for _, court := range courts[1:] {
		if courtFreeAt[court] < courtFreeAt[best] {
			best = court
		}
	}
	return best
}

func hasCourt(courts []int, court int) bool {
	for _, c := range courts {
		if c == court {
			return true
		}
	}
	return false
}

// indexTimeSlots numbers each match by its position among the day's
// distinct start times, earliest first.
func indexTimeSlots(matches []ScheduledMatch) {
	distinct := make(map[Clock]bool, len(matches))
	for _, m := range matches {
		distinct[m.Start] = true
	}
	starts := make([]Clock, 0, len(distinct))
	for start := range distinct {
		starts = append(starts, start)
	}
	for i := 1; i < len(starts); i++ {
		for j := i; j > 0 && starts[j] < starts[j-1]; j-- {
			starts[j], starts[j-1] = starts[j-1], starts[j]
		}
	}
	index := make(map[Clock]int, len(starts))
	for i, start := range starts {
		index[start] = i
	}
	for i := range matches {
		matches[i].TimeSlotIndex = index[matches[i].Start]
	}
}
