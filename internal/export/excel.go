// Package export renders a computed schedule as an Excel workbook for
// organizers: one sheet per competition day laid out as a time-by-court
// grid, plus a sheet listing the plan's warnings when it has any.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/rallyhq/courtplan/internal/schedule"
)

// Generate creates an Excel workbook from a computed schedule.
func Generate(tournamentName string, plan *schedule.TournamentSchedule) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDefaultFont("Arial")

	for _, day := range plan.Days {
		if err := writeDaySheet(f, day); err != nil {
			return nil, fmt.Errorf("writing sheet for day %d: %w", day.DayNumber, err)
		}
	}

	if len(plan.Warnings) > 0 {
		if err := writeWarningsSheet(f, tournamentName, plan); err != nil {
			return nil, fmt.Errorf("writing warnings sheet: %w", err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeDaySheet(f *excelize.File, day schedule.DaySchedule) error {
	sheet := fmt.Sprintf("Day %d", day.DayNumber)
	f.NewSheet(sheet)

	// Columns: Time, then one column per court in use.
	courts := courtsInUse(day)
	headers := []string{"Time"}
	for _, court := range courts {
		headers = append(headers, fmt.Sprintf("Court %d", court))
	}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if day.Date != "" {
		f.SetCellValue(sheet, cellRef(len(headers)+2, 1), day.Date)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	colIndex := make(map[int]int, len(courts))
	for i, court := range courts {
		colIndex[court] = i + 2
	}

	// Rows follow distinct start times, earliest first.
	starts := distinctStarts(day)
	rowIndex := make(map[schedule.Clock]int, len(starts))
	for i, start := range starts {
		row := i + 2
		rowIndex[start] = row
		f.SetCellValue(sheet, cellRef(1, row), fmt.Sprintf("%s-%s", start, start+schedule.Clock(matchLength(day))))
	}

	for _, m := range day.Matches {
		cell := cellRef(colIndex[m.CourtNumber], rowIndex[m.Start])
		f.SetCellValue(sheet, cell, fmt.Sprintf("%s: %s vs %s", m.Template.MatchCode, m.Template.Team1, m.Template.Team2))
	}

	f.SetColWidth(sheet, "A", colLetter(len(headers)), 28)
	return nil
}

func writeWarningsSheet(f *excelize.File, tournamentName string, plan *schedule.TournamentSchedule) error {
	sheet := "Warnings"
	f.NewSheet(sheet)

	f.SetCellValue(sheet, "A1", tournamentName)
	if plan.Feasible {
		f.SetCellValue(sheet, "B1", "feasible")
	} else {
		f.SetCellValue(sheet, "B1", fmt.Sprintf("NOT feasible: %d team conflicts", len(plan.TeamConflicts)))
	}

	for i, warning := range plan.Warnings {
		f.SetCellValue(sheet, cellRef(1, i+3), warning)
	}

	f.SetColWidth(sheet, "A", "A", 90)
	return nil
}

func courtsInUse(day schedule.DaySchedule) []int {
	seen := make(map[int]bool)
	for _, m := range day.Matches {
		seen[m.CourtNumber] = true
	}
	courts := make([]int, 0, len(seen))
	for court := range seen {
		courts = append(courts, court)
	}
	sort.Ints(courts)
	return courts
}

func distinctStarts(day schedule.DaySchedule) []schedule.Clock {
	seen := make(map[schedule.Clock]bool)
	for _, m := range day.Matches {
		seen[m.Start] = true
	}
	starts := make([]schedule.Clock, 0, len(seen))
	for start := range seen {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	return starts
}

func matchLength(day schedule.DaySchedule) int {
	if len(day.Matches) == 0 {
		return 0
	}
	return int(day.Matches[0].End - day.Matches[0].Start)
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
