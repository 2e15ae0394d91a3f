package spreadsheet

import (
	"github.com/dfstools/poolimport/internal/domain/history"
)

// Historical box-score export: one "Box Scores" sheet spanning every week,
// one header row. Share columns arrive as percentages or fractions
// depending on the export's vintage; normalization happens downstream.
const (
	historySheet = "Box Scores"

	historyColSeason      = "Season"
	historyColWeek        = "Week"
	historyColPlayer      = "Player"
	historyColTeam        = "Team"
	historyColOpponent    = "Opp"
	historyColPosition    = "Pos"
	historyColSnaps       = "Snaps"
	historyColSnapShare   = "Snap%"
	historyColTargets     = "Targets"
	historyColTargetShare = "Target%"
	historyColTouches     = "Touches"
	historyColTouchShare  = "Touch%"
	historyColPoints      = "FPTS"
	historyColSalary      = "Salary"
)

type HistoryAdapter struct{}

func NewHistoryAdapter() HistoryAdapter { return HistoryAdapter{} }

func (HistoryAdapter) Parse(data []byte) ([]history.Row, error) {
	rows, err := sheetRows(data, historySheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, malformedFile("sheet %q is empty", historySheet)
	}

	columns, err := headerIndex(historySheet, rows[0],
		[]string{
			historyColSeason, historyColWeek, historyColPlayer,
			historyColTeam, historyColPosition,
		},
		[]string{
			historyColOpponent, historyColSnaps, historyColSnapShare,
			historyColTargets, historyColTargetShare, historyColTouches,
			historyColTouchShare, historyColPoints, historyColSalary,
		})
	if err != nil {
		return nil, err
	}

	out := make([]history.Row, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		name := cell(row, columns, historyColPlayer)

		season, err := requiredIntCell(row, columns, name, historyColSeason)
		if err != nil {
			return nil, err
		}
		week, err := requiredIntCell(row, columns, name, historyColWeek)
		if err != nil {
			return nil, err
		}

		h := history.Row{
			Season:   season,
			Week:     week,
			Name:     name,
			Team:     cell(row, columns, historyColTeam),
			Opponent: cell(row, columns, historyColOpponent),
			Position: cell(row, columns, historyColPosition),
		}

		for _, field := range []struct {
			column string
			dst    *int
		}{
			{historyColSnaps, &h.Snaps},
			{historyColTargets, &h.Targets},
			{historyColTouches, &h.Touches},
			{historyColSalary, &h.Salary},
		} {
			v, err := intCell(row, columns, name, field.column)
			if err != nil {
				return nil, err
			}
			if v != nil {
				*field.dst = *v
			}
		}
		for _, field := range []struct {
			column string
			dst    *float64
		}{
			{historyColSnapShare, &h.SnapShare},
			{historyColTargetShare, &h.TargetShare},
			{historyColTouchShare, &h.TouchShare},
			{historyColPoints, &h.Points},
		} {
			v, err := numericCell(row, columns, name, field.column)
			if err != nil {
				return nil, err
			}
			if v != nil {
				*field.dst = *v
			}
		}

		out = append(out, h)
	}

	if len(out) == 0 {
		return nil, malformedFile("sheet %q has a header but no data rows", historySheet)
	}
	return out, nil
}

func requiredIntCell(row []string, columns map[string]int, player, name string) (int, error) {
	v, err := intCell(row, columns, player, name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, coercionFailure(player, name, "<empty>")
	}
	return *v, nil
}
