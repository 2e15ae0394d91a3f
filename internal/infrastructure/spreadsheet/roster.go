package spreadsheet

import (
	"github.com/dfstools/poolimport/internal/domain/pool"
)

// Roster export: single "Roster" sheet, one header row, player attributes
// plus a projection column. No salary or ownership in this format.
const (
	rosterSheet = "Roster"

	rosterColPlayer     = "Player"
	rosterColTeam       = "Team"
	rosterColPosition   = "Pos"
	rosterColProjection = "Proj"
	rosterColNotes      = "Notes"
)

type RosterAdapter struct{}

func NewRosterAdapter() RosterAdapter { return RosterAdapter{} }

func (RosterAdapter) Source() pool.Source { return pool.SourceRoster }

func (RosterAdapter) Parse(data []byte) ([]pool.UniformRecord, error) {
	rows, err := sheetRows(data, rosterSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, malformedFile("sheet %q is empty", rosterSheet)
	}

	columns, err := headerIndex(rosterSheet, rows[0],
		[]string{rosterColPlayer, rosterColTeam, rosterColPosition},
		[]string{rosterColProjection, rosterColNotes})
	if err != nil {
		return nil, err
	}

	records := make([]pool.UniformRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		name := cell(row, columns, rosterColPlayer)

		projection, err := numericCell(row, columns, name, rosterColProjection)
		if err != nil {
			return nil, err
		}

		records = append(records, pool.UniformRecord{
			Name:       name,
			Team:       cell(row, columns, rosterColTeam),
			Position:   cell(row, columns, rosterColPosition),
			Projection: projection,
			Notes:      cell(row, columns, rosterColNotes),
		})
	}

	if len(records) == 0 {
		return nil, malformedFile("sheet %q has a header but no data rows", rosterSheet)
	}
	return records, nil
}
