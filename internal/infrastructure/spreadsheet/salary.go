package spreadsheet

import (
	"github.com/dfstools/poolimport/internal/domain/pool"

	crerr "github.com/cockroachdb/errors"
)

// Salary/ownership export. The workbook carries two complete projection
// sheets that disagree on projection and ownership numbers for the same
// players. The caller picks exactly one; nothing here reconciles them.
const (
	salarySheetMain = "Projections"
	salarySheetAlt  = "Projections Alt"

	salaryColPlayer     = "Player"
	salaryColTeam       = "Team"
	salaryColPosition   = "Pos"
	salaryColSalary     = "Salary"
	salaryColProjection = "Proj"
	salaryColOwnership  = "Own%"
	salaryColCeiling    = "Ceil"
	salaryColFloor      = "Floor"
)

func projectionSheetName(p pool.ProjectionSheet) string {
	if p == pool.ProjectionAlt {
		return salarySheetAlt
	}
	return salarySheetMain
}

type SalaryAdapter struct {
	sheet pool.ProjectionSheet
}

// NewSalaryAdapter requires an explicit projection sheet selection.
func NewSalaryAdapter(sheet pool.ProjectionSheet) (SalaryAdapter, error) {
	if !sheet.Valid() {
		return SalaryAdapter{}, crerr.Newf("unknown projection sheet %q", string(sheet))
	}
	return SalaryAdapter{sheet: sheet}, nil
}

func (SalaryAdapter) Source() pool.Source { return pool.SourceSalary }

func (a SalaryAdapter) Parse(data []byte) ([]pool.UniformRecord, error) {
	sheet := projectionSheetName(a.sheet)
	rows, err := sheetRows(data, sheet)
	if err != nil {
		return nil, err
	}
	// Row 0 is the export's title banner, row 1 the column header.
	if len(rows) < 2 {
		return nil, malformedFile("sheet %q is missing its header rows", sheet)
	}

	columns, err := headerIndex(sheet, rows[1],
		[]string{salaryColPlayer, salaryColTeam, salaryColPosition, salaryColSalary},
		[]string{salaryColProjection, salaryColOwnership, salaryColCeiling, salaryColFloor})
	if err != nil {
		return nil, err
	}

	records := make([]pool.UniformRecord, 0, len(rows)-2)
	for _, row := range rows[2:] {
		if rowEmpty(row) {
			continue
		}
		name := cell(row, columns, salaryColPlayer)

		salary, err := intCell(row, columns, name, salaryColSalary)
		if err != nil {
			return nil, err
		}
		projection, err := numericCell(row, columns, name, salaryColProjection)
		if err != nil {
			return nil, err
		}
		ownership, err := numericCell(row, columns, name, salaryColOwnership)
		if err != nil {
			return nil, err
		}
		ceiling, err := numericCell(row, columns, name, salaryColCeiling)
		if err != nil {
			return nil, err
		}
		floor, err := numericCell(row, columns, name, salaryColFloor)
		if err != nil {
			return nil, err
		}

		records = append(records, pool.UniformRecord{
			Name:       name,
			Team:       cell(row, columns, salaryColTeam),
			Position:   cell(row, columns, salaryColPosition),
			Salary:     salary,
			Projection: projection,
			Ownership:  ownership,
			Ceiling:    ceiling,
			Floor:      floor,
		})
	}

	if len(records) == 0 {
		return nil, malformedFile("sheet %q has headers but no data rows", sheet)
	}
	return records, nil
}
