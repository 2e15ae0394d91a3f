package spreadsheet

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook renders one sheet per entry, rows written top to bottom
// starting at A1. Cell values keep their Go types so numeric cells stay
// numeric in the produced file.
func buildWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("create sheet %q: %v", name, err)
			}
		}
		for i := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name for row %d: %v", i+1, err)
			}
			if err := f.SetSheetRow(name, cellRef, &rows[i]); err != nil {
				t.Fatalf("write row %d of %q: %v", i+1, name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}
