package spreadsheet

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetRows opens the workbook and returns the raw rows of one sheet.
// Row slices are ragged: excelize drops trailing empty cells, so column
// access goes through cell() rather than direct indexing.
func sheetRows(data []byte, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, malformedFile("open workbook: %v", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, malformedFile("workbook has no sheet %q", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, malformedFile("read sheet %q: %v", sheet, err)
	}
	return rows, nil
}

// headerIndex maps required and optional column names to their positions
// in the header row. Matching is case-insensitive on trimmed header text.
// Any absent required column fails before a single data row is parsed.
func headerIndex(sheet string, header []string, required, optional []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	out := make(map[string]int, len(required)+len(optional))
	for _, col := range required {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			return nil, missingColumn(sheet, col)
		}
		out[col] = i
	}
	for _, col := range optional {
		if i, ok := byName[strings.ToLower(col)]; ok {
			out[col] = i
		}
	}
	return out, nil
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numericCell parses an optional float cell. Blank is nil, not zero;
// downstream treats absent and zero differently. Thousands separators and
// a trailing percent sign are tolerated because the exports are
// inconsistent about both.
func numericCell(row []string, columns map[string]int, player, name string) (*float64, error) {
	raw := cell(row, columns, name)
	if raw == "" {
		return nil, nil
	}
	cleaned := strings.TrimSuffix(strings.ReplaceAll(raw, ",", ""), "%")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, coercionFailure(player, name, raw)
	}
	return &v, nil
}

func intCell(row []string, columns map[string]int, player, name string) (*int, error) {
	v, err := numericCell(row, columns, player, name)
	if err != nil || v == nil {
		return nil, err
	}
	n := int(*v)
	return &n, nil
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
