package spreadsheet

import (
	crerr "github.com/cockroachdb/errors"
)

// Parse failure kinds. All three abort the import before any write; the
// messages carry sheet, column and player context so the caller never has
// to re-derive what went wrong.
var (
	ErrMalformedFile = crerr.New("malformed spreadsheet file")
	ErrMissingColumn = crerr.New("missing required column")
	ErrTypeCoercion  = crerr.New("cell type coercion failure")
)

func malformedFile(format string, args ...any) error {
	return crerr.Mark(crerr.Newf(format, args...), ErrMalformedFile)
}

func missingColumn(sheet, column string) error {
	return crerr.Mark(crerr.Newf("sheet %q: required column %q not found in header row", sheet, column), ErrMissingColumn)
}

func coercionFailure(player, column, raw string) error {
	return crerr.Mark(crerr.Newf("player %q: column %q value %q is not numeric", player, column, raw), ErrTypeCoercion)
}
