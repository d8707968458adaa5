// Package workbook reads spreadsheet input into cell grids and writes merged
// contact records back out. It is a thin adapter over excelize and
// encoding/csv and makes no decisions about the data it carries.
package workbook

import (
	"strings"
)

// Kind is the scalar type of a decoded cell.
type Kind int

const (
	// KindEmpty marks a missing or blank cell.
	KindEmpty Kind = iota
	// KindString is a text cell.
	KindString
	// KindNumber is a numeric or date cell, carried as its display text.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Cell is one decoded cell: its formatted display text and scalar kind.
type Cell struct {
	Text string
	Kind Kind
}

// IsEmpty reports whether the cell carries no text.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || strings.TrimSpace(c.Text) == ""
}

// Bool reports whether the cell is a boolean cell holding true.
func (c Cell) Bool() bool {
	if c.Kind != KindBool {
		return false
	}
	t := strings.TrimSpace(c.Text)
	return strings.EqualFold(t, "true") || t == "1"
}

// Row is a non-empty source row with its 1-based row number in the sheet.
type Row struct {
	Number int
	Cells  []Cell
}

// Texts returns the cell texts of the row.
func (r Row) Texts() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Text
	}
	return out
}

// Sheet is a named grid of rows. Entirely empty rows are never present.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is an ordered list of sheets read from one file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet with the given name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}

// NewSheet builds a sheet from plain text rows. Row numbers are assigned from
// 1 before empty rows are dropped, so they match the source positions.
func NewSheet(name string, rows [][]string) Sheet {
	s := Sheet{Name: name}
	for i, texts := range rows {
		cells := make([]Cell, len(texts))
		for j, t := range texts {
			cells[j] = textCell(t)
		}
		s.appendRow(i+1, cells)
	}
	return s
}

func (s *Sheet) appendRow(number int, cells []Cell) {
	for _, c := range cells {
		if !c.IsEmpty() {
			s.Rows = append(s.Rows, Row{Number: number, Cells: cells})
			return
		}
	}
}

func textCell(t string) Cell {
	if t == "" {
		return Cell{}
	}
	return Cell{Text: t, Kind: KindString}
}
