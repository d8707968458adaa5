package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	cmerrors "github.com/agentstation/contactmerge/pkg/errors"
)

// ReadOption configures Read.
type ReadOption func(*readOptions)

type readOptions struct {
	encoding string
}

// WithEncoding sets the text encoding of CSV input, e.g. "utf-8" or "big5".
// Excel input ignores it.
func WithEncoding(name string) ReadOption {
	return func(o *readOptions) {
		o.encoding = name
	}
}

// Read loads a workbook from path. The format is chosen by extension:
// .xlsx/.xlsm/.xltx via excelize and .csv via encoding/csv.
func Read(path string, opts ...ReadOption) (*Workbook, error) {
	o := &readOptions{encoding: "utf-8"}
	for _, opt := range opts {
		opt(o)
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, cmerrors.WrapIO("read", path, err)
	}
	defer func() { _ = f.Close() }()

	var wb *Workbook
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		enc, encErr := LookupEncoding(o.encoding)
		if encErr != nil {
			return nil, encErr
		}
		var sheet Sheet
		sheet, err = ReadCSV(f, Stem(path), enc)
		wb = &Workbook{Sheets: []Sheet{sheet}}
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		wb, err = ReadExcel(f)
	default:
		return nil, cmerrors.NewIOError("read", path, fmt.Errorf("unsupported file type %q", filepath.Ext(path)))
	}
	if err != nil {
		return nil, cmerrors.WrapIO("read", path, err)
	}
	wb.Path = path
	return wb, nil
}

// ReadExcel decodes every worksheet of an Excel workbook, in workbook order.
func ReadExcel(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		sheet := Sheet{Name: name}
		for i, texts := range rows {
			cells := make([]Cell, len(texts))
			for j, t := range texts {
				cells[j] = excelCell(f, name, j+1, i+1, t)
			}
			sheet.appendRow(i+1, cells)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

func excelCell(f *excelize.File, sheet string, col, row int, text string) Cell {
	if text == "" {
		return Cell{}
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return textCell(text)
	}
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return textCell(text)
	}
	switch typ {
	case excelize.CellTypeBool:
		return Cell{Text: text, Kind: KindBool}
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		// numeric cells are stored without an explicit type attribute
		return Cell{Text: text, Kind: KindNumber}
	default:
		return textCell(text)
	}
}

// ReadCSV decodes a CSV stream as a single sheet. A leading byte order mark
// overrides enc.
func ReadCSV(r io.Reader, name string, enc encoding.Encoding) (Sheet, error) {
	if enc == nil {
		enc = unicode.UTF8
	}
	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return NewSheet(name, rows), nil
}

// LookupEncoding resolves an encoding name. "big5" maps to the Traditional
// Chinese Big5 decoder; other names follow the WHATWG encoding index.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "big5", "big-5", "cp950":
		return traditionalchinese.Big5, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &cmerrors.ValidationError{
			Field:   "encoding",
			Value:   name,
			Message: "unknown text encoding",
		}
	}
	return enc, nil
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
