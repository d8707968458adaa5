package workbook

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	cmerrors "github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/staging"
)

// SheetRecords is one output sheet: a header row and its data rows.
type SheetRecords struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write stores sheets at path. An .xlsx path produces one workbook with a
// worksheet per entry; a .csv path produces one "<stem>-<sheet>.csv" file per
// entry next to it. Either every file is written or none is.
func Write(path string, sheets []SheetRecords) error {
	set := &staging.Set{}
	defer set.Discard()
	if err := Stage(set, path, sheets); err != nil {
		return err
	}
	return set.Commit()
}

// Stage renders sheets into set without touching path. The files appear
// when set is committed.
func Stage(set *staging.Set, path string, sheets []SheetRecords) error {
	if len(sheets) == 0 {
		return cmerrors.NewIOError("write", path, fmt.Errorf("no sheets to write"))
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = stageCSV(set, path, sheets)
	case ".xlsx", ".xlsm":
		err = stageExcel(set, path, sheets)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if cmerrors.IsIOError(err) {
		return err
	}
	return cmerrors.WrapIO("write", path, err)
}

// CSVPaths returns the files a .csv output path expands to.
func CSVPaths(path string, sheets []SheetRecords) []string {
	dir := filepath.Dir(path)
	stem := Stem(path)
	out := make([]string, len(sheets))
	for i, s := range sheets {
		out[i] = filepath.Join(dir, stem+"-"+s.Name+".csv")
	}
	return out
}

func stageExcel(set *staging.Set, path string, sheets []SheetRecords) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 && defaultSheet != "" {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return err
		}
		if err := setRows(f, s); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	out, err := set.Create(path)
	if err != nil {
		return err
	}
	if err := f.Write(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func setRows(f *excelize.File, s SheetRecords) error {
	rows := make([][]string, 0, len(s.Rows)+1)
	rows = append(rows, s.Header)
	rows = append(rows, s.Rows...)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(s.Name, axis, &values); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

// stageCSV writes one file per sheet into set.
func stageCSV(set *staging.Set, path string, sheets []SheetRecords) error {
	for i, p := range CSVPaths(path, sheets) {
		out, err := set.Create(p)
		if err != nil {
			return err
		}
		w := csv.NewWriter(out)
		rows := append([][]string{sheets[i].Header}, sheets[i].Rows...)
		if err := w.WriteAll(rows); err != nil {
			_ = out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}
