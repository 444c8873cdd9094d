// Package dataset loads a labeled feature table into typed, validated columns.
package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

// Options controls how a feature table is read.
type Options struct {
	// LabelColumn names the categorical column excluded from numeric work.
	LabelColumn string
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// XLSX sheet selection; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the options used for the sensor dataset.
func DefaultOptions() Options {
	return Options{LabelColumn: "Activity", SheetIndex: 1}
}

// Table is an immutable feature table: a numeric matrix plus one label per row.
type Table struct {
	Name     string
	Features []string
	Label    string
	Labels   []string
	// Rows is row-major: Rows[i][j] is sample i, feature j.
	Rows [][]float64
}

// NumRows returns the sample count.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumFeatures returns the numeric column count.
func (t *Table) NumFeatures() int { return len(t.Features) }

// Column returns a copy of feature column j.
func (t *Table) Column(j int) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[j]
	}
	return out
}

// FeatureIndex returns the column index of a feature name, or -1.
func (t *Table) FeatureIndex(name string) int {
	for j, f := range t.Features {
		if f == name {
			return j
		}
	}
	return -1
}

// Classes returns the distinct labels in order of first appearance.
func (t *Table) Classes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range t.Labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// Load reads a CSV/TSV or XLSX file and splits it into features and labels.
func Load(path string, opt Options) (*Table, error) {
	if opt.LabelColumn == "" {
		opt.LabelColumn = DefaultOptions().LabelColumn
	}
	var df dataframe.DataFrame
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		df, err = readXLSX(path, opt)
	} else {
		df, err = readCSV(path, opt)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return fromFrame(filepath.Base(path), df, opt.LabelColumn, path)
}

func readCSV(path string, opt Options) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithDelimiter(delim),
	)
	if df.Err != nil {
		return df, fmt.Errorf("parse csv: %w", df.Err)
	}
	return df, nil
}

func readXLSX(path string, opt Options) (dataframe.DataFrame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer wb.Close()
	sheet := opt.SheetName
	if sheet == "" {
		list := wb.GetSheetList()
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(list) {
			return dataframe.DataFrame{}, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(list))
		}
		sheet = list[idx-1]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %q is empty", sheet)
	}
	// GetRows trims trailing empty cells; pad to header width.
	width := len(rows[0])
	for i, r := range rows {
		if len(r) < width {
			tmp := make([]string, width)
			copy(tmp, r)
			rows[i] = tmp
		}
	}
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return df, fmt.Errorf("parse sheet %q: %w", sheet, df.Err)
	}
	return df, nil
}

func fromFrame(name string, df dataframe.DataFrame, label, path string) (*Table, error) {
	names := df.Names()
	labelIdx := -1
	for i, n := range names {
		if n == label {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return nil, &MissingColumnError{Column: label, Available: names}
	}
	if df.Nrow() < 2 {
		return nil, &LoadError{Path: path, Err: ErrTooFewRows}
	}
	if len(names) < 2 {
		return nil, &LoadError{Path: path, Err: ErrNoFeatures}
	}

	t := &Table{Name: name, Label: label}
	cols := make([][]float64, 0, len(names)-1)
	for i, n := range names {
		s := df.Col(n)
		if i == labelIdx {
			t.Labels = s.Records()
			for r, l := range t.Labels {
				if strings.TrimSpace(l) == "" {
					// +2: 1-based and past the header line.
					return nil, &LoadError{Path: path, Err: fmt.Errorf("row %d: %w", r+2, ErrBlankLabel)}
				}
			}
			continue
		}
		switch s.Type() {
		case series.Float, series.Int:
		default:
			return nil, &NonNumericError{Column: n, Kind: string(s.Type())}
		}
		if s.HasNaN() {
			return nil, &NonNumericError{Column: n, Kind: "missing values"}
		}
		vals := s.Float()
		for _, v := range vals {
			if math.IsInf(v, 0) {
				return nil, &NonNumericError{Column: n, Kind: "non-finite values"}
			}
		}
		t.Features = append(t.Features, n)
		cols = append(cols, vals)
	}

	t.Rows = make([][]float64, df.Nrow())
	for i := range t.Rows {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c[i]
		}
		t.Rows[i] = row
	}
	return t, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
