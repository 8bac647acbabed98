// Package dataset loads the crop table and answers row-level queries on it.
package dataset

import (
	"errors"

	"golang.org/x/text/cases"
)

// Column names the advisor reads. The header row must carry all of them.
const (
	ColCropType       = "Crop Type"
	ColFertilizer     = "Fertilizer Recommendation"
	ColNitrogen       = "Nitrogen"
	ColPhosphorus     = "Phosphorus"
	ColPotassium      = "Potassium"
	ColHumidity       = "Humidity"
	ColTemperature    = "Temperature"
	DefaultSourceFile = "data_core.csv"
)

// RequiredColumns is the header contract of a dataset file.
var RequiredColumns = []string{
	ColCropType,
	ColFertilizer,
	ColNitrogen,
	ColPhosphorus,
	ColPotassium,
	ColHumidity,
	ColTemperature,
}

// ErrDatasetLoad wraps every failure to read or parse the fixed dataset file.
var ErrDatasetLoad = errors.New("invalid dataset format")

// Record is one row. Cells keep the text found in the file.
type Record struct {
	CropType                 string
	FertilizerRecommendation string
	Nitrogen                 string
	Phosphorus               string
	Potassium                string
	Humidity                 string
	Temperature              string
}

// Field returns the cell for a column name.
func (r Record) Field(col string) (string, bool) {
	switch col {
	case ColCropType:
		return r.CropType, true
	case ColFertilizer:
		return r.FertilizerRecommendation, true
	case ColNitrogen:
		return r.Nitrogen, true
	case ColPhosphorus:
		return r.Phosphorus, true
	case ColPotassium:
		return r.Potassium, true
	case ColHumidity:
		return r.Humidity, true
	case ColTemperature:
		return r.Temperature, true
	}
	return "", false
}

// Dataset is an ordered set of records.
type Dataset struct {
	Source  string
	Records []Record
}

// Len reports the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Empty is true when there are no rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// FilterByCrop keeps the rows whose crop type equals cropType after case
// folding. Surrounding whitespace is significant. Row order is preserved.
func FilterByCrop(d *Dataset, cropType string) *Dataset {
	out := &Dataset{}
	if d == nil {
		return out
	}
	out.Source = d.Source
	// Casers are stateful and not safe for concurrent use.
	folder := cases.Fold()
	want := folder.String(cropType)
	for _, r := range d.Records {
		if folder.String(r.CropType) == want {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Table is a typed projection of a dataset onto named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len reports the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Project selects the given columns for every record, in record order.
// Unknown columns yield empty cells.
func (d *Dataset) Project(cols ...string) Table {
	t := Table{Columns: append([]string(nil), cols...)}
	if d == nil {
		return t
	}
	t.Rows = make([][]string, 0, len(d.Records))
	for _, r := range d.Records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i], _ = r.Field(c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// MapCells rebuilds the table with fn applied to every cell, left to right,
// top to bottom. The first error stops the walk.
func (t Table) MapCells(fn func(cell string) (string, error)) (Table, error) {
	out := Table{Columns: append([]string(nil), t.Columns...), Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		mapped := make([]string, len(row))
		for i, cell := range row {
			v, err := fn(cell)
			if err != nil {
				return Table{}, err
			}
			mapped[i] = v
		}
		out.Rows = append(out.Rows, mapped)
	}
	return out, nil
}
