package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Loader reads the dataset from a fixed path. The uploaded file only signals
// that a dataset should be loaded; its content is never read.
type Loader struct {
	Path string
	log  *zap.Logger
}

// NewLoader returns a loader bound to path. A nil logger is replaced by a no-op one.
func NewLoader(path string, log *zap.Logger) *Loader {
	if path == "" {
		path = DefaultSourceFile
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Path: path, log: log}
}

// Load returns nil, nil when no file is present. Otherwise it reads the fixed
// path; any failure wraps ErrDatasetLoad.
func (l *Loader) Load(filePresent bool) (*Dataset, error) {
	if !filePresent {
		return nil, nil
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	if strings.EqualFold(filepath.Ext(l.Path), ".xlsx") {
		header, rows, err = readXLSX(l.Path)
	} else {
		header, rows, err = readCSV(l.Path)
	}
	if err != nil {
		l.log.Warn("dataset load failed", zap.String("path", l.Path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetLoad, l.Path, err)
	}

	ds, err := build(l.Path, header, rows)
	if err != nil {
		l.log.Warn("dataset rejected", zap.String("path", l.Path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrDatasetLoad, l.Path, err)
	}
	l.log.Info("dataset loaded", zap.String("path", l.Path), zap.Int("rows", ds.Len()))
	return ds, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, err
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	for n, row := range rows {
		if len(row) > len(header) {
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", n+2, len(header), len(row))
		}
	}
	return header, padRows(header, rows), nil
}

// padRows fills short rows with empty cells up to the header width. Cells are
// kept exactly as written.
func padRows(header []string, rows [][]string) [][]string {
	for i, row := range rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty sheet %q", sheets[0])
	}
	// excelize drops trailing empty cells.
	return all[0], padRows(all[0], all[1:]), nil
}

func build(source string, header []string, rows [][]string) (*Dataset, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	ds := &Dataset{Source: source, Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		cell := func(col string) string { return row[index[col]] }
		ds.Records = append(ds.Records, Record{
			CropType:                 cell(ColCropType),
			FertilizerRecommendation: cell(ColFertilizer),
			Nitrogen:                 cell(ColNitrogen),
			Phosphorus:               cell(ColPhosphorus),
			Potassium:                cell(ColPotassium),
			Humidity:                 cell(ColHumidity),
			Temperature:              cell(ColTemperature),
		})
	}
	return ds, nil
}
