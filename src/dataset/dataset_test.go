package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Crop Type,Fertilizer Recommendation,Nitrogen,Phosphorus,Potassium,Humidity,Temperature
Wheat,Urea,10,20,30,55,22
Rice,DAP,15,25,35,80,28
wheat,NPK,12,18,24,50,21
Maize,Urea,40,20,10,60,26
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewLoader(writeFile(t, "data.csv", sampleCSV), nil).Load(true)
	require.NoError(t, err)
	return ds
}

func cropTypes(d *Dataset) []string {
	var out []string
	for _, r := range d.Records {
		out = append(out, r.CropType)
	}
	return out
}

func TestLoadWithoutFileReturnsNothing(t *testing.T) {
	ds, err := NewLoader("does-not-matter.csv", nil).Load(false)
	assert.NoError(t, err)
	assert.Nil(t, ds)
}

func TestLoadCSV(t *testing.T) {
	ds := sample(t)
	require.Equal(t, 4, ds.Len())
	assert.Equal(t, Record{
		CropType:                 "Wheat",
		FertilizerRecommendation: "Urea",
		Nitrogen:                 "10",
		Phosphorus:               "20",
		Potassium:                "30",
		Humidity:                 "55",
		Temperature:              "22",
	}, ds.Records[0])
}

func TestLoadCSVReorderedAndExtraColumns(t *testing.T) {
	content := "Temperature,Soil,Crop Type,Humidity,Potassium,Phosphorus,Nitrogen,Fertilizer Recommendation\n" +
		"30,Clay,Cotton,40,5,6,7,Potash\n"
	ds, err := NewLoader(writeFile(t, "d.csv", content), nil).Load(true)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	r := ds.Records[0]
	assert.Equal(t, "Cotton", r.CropType)
	assert.Equal(t, "Potash", r.FertilizerRecommendation)
	assert.Equal(t, "7", r.Nitrogen)
	assert.Equal(t, "30", r.Temperature)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") }},
		{"empty file", func(t *testing.T) string { return writeFile(t, "e.csv", "") }},
		{"missing column", func(t *testing.T) string {
			return writeFile(t, "m.csv", "Crop Type,Humidity\nWheat,50\n")
		}},
		{"overlong row", func(t *testing.T) string {
			return writeFile(t, "r.csv", strings.SplitN(sampleCSV, "\n", 2)[0]+"\nWheat,Urea,1,2,3,4,5,6\n")
		}},
		{"not a workbook", func(t *testing.T) string { return writeFile(t, "x.xlsx", "plain text") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewLoader(tt.path(t), nil).Load(true)
			assert.Nil(t, ds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDatasetLoad), "got %v", err)
		})
	}
}

func TestLoadCSVPadsShortRows(t *testing.T) {
	ds, err := NewLoader(writeFile(t, "s.csv", strings.SplitN(sampleCSV, "\n", 2)[0]+"\nWheat,Urea\nRice,DAP,15,25,35,80,28\n"), nil).Load(true)
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, Record{CropType: "Wheat", FertilizerRecommendation: "Urea"}, ds.Records[0])
	assert.Equal(t, "28", ds.Records[1].Temperature)
}

func TestLoadCSVKeepsCellsAsWritten(t *testing.T) {
	content := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n Wheat, Urea,10,20,30,55,22\n"
	ds, err := NewLoader(writeFile(t, "p.csv", content), nil).Load(true)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, " Wheat", ds.Records[0].CropType)
	assert.Equal(t, " Urea", ds.Records[0].FertilizerRecommendation)

	assert.Empty(t, FilterByCrop(ds, "wheat").Records)
	assert.Len(t, FilterByCrop(ds, " WHEAT").Records, 1)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	header := []interface{}{ColCropType, ColFertilizer, ColNitrogen, ColPhosphorus, ColPotassium, ColHumidity, ColTemperature}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	row := []interface{}{"Barley", "Urea", 9, 8, 7, 45, 18}
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &row))
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewLoader(path, nil).Load(true)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Barley", ds.Records[0].CropType)
	assert.Equal(t, "9", ds.Records[0].Nitrogen)
	assert.Equal(t, "18", ds.Records[0].Temperature)
}

func TestFilterByCropExactCaseInsensitive(t *testing.T) {
	ds := sample(t)

	got := FilterByCrop(ds, "WHEAT")
	assert.Equal(t, []string{"Wheat", "wheat"}, cropTypes(got))

	assert.True(t, FilterByCrop(ds, "Whea").Empty(), "no partial match")
	assert.True(t, FilterByCrop(ds, " Wheat").Empty(), "no trimming")
	assert.True(t, FilterByCrop(ds, "Barley").Empty())
}

func TestFilterByCropIdempotentAndOrdered(t *testing.T) {
	ds := sample(t)
	for _, q := range []string{"wheat", "rice", "maize", "barley", ""} {
		once := FilterByCrop(ds, q)
		twice := FilterByCrop(once, q)
		assert.Equal(t, once.Records, twice.Records, q)

		// Matches appear in the same relative order as in the source.
		j := 0
		for _, r := range ds.Records {
			if j < once.Len() && r == once.Records[j] {
				j++
			}
		}
		assert.Equal(t, once.Len(), j, q)
	}
}

func TestFilterByCropUnicodeFolding(t *testing.T) {
	ds := &Dataset{Records: []Record{{CropType: "Straße"}, {CropType: "STRASSE"}}}
	assert.Equal(t, 2, FilterByCrop(ds, "strasse").Len())
}

func TestFilterNilDataset(t *testing.T) {
	assert.True(t, FilterByCrop(nil, "x").Empty())
}

func TestProjectAndMapCells(t *testing.T) {
	ds := FilterByCrop(sample(t), "rice")
	tbl := ds.Project(ColFertilizer, ColNitrogen, ColPhosphorus, ColPotassium)
	assert.Equal(t, []string{ColFertilizer, ColNitrogen, ColPhosphorus, ColPotassium}, tbl.Columns)
	assert.Equal(t, [][]string{{"DAP", "15", "25", "35"}}, tbl.Rows)

	var seen []string
	upper, err := tbl.MapCells(func(c string) (string, error) {
		seen = append(seen, c)
		return strings.ToLower(c) + "!", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"DAP", "15", "25", "35"}, seen)
	assert.Equal(t, [][]string{{"dap!", "15!", "25!", "35!"}}, upper.Rows)
	assert.Equal(t, [][]string{{"DAP", "15", "25", "35"}}, tbl.Rows, "source untouched")
}

func TestMapCellsStopsOnError(t *testing.T) {
	tbl := sample(t).Project(ColCropType)
	boom := errors.New("boom")
	calls := 0
	_, err := tbl.MapCells(func(string) (string, error) {
		calls++
		if calls == 2 {
			return "", boom
		}
		return "ok", nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
