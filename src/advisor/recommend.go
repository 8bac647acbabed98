package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/agri-advisor/src/dataset"
	"github.com/Protocol-Lattice/agri-advisor/src/translate"
)

// Fixed sentences shown to the user, always passed through the translator.
const (
	MsgUploadLabel   = "Upload your dataset"
	MsgUploadPrompt  = "Please upload a dataset to proceed."
	MsgInvalidData   = "Invalid dataset format."
	MsgAskHint       = "Ask about crop conditions and fertilizers"
	MsgFallback      = "I can provide insights on fertilizers, humidity, and temperature."
	msgNoDataPattern = "No data available for %s."
)

// RecommendColumns are the columns of a fertilizer answer.
var RecommendColumns = []string{
	dataset.ColFertilizer,
	dataset.ColNitrogen,
	dataset.ColPhosphorus,
	dataset.ColPotassium,
}

// Reply is either a translated sentence or a translated table.
type Reply struct {
	Message string
	Table   *dataset.Table
}

// IsTable reports whether the reply carries tabular data.
func (r Reply) IsTable() bool { return r.Table != nil }

// String renders the reply as plain text. Tables use pipe-separated rows with
// the column names on the first line.
func (r Reply) String() string {
	if r.Table == nil {
		return r.Message
	}
	var b strings.Builder
	b.WriteString(strings.Join(r.Table.Columns, " | "))
	for _, row := range r.Table.Rows {
		b.WriteString("\n")
		b.WriteString(strings.Join(row, " | "))
	}
	return b.String()
}

// NoDataMessage is the untranslated sentence for a crop with no rows.
func NoDataMessage(cropType string) string {
	return fmt.Sprintf(msgNoDataPattern, cropType)
}

// Recommend answers a fertilizer question for cropType. Each cell is
// translated on its own call.
func Recommend(ctx context.Context, tr translate.Translator, ds *dataset.Dataset, cropType, langCode string) (Reply, error) {
	matches := dataset.FilterByCrop(ds, cropType)
	if matches.Empty() {
		return message(ctx, tr, NoDataMessage(cropType), langCode)
	}
	return table(ctx, tr, matches.Project(RecommendColumns...), langCode)
}

// Overview answers the humidity and temperature questions: Crop Type plus the
// requested column for every row.
func Overview(ctx context.Context, tr translate.Translator, ds *dataset.Dataset, column, langCode string) (Reply, error) {
	return table(ctx, tr, ds.Project(dataset.ColCropType, column), langCode)
}

func message(ctx context.Context, tr translate.Translator, text, langCode string) (Reply, error) {
	out, err := tr.Translate(ctx, text, langCode)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Message: out}, nil
}

func table(ctx context.Context, tr translate.Translator, t dataset.Table, langCode string) (Reply, error) {
	translated, err := t.MapCells(func(cell string) (string, error) {
		return tr.Translate(ctx, cell, langCode)
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Table: &translated}, nil
}
