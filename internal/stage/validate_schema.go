package stage

import (
	"context"
	"strings"
)

const validateSchemaStage = "validate-schema"

func init() {
	Register(validateSchemaStage, validateSchemaRunner)
}

// validateSchemaRunner checks that both required columns are present, then
// applies the one-shot emptiness check: a table with zero data rows marks
// the envelope Done with a null result. The check runs here, before any
// coercion, on purpose — rows that later fail coercion do not retrigger it.
func validateSchemaRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	cols := ColumnsMeta{Date: "date", Rating: "rating"}
	if in.Meta != nil {
		if in.Meta.Columns.Date != "" {
			cols.Date = in.Meta.Columns.Date
		}
		if in.Meta.Columns.Rating != "" {
			cols.Rating = in.Meta.Columns.Rating
		}
	}

	var missing []string
	if columnIndex(in.Table, cols.Date) < 0 {
		missing = append(missing, cols.Date)
	}
	if columnIndex(in.Table, cols.Rating) < 0 {
		missing = append(missing, cols.Rating)
	}
	if len(missing) > 0 {
		return Envelope{}, SchemaError{Missing: missing}
	}

	out := in
	if len(in.Table.Rows) == 0 {
		out.Result = nil
		out.Done = true
	}
	return out, nil
}

// columnIndex returns the index of a named header column, or -1.
func columnIndex(t *Table, name string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
