package stage

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"
)

const prepareRowsStage = "prepare-rows"

func init() {
	Register(prepareRowsStage, prepareRowsRunner)
}

// prepareRowsRunner projects the table to the two relevant columns, sorts
// ascending by the raw date string (stable), then coerces types. Rows whose
// rating is not numeric are dropped rather than failing; rows whose date
// matches none of the configured layouts are dropped the same way. This
// stage has no failure path.
func prepareRowsRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	out := in
	if in.Done {
		return out, nil
	}

	cols := ColumnsMeta{Date: "date", Rating: "rating"}
	formats := DefaultDateFormats
	if in.Meta != nil {
		if in.Meta.Columns.Date != "" {
			cols.Date = in.Meta.Columns.Date
		}
		if in.Meta.Columns.Rating != "" {
			cols.Rating = in.Meta.Columns.Rating
		}
		if len(in.Meta.DateFormats) > 0 {
			formats = in.Meta.DateFormats
		}
	}

	dateIdx := columnIndex(in.Table, cols.Date)
	ratingIdx := columnIndex(in.Table, cols.Rating)

	type rawRow struct {
		date   string
		rating string
	}
	raw := make([]rawRow, 0, len(in.Table.Rows))
	for _, rec := range in.Table.Rows {
		var rr rawRow
		if dateIdx < len(rec) {
			rr.date = rec[dateIdx]
		}
		if ratingIdx < len(rec) {
			rr.rating = rec[ratingIdx]
		}
		raw = append(raw, rr)
	}

	// Sort on the raw string before parsing, as the source did. Ties keep
	// input order.
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].date < raw[j].date })

	series := &Series{}
	for _, rr := range raw {
		rating, ok := coerceRating(rr.rating)
		if !ok {
			continue
		}
		date, ok := parseDate(rr.date, formats)
		if !ok {
			continue
		}
		series.Observations = append(series.Observations, Observation{Date: date, Rating: rating})
	}

	out.Series = series
	return out, nil
}

func coerceRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDate(s string, formats []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
