package stage

import "time"

// ColumnsMeta names the source columns holding the date and the rating.
type ColumnsMeta struct {
	Date   string `json:"date"`
	Rating string `json:"rating"`
}

// SeasonalityMeta holds engine seasonality settings.
type SeasonalityMeta struct {
	Daily      bool `json:"daily"`
	DailyOrder int  `json:"dailyOrder"`
}

// PostMeta holds optional Lua post-hook settings.
type PostMeta struct {
	Script    string      `json:"script,omitempty"`
	TimeoutMs int         `json:"timeoutMs,omitempty"`
	Libs      LuaLibsMeta `json:"libs"`
}

// LuaLibsMeta selects which Lua standard libraries the sandbox opens.
type LuaLibsMeta struct {
	Base   bool `json:"base"`
	Table  bool `json:"table"`
	String bool `json:"string"`
	Math   bool `json:"math"`
}

// Meta holds pipeline settings with deterministic JSON field order.
type Meta struct {
	CSVPath     string          `json:"csvPath,omitempty"`
	Columns     ColumnsMeta     `json:"columns"`
	DateFormats []string        `json:"dateFormats,omitempty"`
	HorizonDays int             `json:"horizonDays,omitempty"`
	Seasonality SeasonalityMeta `json:"seasonality"`
	Post        *PostMeta       `json:"post,omitempty"`
}

// Table is the raw CSV contents: a header row plus data rows, all strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Observation is one prepared data point.
type Observation struct {
	Date   time.Time
	Rating float64
}

// Series is the prepared fitting set, ordered ascending by date.
type Series struct {
	Observations []Observation
}

// Len returns the number of observations.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Observations)
}

// Times returns the observation dates in order.
func (s *Series) Times() []time.Time {
	out := make([]time.Time, 0, s.Len())
	for _, o := range s.Observations {
		out = append(out, o.Date)
	}
	return out
}

// Values returns the observation ratings in order.
func (s *Series) Values() []float64 {
	out := make([]float64, 0, s.Len())
	for _, o := range s.Observations {
		out = append(out, o.Rating)
	}
	return out
}

// Envelope is the contract passed between stages. A stage reads what it
// needs, fills in what it produced, and hands the rest through untouched.
type Envelope struct {
	Meta   *Meta
	Table  *Table
	Series *Series
	// Result is the forecast: nil means "no data to forecast" and renders
	// as JSON null.
	Result *float64
	// Done short-circuits the remaining transform stages. Set when the
	// input table has no data rows; the check happens once, before any
	// coercion, so a table whose rows all fail coercion is not marked
	// Done and still reaches the engine.
	Done bool
}

// DefaultDateFormats are the layouts tried, in order, when parsing dates.
var DefaultDateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// DefaultMeta returns pipeline settings matching the stock behavior:
// columns date/rating, a one-day horizon, daily seasonality enabled.
func DefaultMeta(csvPath string) *Meta {
	return &Meta{
		CSVPath:     csvPath,
		Columns:     ColumnsMeta{Date: "date", Rating: "rating"},
		DateFormats: DefaultDateFormats,
		HorizonDays: 1,
		Seasonality: SeasonalityMeta{Daily: true, DailyOrder: 4},
	}
}
