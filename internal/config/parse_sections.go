package config

import "cuelang.org/go/cue"

// Optional-section extraction for CUE configs. Fields with the wrong kind
// are skipped rather than failing; validate covers what must hold.

func parseColumnsSection(v cue.Value, c *Config) {
	cv := v.LookupPath(cue.ParsePath("columns"))
	if !cv.Exists() {
		return
	}
	dv := cv.LookupPath(cue.ParsePath("date"))
	if dv.Exists() && dv.Kind() == cue.StringKind {
		_ = dv.Decode(&c.Columns.Date)
	}
	rv := cv.LookupPath(cue.ParsePath("rating"))
	if rv.Exists() && rv.Kind() == cue.StringKind {
		_ = rv.Decode(&c.Columns.Rating)
	}
}

func parseDateFormats(v cue.Value, c *Config) {
	fv := v.LookupPath(cue.ParsePath("dateFormats"))
	if fv.Exists() && fv.Kind() == cue.ListKind {
		_ = fv.Decode(&c.DateFormats)
	}
}

func parseForecastSection(v cue.Value, c *Config) {
	hv := v.LookupPath(cue.ParsePath("horizonDays"))
	if hv.Exists() && hv.Kind() == cue.IntKind {
		_ = hv.Decode(&c.HorizonDays)
	}
	sv := v.LookupPath(cue.ParsePath("seasonality"))
	if !sv.Exists() {
		return
	}
	dv := sv.LookupPath(cue.ParsePath("daily"))
	if dv.Exists() && dv.Kind() == cue.BoolKind {
		if err := dv.Decode(&c.Seasonality.Daily); err == nil {
			c.Seasonality.HasDaily = true
		}
	}
	ov := sv.LookupPath(cue.ParsePath("dailyOrder"))
	if ov.Exists() && ov.Kind() == cue.IntKind {
		_ = ov.Decode(&c.Seasonality.DailyOrder)
	}
}

func parsePostSection(v cue.Value, c *Config) {
	pv := v.LookupPath(cue.ParsePath("post"))
	if !pv.Exists() {
		return
	}
	post := &Post{}
	sv := pv.LookupPath(cue.ParsePath("script"))
	if sv.Exists() && sv.Kind() == cue.StringKind {
		_ = sv.Decode(&post.Script)
	}
	tv := pv.LookupPath(cue.ParsePath("timeoutMs"))
	if tv.Exists() && tv.Kind() == cue.IntKind {
		_ = tv.Decode(&post.TimeoutMs)
	}
	lv := pv.LookupPath(cue.ParsePath("libs"))
	if lv.Exists() {
		post.HasLibs = true
		decodeBool(lv, "base", &post.Libs.Base)
		decodeBool(lv, "table", &post.Libs.Table)
		decodeBool(lv, "string", &post.Libs.String)
		decodeBool(lv, "math", &post.Libs.Math)
	}
	c.Post = post
}

func decodeBool(v cue.Value, name string, dst *bool) {
	f := v.LookupPath(cue.ParsePath(name))
	if f.Exists() && f.Kind() == cue.BoolKind {
		_ = f.Decode(dst)
	}
}
