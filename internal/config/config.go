// Package config loads the optional pipeline configuration. Two formats are
// accepted: CUE (validated field by field) and YAML. Both share the same
// shape and both require a configVersion string.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/flarebyte/ratecast/internal/stage"
)

// Columns overrides the source column names.
type Columns struct {
	Date   string `yaml:"date"`
	Rating string `yaml:"rating"`
}

// Seasonality overrides engine seasonality. HasDaily distinguishes an
// explicit `daily: false` from an absent section.
type Seasonality struct {
	Daily      bool `yaml:"daily"`
	HasDaily   bool `yaml:"-"`
	DailyOrder int  `yaml:"dailyOrder"`
}

// Libs selects Lua standard libraries for the post-hook sandbox.
type Libs struct {
	Base   bool `yaml:"base"`
	Table  bool `yaml:"table"`
	String bool `yaml:"string"`
	Math   bool `yaml:"math"`
}

// Post configures the Lua post-hook.
type Post struct {
	Script    string `yaml:"script"`
	TimeoutMs int    `yaml:"timeoutMs"`
	Libs      Libs   `yaml:"libs"`
	HasLibs   bool   `yaml:"-"`
}

// Config is the parsed configuration.
type Config struct {
	ConfigVersion string      `yaml:"configVersion"`
	Columns       Columns     `yaml:"columns"`
	DateFormats   []string    `yaml:"dateFormats"`
	HorizonDays   int         `yaml:"horizonDays"`
	Seasonality   Seasonality `yaml:"seasonality"`
	Post          *Post       `yaml:"post"`
}

// Load reads and validates a config file, dispatching on the extension.
func Load(path string) (Config, error) {
	switch filepath.Ext(path) {
	case ".cue":
		return loadCUE(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return Config{}, fmt.Errorf("unsupported config format: expected .cue, .yaml or .yml")
	}
}

// Apply folds the config into pipeline settings, leaving defaults in place
// for anything the config does not mention.
func (c Config) Apply(meta *stage.Meta) {
	if c.Columns.Date != "" {
		meta.Columns.Date = c.Columns.Date
	}
	if c.Columns.Rating != "" {
		meta.Columns.Rating = c.Columns.Rating
	}
	if len(c.DateFormats) > 0 {
		meta.DateFormats = c.DateFormats
	}
	if c.HorizonDays > 0 {
		meta.HorizonDays = c.HorizonDays
	}
	if c.Seasonality.HasDaily {
		meta.Seasonality.Daily = c.Seasonality.Daily
	}
	if c.Seasonality.DailyOrder > 0 {
		meta.Seasonality.DailyOrder = c.Seasonality.DailyOrder
	}
	if c.Post != nil && c.Post.Script != "" {
		libs := stage.LuaLibsMeta{Base: true, Table: true, String: true, Math: true}
		if c.Post.HasLibs {
			libs = stage.LuaLibsMeta{
				Base:   c.Post.Libs.Base,
				Table:  c.Post.Libs.Table,
				String: c.Post.Libs.String,
				Math:   c.Post.Libs.Math,
			}
		}
		meta.Post = &stage.PostMeta{
			Script:    c.Post.Script,
			TimeoutMs: c.Post.TimeoutMs,
			Libs:      libs,
		}
	}
}

func loadCUE(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}

	var c Config
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&c.ConfigVersion); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}
	parseColumnsSection(v, &c)
	parseDateFormats(v, &c)
	parseForecastSection(v, &c)
	parsePostSection(v, &c)

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

func validate(c Config) error {
	if c.ConfigVersion == "" {
		return fmt.Errorf("missing required field: configVersion")
	}
	if c.HorizonDays < 0 {
		return fmt.Errorf("invalid horizonDays: %d", c.HorizonDays)
	}
	for _, f := range c.DateFormats {
		if f == "" {
			return fmt.Errorf("empty entry in dateFormats")
		}
	}
	if c.Post != nil && c.Post.TimeoutMs < 0 {
		return fmt.Errorf("invalid post.timeoutMs: %d", c.Post.TimeoutMs)
	}
	return nil
}
