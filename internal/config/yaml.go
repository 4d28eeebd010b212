package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors Config with pointers where presence matters.
type yamlConfig struct {
	ConfigVersion string           `yaml:"configVersion"`
	Columns       Columns          `yaml:"columns"`
	DateFormats   []string         `yaml:"dateFormats"`
	HorizonDays   int              `yaml:"horizonDays"`
	Seasonality   *yamlSeasonality `yaml:"seasonality"`
	Post          *yamlPost        `yaml:"post"`
}

type yamlSeasonality struct {
	Daily      *bool `yaml:"daily"`
	DailyOrder int   `yaml:"dailyOrder"`
}

type yamlPost struct {
	Script    string `yaml:"script"`
	TimeoutMs int    `yaml:"timeoutMs"`
	Libs      *Libs  `yaml:"libs"`
}

func loadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	if y.ConfigVersion == "" {
		return Config{}, fmt.Errorf("missing required field: configVersion")
	}

	c := Config{
		ConfigVersion: y.ConfigVersion,
		Columns:       y.Columns,
		DateFormats:   y.DateFormats,
		HorizonDays:   y.HorizonDays,
	}
	if y.Seasonality != nil {
		if y.Seasonality.Daily != nil {
			c.Seasonality.Daily = *y.Seasonality.Daily
			c.Seasonality.HasDaily = true
		}
		c.Seasonality.DailyOrder = y.Seasonality.DailyOrder
	}
	if y.Post != nil {
		post := &Post{Script: y.Post.Script, TimeoutMs: y.Post.TimeoutMs}
		if y.Post.Libs != nil {
			post.Libs = *y.Post.Libs
			post.HasLibs = true
		}
		c.Post = post
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}
