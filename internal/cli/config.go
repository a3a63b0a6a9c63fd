package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// configFile is the name of the config file inside the config directory.
const configFile = "config.toml"

// Config is the optional TOML config file:
//
//	[layout]
//	width = 4.0
//	height = 3.0
//	color_by = "path"
//
//	[render]
//	scale = 200.0
//	legend = true
//	min_label_side = 0.05
//
//	[cache]
//	backend = "redis"   # file (default), redis, none
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//
//	[serve]
//	addr = ":8080"
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Serve  ServeConfig  `toml:"serve"`
}

type LayoutConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	ColorBy string  `toml:"color_by"`
}

type RenderConfig struct {
	Scale        float64 `toml:"scale"`
	Legend       bool    `toml:"legend"`
	MinLabelSide float64 `toml:"min_label_side"`
}

type CacheConfig struct {
	Backend       string `toml:"backend"`
	TTL           string `toml:"ttl"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

type ServeConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads the config file at path. An empty path selects the
// default location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
			}
			return Config{}, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidFormat,
			"unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// options converts the config into pipeline options; unset values stay zero
// and are filled in by the pipeline defaults.
func (c Config) options() pipeline.Options {
	return pipeline.Options{
		Width:        c.Layout.Width,
		Height:       c.Layout.Height,
		ColorBy:      c.Layout.ColorBy,
		Scale:        c.Render.Scale,
		Legend:       c.Render.Legend,
		MinLabelSide: c.Render.MinLabelSide,
	}
}
