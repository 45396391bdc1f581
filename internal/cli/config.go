package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
)

// Config holds flag defaults read from a TOML file:
//
//	orientation = "LR"
//	format      = "png"
//	depth       = 3
//	data        = true
//	exclude     = ["node_modules", "**/*.tmp"]
//
// Pointer fields distinguish "unset" from the zero value.
type Config struct {
	Orientation string   `toml:"orientation"`
	Format      string   `toml:"format"`
	Depth       *int     `toml:"depth"`
	Hidden      *bool    `toml:"hidden"`
	Data        *bool    `toml:"data"`
	Files       *bool    `toml:"files"`
	RankSep     *float64 `toml:"ranksep"`
	Renderer    string   `toml:"renderer"`
	DotPath     string   `toml:"dot_path"`
	RemoteURL   string   `toml:"remote_url"`
	Exclude     []string `toml:"exclude"`
	Addr        string   `toml:"addr"`
}

// loadConfig reads the config file at path. With an empty path the default
// location is tried, and a missing default file yields an empty config.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, errors.WrapFS(err, "read config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// apply copies config values into opts for every flag that was not set on
// the command line.
func (c *Config) apply(flags *pflag.FlagSet, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := flags.Lookup(name)
		return f == nil || !f.Changed
	}

	if c.Orientation != "" && unset("orientation") {
		opts.Orientation = c.Orientation
	}
	if c.Format != "" && unset("format") {
		opts.FileType = c.Format
	}
	if c.Depth != nil && unset("depth") {
		depth := *c.Depth
		opts.MaxDepth = &depth
	}
	if c.Hidden != nil && unset("hidden") {
		opts.ShowHidden = *c.Hidden
	}
	if c.Data != nil && unset("data") {
		opts.ShowData = *c.Data
	}
	if c.Files != nil && unset("files") {
		opts.ShowFiles = *c.Files
	}
	if c.RankSep != nil && unset("ranksep") {
		sep := *c.RankSep
		opts.RankSep = &sep
	}
	if c.Renderer != "" && unset("renderer") {
		opts.Renderer = c.Renderer
	}
	if c.DotPath != "" && unset("dot-path") {
		opts.DotPath = c.DotPath
	}
	if c.RemoteURL != "" && unset("remote-url") {
		opts.RemoteURL = c.RemoteURL
	}
	if len(c.Exclude) > 0 && unset("exclude") {
		opts.Exclude = c.Exclude
	}
}
