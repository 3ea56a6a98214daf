// Package config loads py2rs settings from defaults, TOML files and
// PY2RS_* environment variables.
package config

import (
	"github.com/teranos/py2rs/transpile"
)

// Config is the effective py2rs configuration.
type Config struct {
	Translate TranslateConfig `mapstructure:"translate" toml:"translate" yaml:"translate" json:"translate"`
	Driver    DriverConfig    `mapstructure:"driver" toml:"driver" yaml:"driver" json:"driver"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// TranslateConfig selects the rule set variant and output layout
type TranslateConfig struct {
	Signatures string `mapstructure:"signatures" toml:"signatures" yaml:"signatures" json:"signatures"` // "untyped" or "generic"
	Indent     string `mapstructure:"indent" toml:"indent" yaml:"indent" json:"indent"`                 // one indentation unit
}

// DriverConfig configures batch translation
type DriverConfig struct {
	Workers int `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"` // files translated concurrently (default: 4)
}

// WatchConfig configures `py2rs watch`
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"` // quiet period before re-translating (default: 200)
}

// LogConfig configures diagnostics output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"` // JSON logs and diagnostics on stderr
}

// TranslateOptions converts the translate section into translator options.
func (c *Config) TranslateOptions() (transpile.Options, error) {
	mode, err := transpile.ParseSignatureMode(c.Translate.Signatures)
	if err != nil {
		return transpile.Options{}, err
	}
	return transpile.Options{
		Signatures: mode,
		Indent:     c.Translate.Indent,
	}, nil
}
