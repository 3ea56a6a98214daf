package config

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultSignatures = "untyped"
	DefaultIndent     = "    "
	DefaultWorkers    = 4
	DefaultDebounceMS = 200

	// ProjectConfigName is searched for from the working directory upwards.
	ProjectConfigName = "py2rs.toml"

	// EnvPrefix prefixes environment overrides, e.g. PY2RS_DRIVER_WORKERS.
	EnvPrefix = "PY2RS"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("translate.signatures", DefaultSignatures)
	v.SetDefault("translate.indent", DefaultIndent)

	v.SetDefault("driver.workers", DefaultWorkers)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS) // editors often write in several steps

	v.SetDefault("log.json", false)
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Translate: TranslateConfig{Signatures: DefaultSignatures, Indent: DefaultIndent},
		Driver:    DriverConfig{Workers: DefaultWorkers},
		Watch:     WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}
