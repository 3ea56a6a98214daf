package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/py2rs/errors"
)

// SystemConfigPath is the lowest-precedence configuration file.
var SystemConfigPath = "/etc/py2rs/config.toml"

// Source represents where a configuration value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceSystem      Source = "system"      // /etc/py2rs/config.toml
	SourceUser        Source = "user"        // ~/.py2rs/config.toml
	SourceProject     Source = "project"     // nearest py2rs.toml
	SourceExplicit    Source = "explicit"    // --config
	SourceEnvironment Source = "environment" // PY2RS_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source Source
	Path   string // file path or environment variable name
}

// Loader resolves configuration for one invocation.
type Loader struct {
	// ExplicitPath, when set, is merged above every discovered file.
	ExplicitPath string
	// WorkDir is where the project config search starts; empty means os.Getwd.
	WorkDir string

	v       *viper.Viper
	sources map[string]SourceInfo
}

// Load reads the configuration using discovered files and the environment.
func Load(explicitPath string) (*Config, error) {
	return (&Loader{ExplicitPath: explicitPath}).Load()
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, ignoring discovered files and the environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return unmarshal(v, configPath)
}

// Load merges all sources and validates the result.
func (l *Loader) Load() (*Config, error) {
	v, err := l.viper()
	if err != nil {
		return nil, err
	}
	return unmarshal(v, "merged config")
}

func unmarshal(v *viper.Viper, what string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", what)
	}
	if cfg.Translate.Indent == "" {
		cfg.Translate.Indent = DefaultIndent
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", what)
	}
	return &cfg, nil
}

func (l *Loader) viper() (*viper.Viper, error) {
	if l.v != nil {
		return l.v, nil
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	l.sources = make(map[string]SourceInfo)
	if err := l.mergeConfigFiles(v); err != nil {
		return nil, err
	}

	l.v = v
	return v, nil
}

type candidate struct {
	path     string
	source   Source
	required bool
}

// mergeConfigFiles merges configuration files in precedence order
// (lowest to highest): system < user < project < explicit < env vars
func (l *Loader) mergeConfigFiles(v *viper.Viper) error {
	candidates := []candidate{{path: SystemConfigPath, source: SourceSystem}}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, candidate{
			path:   filepath.Join(home, ".py2rs", "config.toml"),
			source: SourceUser,
		})
	}
	if project := l.findProjectConfig(); project != "" {
		candidates = append(candidates, candidate{path: project, source: SourceProject})
	}
	if l.ExplicitPath != "" {
		candidates = append(candidates, candidate{path: l.ExplicitPath, source: SourceExplicit, required: true})
	}

	for _, c := range candidates {
		if _, err := os.Stat(c.path); err != nil {
			if c.required {
				return errors.WrapNotFound(err, "config file "+c.path)
			}
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(c.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			if c.required {
				return errors.Wrapf(err, "failed to read config file %s", c.path)
			}
			// A broken discovered file should not block translation.
			continue
		}

		settings := fileViper.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", c.path)
		}
		for _, key := range flattenKeys(settings, "") {
			l.sources[key] = SourceInfo{Source: c.source, Path: c.path}
		}
	}
	return nil
}

// findProjectConfig searches for py2rs.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found
func (l *Loader) findProjectConfig() string {
	dir := l.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// flattenKeys lists the dotted leaf keys of a nested settings map, sorted.
func flattenKeys(settings map[string]interface{}, prefix string) []string {
	var keys []string
	for key, value := range settings {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			keys = append(keys, flattenKeys(nested, full)...)
			continue
		}
		keys = append(keys, full)
	}
	sort.Strings(keys)
	return keys
}
