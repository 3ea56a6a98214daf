package config

import (
	"os"
	"strings"

	"github.com/teranos/py2rs/errors"
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
	Source     Source      `json:"source"`
	SourcePath string      `json:"source_path,omitempty"` // file path or env var name
}

// Introspect lists every effective setting with the source it came from,
// sorted by key.
func (l *Loader) Introspect() ([]SettingInfo, error) {
	v, err := l.viper()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}

	settings := v.AllSettings()
	var out []SettingInfo
	for _, key := range flattenKeys(settings, "") {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := l.sources[key]; ok {
			info = si
		}

		// Environment variables override every file
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		out = append(out, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return out, nil
}
