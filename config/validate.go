package config

import (
	"strings"

	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/transpile"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := transpile.ParseSignatureMode(c.Translate.Signatures); err != nil {
		return errors.Mark(errors.Wrap(err, "translate.signatures"), errors.ErrInvalidConfig)
	}

	// Indent must be whitespace only, empty falls back to the default
	if strings.TrimLeft(c.Translate.Indent, " \t") != "" {
		return errors.NewInvalidConfigError("translate.indent must contain only spaces or tabs, got %q", c.Translate.Indent)
	}

	// Workers: 0 would never translate anything
	if c.Driver.Workers <= 0 {
		return errors.NewInvalidConfigError("driver.workers must be > 0, got %d", c.Driver.Workers)
	}

	// Debounce: 0 = re-translate on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidConfigError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
