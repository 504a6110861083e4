package config

import (
	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/project"
)

// Config is the effective nimata configuration after the cascade has
// been applied.
type Config struct {
	Version      int                   `koanf:"version" yaml:"version"`
	QualityLevel project.QualityLevel  `koanf:"qualityLevel" yaml:"qualityLevel"`
	AIAssistants []string              `koanf:"aiAssistants" yaml:"aiAssistants"`
	Tools        map[string]ToolConfig `koanf:"tools" yaml:"tools"`
}

// ToolConfig holds the settings for one tool. Keys other than enabled
// are tool-specific and kept as-is in Options.
type ToolConfig struct {
	Enabled bool           `koanf:"enabled" yaml:"enabled"`
	Options map[string]any `koanf:",remain" yaml:",inline"`
}

// Default returns the built-in configuration used when no file
// provides a value.
func Default() *Config {
	return &Config{
		Version:      1,
		QualityLevel: project.QualityMedium,
		AIAssistants: []string{"claude"},
		Tools: map[string]ToolConfig{
			"eslint":     {Enabled: true},
			"prettier":   {Enabled: true},
			"typescript": {Enabled: true},
			"vitest":     {Enabled: true},
		},
	}
}

// DefaultMap returns the built-in defaults as a plain mapping, the
// shape the cascade merges file content into.
func DefaultMap() map[string]any {
	return map[string]any{
		"version":      1,
		"qualityLevel": project.QualityMedium.String(),
		"aiAssistants": []any{"claude"},
		"tools": map[string]any{
			"eslint":     map[string]any{"enabled": true},
			"prettier":   map[string]any{"enabled": true},
			"typescript": map[string]any{"enabled": true},
			"vitest":     map[string]any{"enabled": true},
		},
	}
}

// ToMap converts the configuration to a plain mapping with the on-disk
// key spelling, suitable for merging and dotted-path access.
func (c *Config) ToMap() map[string]any {
	assistants := make([]any, len(c.AIAssistants))
	for i, a := range c.AIAssistants {
		assistants[i] = a
	}

	tools := make(map[string]any, len(c.Tools))
	for name, tc := range c.Tools {
		tool := map[string]any{"enabled": tc.Enabled}
		for k, v := range tc.Options {
			tool[k] = v
		}
		tools[name] = tool
	}

	return map[string]any{
		"version":      c.Version,
		"qualityLevel": c.QualityLevel.String(),
		"aiAssistants": assistants,
		"tools":        tools,
	}
}

// Validate checks the semantic constraints that survive decoding: a
// version of at least 1 and a known quality level.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return errors.Newf(errors.ErrConfigValid,
			"configuration version must be at least 1, got %d", c.Version)
	}
	switch c.QualityLevel {
	case project.QualityLight, project.QualityMedium, project.QualityStrict:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"unknown quality level %d", int(c.QualityLevel))
	}
	return nil
}

// ToolEnabled reports whether a tool is present and enabled.
func (c *Config) ToolEnabled(name string) bool {
	tc, ok := c.Tools[name]
	return ok && tc.Enabled
}
