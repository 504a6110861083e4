package config

import (
	"github.com/knadh/koanf/maps"
)

// Merge deep-merges override into base and returns the result without
// mutating either input. Nested mappings combine key by key; everything
// else, lists included, is replaced wholesale by the overriding value.
func Merge(base, override map[string]any) map[string]any {
	merged := maps.Copy(base)
	maps.Merge(override, merged)
	return merged
}
