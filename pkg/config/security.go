package config

import (
	"bytes"
	goerrors "errors"
	"os"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/paths"
)

// Limits applied to every configuration file before its content is
// accepted into the cascade.
const (
	// MaxConfigFileSize is the byte-size cap for a configuration file.
	MaxConfigFileSize = 1 << 20

	// MaxNestingDepth is the deepest mapping-in-mapping chain a
	// configuration file may contain. The root mapping counts as level
	// one; lists are traversed but do not add a level.
	MaxNestingDepth = 10
)

// rawBytesProvider feeds already-read bytes into a koanf parser.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, goerrors.New("not implemented")
}

// loadConfigFile reads and validates one configuration file. A missing
// file is not an error and yields a nil mapping; every other problem is
// a hard failure. The validation order is fixed: size, anchor/alias
// rejection, suspicious patterns, YAML parse, nesting depth, string
// value screening.
func loadConfigFile(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}

	if info.Size() > MaxConfigFileSize {
		return nil, errors.Newf(errors.ErrConfigTooLarge,
			"configuration file %s is %d bytes, exceeding the %d byte limit",
			path, info.Size(), MaxConfigFileSize).
			WithDetail("size", info.Size()).
			WithDetail("limit", MaxConfigFileSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	// A blunt substring scan; a '&' or '*' inside a legitimate string
	// value is rejected too. That tradeoff is deliberate: it keeps the
	// check independent of the parser.
	if i := bytes.IndexAny(raw, "&*"); i >= 0 {
		return nil, errors.Newf(errors.ErrConfigAnchor,
			"configuration file %s contains %q: YAML anchors and aliases are not allowed",
			path, rune(raw[i])).
			WithDetail("offset", i)
	}

	if name, found := findUnsafePattern(string(raw)); found {
		return nil, errors.Newf(errors.ErrConfigUnsafe,
			"configuration file %s contains a suspicious %s", path, name).
			WithDetail("pattern", name)
	}

	parsed, err := parseYAMLMapping(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	if depth := mappingDepth(parsed, 0); depth > MaxNestingDepth {
		return nil, errors.Newf(errors.ErrConfigDepth,
			"configuration file %s nests %d mapping levels deep, exceeding the %d level limit",
			path, depth, MaxNestingDepth).
			WithDetail("depth", depth).
			WithDetail("limit", MaxNestingDepth)
	}

	if err := screenStringValues(parsed); err != nil {
		return nil, err
	}

	return parsed, nil
}

// findUnsafePattern scans raw text for embedded content that has no
// business in a configuration file.
func findUnsafePattern(raw string) (string, bool) {
	if strings.Contains(raw, "${") {
		return "${...} shell interpolation", true
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<script") {
		return "<script> tag", true
	}
	if strings.Contains(lower, "javascript:") {
		return "javascript: URL", true
	}
	if strings.Contains(lower, "data:") && strings.Contains(lower, ";base64") {
		return "base64 data URL", true
	}
	return "", false
}

// parseYAMLMapping parses raw YAML into a plain nested mapping. A
// document whose root is not a mapping fails.
func parseYAMLMapping(raw []byte) (map[string]any, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: raw}, kyaml.Parser()); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

// mappingDepth returns the deepest mapping chain in value. Only
// mapping-to-mapping descent increments: a mapping inside a list is one
// level below the mapping that holds the list.
func mappingDepth(value any, current int) int {
	switch v := value.(type) {
	case map[string]any:
		depth := current + 1
		deepest := depth
		for _, child := range v {
			if d := mappingDepth(child, depth); d > deepest {
				deepest = d
			}
		}
		return deepest
	case []any:
		deepest := current
		for _, child := range v {
			if d := mappingDepth(child, current); d > deepest {
				deepest = d
			}
		}
		return deepest
	default:
		return current
	}
}

// screenStringValues walks the parsed structure and screens every key
// and string value for traversal markers and deceptive characters. The
// validator's error is propagated untouched.
func screenStringValues(value any) error {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			if err := paths.ValidateValueSecurity(key); err != nil {
				return err
			}
			if err := screenStringValues(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range v {
			if err := screenStringValues(child); err != nil {
				return err
			}
		}
	case string:
		return paths.ValidateValueSecurity(v)
	}
	return nil
}
