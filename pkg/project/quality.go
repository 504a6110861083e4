// Package project defines the closed vocabulary of project metadata
// (quality levels, project types, assistant integrations) and builds
// the template context derived from it.
package project

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/errors"
)

// QualityLevel selects how demanding the generated tooling configuration
// is. The set is closed: parsing rejects unknown names instead of
// falling through to a default.
type QualityLevel int

const (
	// QualityLight keeps checks minimal and fast
	QualityLight QualityLevel = iota
	// QualityMedium is the balanced default
	QualityMedium
	// QualityStrict enables every check the tooling offers
	QualityStrict
)

// AllQualityLevels returns the levels in ascending strictness order.
func AllQualityLevels() []QualityLevel {
	return []QualityLevel{QualityLight, QualityMedium, QualityStrict}
}

// String returns the configuration-file spelling of the level
func (q QualityLevel) String() string {
	switch q {
	case QualityLight:
		return "light"
	case QualityMedium:
		return "medium"
	case QualityStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseQualityLevel parses a configuration value into a QualityLevel
func ParseQualityLevel(s string) (QualityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return QualityLight, nil
	case "medium":
		return QualityMedium, nil
	case "strict":
		return QualityStrict, nil
	default:
		return QualityMedium, errors.Newf(errors.ErrQualityLevel,
			"unknown quality level %q (expected light, medium or strict)", s)
	}
}

// MarshalYAML serializes the level as its string spelling
func (q QualityLevel) MarshalYAML() (interface{}, error) {
	switch q {
	case QualityLight, QualityMedium, QualityStrict:
		return q.String(), nil
	default:
		return nil, errors.Newf(errors.ErrQualityLevel, "cannot serialize unknown quality level %d", int(q))
	}
}

// UnmarshalYAML parses the string spelling of a level
func (q *QualityLevel) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return errors.Wrap(err, errors.ErrQualityLevel, "quality level must be a string")
	}
	parsed, err := ParseQualityLevel(s)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
