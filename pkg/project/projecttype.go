package project

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/errors"
)

// ProjectType names the kind of project being scaffolded.
type ProjectType int

const (
	// TypeBasic is a minimal package layout
	TypeBasic ProjectType = iota
	// TypeWeb is a web application layout
	TypeWeb
	// TypeCLI is a command-line tool layout
	TypeCLI
	// TypeLibrary is a reusable library layout
	TypeLibrary
)

// AllProjectTypes returns every known project type.
func AllProjectTypes() []ProjectType {
	return []ProjectType{TypeBasic, TypeWeb, TypeCLI, TypeLibrary}
}

// String returns the configuration-file spelling of the type
func (p ProjectType) String() string {
	switch p {
	case TypeBasic:
		return "basic"
	case TypeWeb:
		return "web"
	case TypeCLI:
		return "cli"
	case TypeLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// ParseProjectType parses a configuration value into a ProjectType
func ParseProjectType(s string) (ProjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return TypeBasic, nil
	case "web":
		return TypeWeb, nil
	case "cli":
		return TypeCLI, nil
	case "library", "lib":
		return TypeLibrary, nil
	default:
		return TypeBasic, errors.Newf(errors.ErrProjectType,
			"unknown project type %q (expected basic, web, cli or library)", s)
	}
}

// MarshalYAML serializes the type as its string spelling
func (p ProjectType) MarshalYAML() (interface{}, error) {
	switch p {
	case TypeBasic, TypeWeb, TypeCLI, TypeLibrary:
		return p.String(), nil
	default:
		return nil, errors.Newf(errors.ErrProjectType, "cannot serialize unknown project type %d", int(p))
	}
}

// UnmarshalYAML parses the string spelling of a type
func (p *ProjectType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return errors.Wrap(err, errors.ErrProjectType, "project type must be a string")
	}
	parsed, err := ParseProjectType(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
