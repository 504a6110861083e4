// Package ui selects how nimata talks to the terminal: rich styled
// output, plain text, or machine-readable JSON, with auto-detection
// from the environment.
package ui

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/nimata/nimata/pkg/errors"
)

// Format is the output format for command results.
type Format int

const (
	// FormatAuto picks between terminal and text based on the output's
	// capabilities
	FormatAuto Format = iota
	// FormatTerminal renders styled output with colors
	FormatTerminal
	// FormatText renders plain text without any styling
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
)

// AllFormats returns the formats accepted on the command line.
func AllFormats() []Format {
	return []Format{FormatAuto, FormatTerminal, FormatText, FormatJSON}
}

// String returns the command-line spelling of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a command-line value into a Format. The empty
// string means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput,
			"unknown format %q (expected auto, term, text or json)", s)
	}
}

// Resolve turns FormatAuto into a concrete format for the given output
// and leaves explicit choices untouched.
func (f Format) Resolve(output *os.File) Format {
	if f == FormatAuto {
		return DetectFormat(output)
	}
	return f
}

// DetectFormat determines the output format from the environment:
// NO_COLOR or a non-terminal output forces plain text, a color-capable
// terminal gets styled output.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
