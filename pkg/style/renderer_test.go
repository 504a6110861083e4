package style

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nimata/nimata/pkg/errors"
)

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{
			name:     "no indent",
			text:     "Hello",
			level:    0,
			expected: "Hello",
		},
		{
			name:     "single indent",
			text:     "Hello",
			level:    1,
			expected: "  Hello",
		},
		{
			name:     "double indent",
			text:     "Hello",
			level:    2,
			expected: "    Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Indent(tt.text, tt.level)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestTextHelpers(t *testing.T) {
	tests := []struct {
		name  string
		style func(string) string
	}{
		{"bold", Bold},
		{"italic", Italic},
		{"underline", Underline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style("Hello World")
			if !strings.Contains(result, "Hello World") {
				t.Errorf("Expected output to contain text, got %q", result)
			}
		})
	}
}

func TestTerminalRenderer(t *testing.T) {
	renderer := NewTerminalRenderer()

	t.Run("RenderReports", func(t *testing.T) {
		reports := []Report{
			{Path: "a.hbs", Valid: true},
			{Path: "b.hbs", Valid: false, Errors: []string{"Unclosed {{#if}} blocks: 1 open, 0 closed"}},
		}

		result := renderer.RenderReports(reports)
		for _, expected := range []string{"a.hbs", "b.hbs", "Unclosed {{#if}} blocks", "2 checked, 1 invalid"} {
			if !strings.Contains(result, expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", expected, result)
			}
		}
	})

	t.Run("RenderReports empty", func(t *testing.T) {
		result := renderer.RenderReports(nil)
		if !strings.Contains(result, "No templates checked") {
			t.Error("Expected 'No templates checked' message")
		}
	})

	t.Run("RenderConfig", func(t *testing.T) {
		values := map[string]any{
			"version":      1,
			"qualityLevel": "medium",
			"aiAssistants": []any{"claude"},
			"tools": map[string]any{
				"eslint": map[string]any{"enabled": true},
			},
		}

		result := renderer.RenderConfig(values)
		for _, expected := range []string{"version", "qualityLevel", "medium", "- ", "claude", "eslint", "enabled", "true"} {
			if !strings.Contains(result, expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", expected, result)
			}
		}
	})

	t.Run("RenderError", func(t *testing.T) {
		err := errors.New(errors.ErrConfigParse, "something went wrong")
		result := renderer.RenderError(err)

		if !strings.Contains(result, "CONFIG_PARSE") {
			t.Error("Expected output to contain error code")
		}
		if !strings.Contains(result, "something went wrong") {
			t.Error("Expected output to contain error message")
		}
	})

	t.Run("RenderError nil", func(t *testing.T) {
		result := renderer.RenderError(nil)
		if result != "" {
			t.Errorf("Expected empty string for nil error, got %q", result)
		}
	})
}

func TestPlainRenderer(t *testing.T) {
	renderer := NewPlainRenderer()

	t.Run("RenderReports", func(t *testing.T) {
		reports := []Report{
			{Path: "a.hbs", Valid: true, Warnings: []string{"Undefined variable: author"}},
		}

		result := renderer.RenderReports(reports)
		for _, expected := range []string{"a.hbs: ok (with warnings)", "warning: Undefined variable: author", "1 checked, 0 invalid"} {
			if !strings.Contains(result, expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", expected, result)
			}
		}
	})

	t.Run("RenderReports empty", func(t *testing.T) {
		result := renderer.RenderReports([]Report{})
		if result != "No templates checked" {
			t.Errorf("Expected 'No templates checked', got %q", result)
		}
	})

	t.Run("RenderConfig sorts keys and indents", func(t *testing.T) {
		values := map[string]any{
			"zeta":  "last",
			"alpha": "first",
			"nested": map[string]any{
				"inner": 42,
			},
		}

		result := renderer.RenderConfig(values)
		expected := "alpha: first\nnested:\n  inner: 42\nzeta: last"
		if result != expected {
			t.Errorf("Expected:\n%s\ngot:\n%s", expected, result)
		}
	})

	t.Run("RenderConfig lists", func(t *testing.T) {
		values := map[string]any{
			"aiAssistants": []any{"claude", "copilot"},
		}

		result := renderer.RenderConfig(values)
		expected := "aiAssistants:\n  - claude\n  - copilot"
		if result != expected {
			t.Errorf("Expected:\n%s\ngot:\n%s", expected, result)
		}
	})

	t.Run("RenderError with code", func(t *testing.T) {
		err := errors.New(errors.ErrConfigTooLarge, "file exceeds limit")
		result := renderer.RenderError(err)

		if result != "Error: [CONFIG_TOO_LARGE] file exceeds limit" {
			t.Errorf("Expected coded message, got %q", result)
		}
	})

	t.Run("RenderError plain error", func(t *testing.T) {
		result := renderer.RenderError(fmt.Errorf("plain failure"))
		if result != "Error: plain failure" {
			t.Errorf("Expected 'Error: plain failure', got %q", result)
		}
	})
}
