package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering CLI output types
type Renderer interface {
	RenderReports(reports []Report) string
	RenderConfig(values map[string]any) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderReports renders per-file validation reports plus a summary line
func (r *TerminalRenderer) RenderReports(reports []Report) string {
	if len(reports) == 0 {
		return MutedStyle.Render("No templates checked")
	}

	var result strings.Builder
	invalid := 0

	for _, report := range reports {
		result.WriteString(RenderReport(report) + "\n\n")
		if report.Severity() == SeverityError {
			invalid++
		}
	}

	summary := fmt.Sprintf("%d checked, %d invalid", len(reports), invalid)
	result.WriteString(SeverityStyle(SummarizeReports(reports)).Sprint(summary))

	return result.String()
}

// RenderConfig renders a configuration map as an indented key/value
// tree with deterministic (sorted) key order.
func (r *TerminalRenderer) RenderConfig(values map[string]any) string {
	var result strings.Builder
	renderConfigMap(&result, values, 0, true)
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error message. Coded errors already carry
// their "[CODE]" marker in the message text.
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderReports renders plain per-file reports
func (r *PlainRenderer) RenderReports(reports []Report) string {
	if len(reports) == 0 {
		return "No templates checked"
	}

	var result strings.Builder
	invalid := 0

	for _, report := range reports {
		result.WriteString(fmt.Sprintf("%s: %s\n", report.Path, report.Verdict()))
		for _, issue := range report.Issues() {
			result.WriteString(fmt.Sprintf("  %s: %s\n", issue.Severity, issue.Message))
		}
		result.WriteString("\n")
		if report.Severity() == SeverityError {
			invalid++
		}
	}

	result.WriteString(fmt.Sprintf("%d checked, %d invalid", len(reports), invalid))

	return result.String()
}

// RenderConfig renders a plain key/value tree
func (r *PlainRenderer) RenderConfig(values map[string]any) string {
	var result strings.Builder
	renderConfigMap(&result, values, 0, false)
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// renderConfigMap walks a configuration map depth-first, keys sorted,
// nested mappings indented two spaces per level and list items as
// "- item" lines.
func renderConfigMap(b *strings.Builder, values map[string]any, level int, styled bool) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pad := strings.Repeat("  ", level)

	for _, key := range keys {
		label := key
		if styled {
			label = KeyStyle.Render(key)
		}

		switch v := values[key].(type) {
		case map[string]any:
			b.WriteString(fmt.Sprintf("%s%s:\n", pad, label))
			renderConfigMap(b, v, level+1, styled)
		case []any:
			b.WriteString(fmt.Sprintf("%s%s:\n", pad, label))
			for _, item := range v {
				b.WriteString(fmt.Sprintf("%s  - %s\n", pad, renderScalar(item, styled)))
			}
		default:
			b.WriteString(fmt.Sprintf("%s%s: %s\n", pad, label, renderScalar(v, styled)))
		}
	}
}

func renderScalar(v any, styled bool) string {
	s := fmt.Sprintf("%v", v)
	if styled {
		return ValueStyle.Render(s)
	}
	return s
}
