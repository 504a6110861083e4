package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Severity grades a single finding from template validation or
// variable substitution.
type Severity string

const (
	SeverityOK      Severity = "ok"      // Nothing to report
	SeverityWarning Severity = "warning" // Suspicious but renderable
	SeverityError   Severity = "error"   // Structurally broken
)

// SeverityStyle returns the appropriate pterm style for a severity
func SeverityStyle(severity Severity) *pterm.Style {
	switch severity {
	case SeverityOK:
		return pterm.NewStyle(pterm.FgGreen)
	case SeverityWarning:
		return pterm.NewStyle(pterm.FgYellow)
	case SeverityError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Issue is a single finding attached to a template.
type Issue struct {
	Severity Severity
	Message  string
}

// Report collects the validation outcome for one template file.
type Report struct {
	Path     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// Issues flattens a report into renderable findings, errors first.
func (r Report) Issues() []Issue {
	issues := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	for _, msg := range r.Errors {
		issues = append(issues, Issue{Severity: SeverityError, Message: msg})
	}
	for _, msg := range r.Warnings {
		issues = append(issues, Issue{Severity: SeverityWarning, Message: msg})
	}
	return issues
}

// Severity aggregates a report's findings into a single grade.
func (r Report) Severity() Severity {
	if !r.Valid || len(r.Errors) > 0 {
		return SeverityError
	}
	if len(r.Warnings) > 0 {
		return SeverityWarning
	}
	return SeverityOK
}

// Verdict is the one-word summary shown next to the file path.
func (r Report) Verdict() string {
	switch r.Severity() {
	case SeverityError:
		return "invalid"
	case SeverityWarning:
		return "ok (with warnings)"
	default:
		return "ok"
	}
}

// RenderIssue renders a single finding line
func RenderIssue(issue Issue) string {
	label := fmt.Sprintf("%-7s", string(issue.Severity))
	return fmt.Sprintf("  %s : %s", SeverityStyle(issue.Severity).Sprint(label), issue.Message)
}

// RenderReport renders a complete per-file report: a verdict header
// followed by one line per finding.
func RenderReport(report Report) string {
	var result strings.Builder

	severity := report.Severity()
	header := fmt.Sprintf("%s: %s", report.Path, SeverityStyle(severity).Sprint(report.Verdict()))
	result.WriteString(header + "\n")

	for _, issue := range report.Issues() {
		result.WriteString(RenderIssue(issue) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// SummarizeReports determines the overall severity across files.
func SummarizeReports(reports []Report) Severity {
	worst := SeverityOK
	for _, r := range reports {
		switch r.Severity() {
		case SeverityError:
			return SeverityError
		case SeverityWarning:
			worst = SeverityWarning
		}
	}
	return worst
}
