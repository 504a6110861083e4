package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nimata/nimata/pkg/style"
	"github.com/nimata/nimata/pkg/ui"
)

// resolveFormat reads the persistent --format flag and resolves "auto"
// against the process stdout, so piped output degrades to plain text.
func resolveFormat(cmd *cobra.Command) (ui.Format, error) {
	raw, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := ui.ParseFormat(raw)
	if err != nil {
		return ui.FormatAuto, err
	}
	return format.Resolve(os.Stdout), nil
}

// newRenderer picks the style renderer matching a resolved format.
// JSON output bypasses renderers entirely; callers handle it first.
func newRenderer(format ui.Format) style.Renderer {
	if format == ui.FormatTerminal {
		return style.NewTerminalRenderer()
	}
	return style.NewPlainRenderer()
}

// printJSON writes v as indented JSON, the shape tooling consumes.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printIssues writes validation findings to w, one styled line each.
func printIssues(w io.Writer, report style.Report) {
	for _, issue := range report.Issues() {
		fmt.Fprintln(w, style.RenderIssue(issue))
	}
}
