// Command nimata is the project scaffolding CLI: it renders templates,
// substitutes variables and manages the configuration cascade.
package main

import (
	"fmt"
	"os"

	"github.com/nimata/nimata/internal/cli"
	"github.com/nimata/nimata/pkg/style"
	"github.com/nimata/nimata/pkg/ui"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var renderer style.Renderer = style.NewPlainRenderer()
		if ui.DetectFormat(os.Stderr) == ui.FormatTerminal {
			renderer = style.NewTerminalRenderer()
		}
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
