// Command nimata-manpage writes the nimata man page to stdout. It is
// run at packaging time, not shipped to users.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/nimata/nimata/internal/cli"
	"github.com/nimata/nimata/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "NIMATA",
		Section: "1",
		Source:  "nimata " + version.Version,
		Manual:  "nimata manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
