// Package docs ships nimata's user-facing help topics. The markdown
// files under help/ are embedded into the binary so the topic-based
// help system works without any files installed on disk.
package docs

import (
	"embed"
	"io/fs"
)

//go:embed help
var helpFiles embed.FS

// Help returns the filesystem of help topics, rooted at the topic files
// themselves.
func Help() fs.FS {
	sub, err := fs.Sub(helpFiles, "help")
	if err != nil {
		// The help directory is embedded at compile time, so Sub can
		// only fail if the tree layout changes without this constant.
		panic(err)
	}
	return sub
}
