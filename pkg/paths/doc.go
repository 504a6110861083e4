// Package paths provides centralized path handling for nimata.
//
// It resolves the two locations the configuration cascade reads from and
// provides the path/value validation used when screening configuration
// content. It handles:
//
//   - Project root resolution (explicit, or cwd fallback)
//   - Global configuration directory (~/.nimata)
//   - Per-project configuration file (.nimatarc)
//   - Path normalization and ~ expansion
//   - Security validation of paths and configuration values
//
// # Environment Variables
//
// The package respects the following environment variables:
//
//   - NIMATA_CONFIG_DIR: Override the global config directory (default: $HOME/.nimata)
//   - HOME: Home directory used for ~ expansion and the global config location
//
// # Usage
//
//	p, err := paths.New("/path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	global := p.GlobalConfigPath()   // $HOME/.nimata/config.yaml
//	project := p.ProjectConfigPath() // /path/to/project/.nimatarc
package paths
