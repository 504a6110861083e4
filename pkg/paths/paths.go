package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nimata/nimata/pkg/errors"
)

// Environment variable names
const (
	// EnvNimataConfigDir overrides the global configuration directory
	EnvNimataConfigDir = "NIMATA_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define where nimata looks for configuration
// and are NOT user-configurable. They must remain consistent across all
// nimata installations.
const (
	// NimataDirName is the directory under $HOME for global configuration
	NimataDirName = ".nimata"

	// GlobalConfigFile is the name of the global configuration file
	GlobalConfigFile = "config.yaml"

	// ProjectConfigFile is the name of the per-project configuration file
	ProjectConfigFile = ".nimatarc"
)

// Paths provides centralized path management for nimata
type Paths interface {
	ProjectRoot() string
	UsedFallback() bool
	GlobalConfigDir() string
	GlobalConfigPath() string
	ProjectConfigPath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// projectRoot is the root directory of the target project
	projectRoot string

	// globalConfigDir is the directory holding the global config file
	globalConfigDir string

	// usedFallback indicates if we fell back to cwd (for warning display)
	usedFallback bool
}

// New creates a new Paths instance rooted at the given project directory.
// An empty projectRoot resolves to the current working directory.
func New(projectRoot string) (Paths, error) {
	p := &paths{}

	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
		}
		p.projectRoot = cwd
		p.usedFallback = true
	} else {
		p.projectRoot = expandHome(projectRoot)
	}

	// Ensure project root is absolute
	absRoot, err := filepath.Abs(p.projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	p.projectRoot = absRoot

	if err := p.setupGlobalConfigDir(); err != nil {
		return nil, err
	}

	return p, nil
}

// setupGlobalConfigDir resolves the global config directory, respecting
// the NIMATA_CONFIG_DIR override and defaulting to $HOME/.nimata.
func (p *paths) setupGlobalConfigDir() error {
	if configDir := os.Getenv(EnvNimataConfigDir); configDir != "" {
		p.globalConfigDir = expandHome(configDir)
		return nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return err
	}
	p.globalConfigDir = filepath.Join(homeDir, NimataDirName)
	return nil
}

// ProjectRoot returns the resolved project root directory
func (p *paths) ProjectRoot() string {
	return p.projectRoot
}

// UsedFallback returns true if the current working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// GlobalConfigDir returns the directory holding the global configuration
func (p *paths) GlobalConfigDir() string {
	return p.globalConfigDir
}

// GlobalConfigPath returns the path to the global configuration file
func (p *paths) GlobalConfigPath() string {
	return filepath.Join(p.globalConfigDir, GlobalConfigFile)
}

// ProjectConfigPath returns the path to the project configuration file
func (p *paths) ProjectConfigPath() string {
	return filepath.Join(p.projectRoot, ProjectConfigFile)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to HOME env var
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				// Can't expand, return as-is
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		// Handle both ~/ and ~
		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		if xdg.Home != "" {
			return xdg.Home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}
