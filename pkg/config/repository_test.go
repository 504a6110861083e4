package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/paths"
	"github.com/nimata/nimata/pkg/project"
)

// testRepository returns a repository whose global configuration lives
// under a throwaway home directory, plus that home's path so tests can
// plant a global file.
func testRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	home := t.TempDir()
	return NewRepository(WithHome(home)), home
}

func writeGlobalConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, paths.NimataDirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.GlobalConfigFile), []byte(content), 0644))
}

func writeProjectConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, paths.ProjectConfigFile), []byte(content), 0644))
}

func TestLoadDefaultsOnly(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	cfg, err := repo.Load(root)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, project.QualityMedium, cfg.QualityLevel)
	assert.Equal(t, []string{"claude"}, cfg.AIAssistants)
	for _, tool := range []string{"eslint", "prettier", "typescript", "vitest"} {
		assert.True(t, cfg.ToolEnabled(tool), "tool %s should default to enabled", tool)
	}
}

func TestLoadGlobalOnly(t *testing.T) {
	repo, home := testRepository(t)
	root := t.TempDir()

	writeGlobalConfig(t, home, `
qualityLevel: strict
tools:
  eslint:
    enabled: false
`)

	cfg, err := repo.Load(root)
	require.NoError(t, err)

	assert.Equal(t, project.QualityStrict, cfg.QualityLevel)
	assert.False(t, cfg.ToolEnabled("eslint"))
	// Untouched defaults survive the merge.
	assert.True(t, cfg.ToolEnabled("prettier"))
	assert.Equal(t, []string{"claude"}, cfg.AIAssistants)
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	repo, home := testRepository(t)
	root := t.TempDir()

	writeGlobalConfig(t, home, `
qualityLevel: strict
aiAssistants:
  - claude
  - copilot
tools:
  eslint:
    enabled: false
    maxWarnings: 10
`)
	writeProjectConfig(t, root, `
qualityLevel: light
aiAssistants:
  - copilot
tools:
  eslint:
    maxWarnings: 0
`)

	cfg, err := repo.Load(root)
	require.NoError(t, err)

	assert.Equal(t, project.QualityLight, cfg.QualityLevel)
	// Lists replace wholesale, they never concatenate.
	assert.Equal(t, []string{"copilot"}, cfg.AIAssistants)
	// Tool mappings merge key by key: enabled comes from the global
	// layer, maxWarnings from the project layer.
	eslint := cfg.Tools["eslint"]
	assert.False(t, eslint.Enabled)
	assert.Equal(t, 0, eslint.Options["maxWarnings"])
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	writeProjectConfig(t, root, "qualityLevel: strict\n")

	t.Setenv("NIMATA_QUALITYLEVEL", "light")
	t.Setenv("NIMATA_AIASSISTANTS", "claude,copilot")
	t.Setenv("NIMATA_TOOLS_ESLINT_ENABLED", "false")

	cfg, err := repo.Load(root)
	require.NoError(t, err)

	assert.Equal(t, project.QualityLight, cfg.QualityLevel)
	assert.Equal(t, []string{"claude", "copilot"}, cfg.AIAssistants)
	assert.False(t, cfg.ToolEnabled("eslint"))
}

func TestLoadIgnoresUnrelatedEnvironment(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	// NIMATA_CONFIG_DIR steers path resolution; it is not a
	// configuration key and must not leak into the merged result.
	t.Setenv("NIMATA_CONFIG_DIR", t.TempDir())

	cfg, err := repo.Load(root)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCacheHitReturnsSamePointer(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	first, err := repo.Load(root)
	require.NoError(t, err)

	// A file written after the first load is invisible while cached.
	writeProjectConfig(t, root, "qualityLevel: strict\n")

	second, err := repo.Load(root)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, project.QualityMedium, second.QualityLevel)

	repo.ClearCache()

	third, err := repo.Load(root)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, project.QualityStrict, third.QualityLevel)
}

func TestLoadCacheIsSingleSlot(t *testing.T) {
	repo, _ := testRepository(t)
	rootA := t.TempDir()
	rootB := t.TempDir()

	firstA, err := repo.Load(rootA)
	require.NoError(t, err)

	_, err = repo.Load(rootB)
	require.NoError(t, err)

	// Loading a second root evicted the first; this is a re-read.
	secondA, err := repo.Load(rootA)
	require.NoError(t, err)
	assert.NotSame(t, firstA, secondA)
}

func TestLoadFailsOnUnsafeProjectFile(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	writeProjectConfig(t, root, "tools: &anchor\n  eslint:\n    enabled: true\n")

	_, err := repo.Load(root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigAnchor))
}

func TestLoadFailsOnUnsafeGlobalFile(t *testing.T) {
	repo, home := testRepository(t)
	root := t.TempDir()

	writeGlobalConfig(t, home, "cmd: ${HOME}/bin\n")

	_, err := repo.Load(root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigUnsafe))
}

func TestLoadSemanticValidation(t *testing.T) {
	t.Run("version_below_one", func(t *testing.T) {
		repo, _ := testRepository(t)
		root := t.TempDir()
		writeProjectConfig(t, root, "version: 0\n")

		_, err := repo.Load(root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("unknown_quality_level", func(t *testing.T) {
		repo, _ := testRepository(t)
		root := t.TempDir()
		writeProjectConfig(t, root, "qualityLevel: extreme\n")

		_, err := repo.Load(root)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestSaveRoundTrip(t *testing.T) {
	repo, _ := testRepository(t)
	root := t.TempDir()

	cfg := Default()
	cfg.QualityLevel = project.QualityStrict
	cfg.AIAssistants = []string{"claude", "copilot"}
	cfg.Tools["eslint"] = ToolConfig{
		Enabled: true,
		Options: map[string]any{"maxWarnings": 3},
	}

	require.NoError(t, repo.Save(cfg, root))

	// The file lands at <root>/.nimatarc with camelCase keys.
	data, err := os.ReadFile(filepath.Join(root, paths.ProjectConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "qualityLevel: strict")
	assert.Contains(t, string(data), "maxWarnings: 3")

	// Save updates the cache in place: the next Load skips the re-read.
	cached, err := repo.Load(root)
	require.NoError(t, err)
	assert.Same(t, cfg, cached)

	// And a cold load reconstructs the saved configuration from disk.
	repo.ClearCache()
	loaded, err := repo.Load(root)
	require.NoError(t, err)
	assert.Equal(t, project.QualityStrict, loaded.QualityLevel)
	assert.Equal(t, []string{"claude", "copilot"}, loaded.AIAssistants)
	assert.Equal(t, 3, loaded.Tools["eslint"].Options["maxWarnings"])
}

func TestSaveRejectsNilConfig(t *testing.T) {
	repo, _ := testRepository(t)

	err := repo.Save(nil, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	repo, _ := testRepository(t)

	cfg := Default()
	cfg.Version = 0

	err := repo.Save(cfg, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestGlobalPathResolution(t *testing.T) {
	t.Run("with_home_option", func(t *testing.T) {
		home := t.TempDir()
		repo := NewRepository(WithHome(home))

		got, err := repo.GlobalPath(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".nimata", "config.yaml"), got)
	})

	t.Run("with_global_path_option", func(t *testing.T) {
		pinned := filepath.Join(t.TempDir(), "custom.yaml")
		repo := NewRepository(WithGlobalPath(pinned))

		got, err := repo.GlobalPath(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, pinned, got)
	})

	t.Run("config_dir_environment_override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(paths.EnvNimataConfigDir, dir)
		repo := NewRepository()

		got, err := repo.GlobalPath(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "config.yaml"), got)
	})
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"version":      2,
		"qualityLevel": "light",
		"aiAssistants": []any{"copilot"},
		"tools": map[string]any{
			"eslint": map[string]any{
				"enabled":     true,
				"maxWarnings": 5,
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, project.QualityLight, cfg.QualityLevel)
	assert.Equal(t, []string{"copilot"}, cfg.AIAssistants)
	assert.True(t, cfg.Tools["eslint"].Enabled)
	assert.Equal(t, 5, cfg.Tools["eslint"].Options["maxWarnings"])
}

func TestFromMapRejectsUnknownQualityLevel(t *testing.T) {
	_, err := FromMap(map[string]any{"qualityLevel": "extreme"})
	require.Error(t, err)
}
