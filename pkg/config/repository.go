package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/logging"
	"github.com/nimata/nimata/pkg/paths"
	"github.com/nimata/nimata/pkg/project"
)

// envPrefix selects the environment variables that participate in the
// cascade, e.g. NIMATA_QUALITYLEVEL=strict.
const envPrefix = "NIMATA_"

// envKeyAliases restores the camelCase spelling that environment
// variable names cannot carry.
var envKeyAliases = map[string]string{
	"qualitylevel": "qualityLevel",
	"aiassistants": "aiAssistants",
}

// Repository loads and persists configuration for one project at a
// time. It holds a single-slot cache keyed by the project root: loading
// a second root evicts the first. That suits nimata's one-project-per-
// invocation usage; the repository is not safe for concurrent use.
type Repository struct {
	logger     zerolog.Logger
	globalPath string
	home       string

	cacheRoot string
	cached    *Config
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithGlobalPath pins the global configuration file location,
// bypassing HOME resolution.
func WithGlobalPath(path string) RepositoryOption {
	return func(r *Repository) {
		r.globalPath = path
	}
}

// WithHome resolves the global configuration under the given directory
// instead of the user's home.
func WithHome(dir string) RepositoryOption {
	return func(r *Repository) {
		r.home = dir
	}
}

// NewRepository creates an empty, uncached Repository.
func NewRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{logger: logging.GetLogger("config")}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the effective configuration for projectRoot, which
// defaults to the current working directory when empty. The cascade is
// defaults, then the global file, then the project file, then
// NIMATA_-prefixed environment variables. Any file failing validation
// fails the whole load.
func (r *Repository) Load(projectRoot string) (*Config, error) {
	p, err := paths.New(projectRoot)
	if err != nil {
		return nil, err
	}
	root := p.ProjectRoot()

	if r.cacheRoot == root && r.cached != nil {
		r.logger.Trace().Str("root", root).Msg("configuration cache hit")
		return r.cached, nil
	}

	merged := DefaultMap()

	globalPath := r.resolveGlobalPath(p)
	if m, err := loadConfigFile(globalPath); err != nil {
		return nil, err
	} else if m != nil {
		r.logger.Debug().Str("path", globalPath).Msg("merged global configuration")
		merged = Merge(merged, m)
	}

	projectPath := p.ProjectConfigPath()
	if m, err := loadConfigFile(projectPath); err != nil {
		return nil, err
	} else if m != nil {
		r.logger.Debug().Str("path", projectPath).Msg("merged project configuration")
		merged = Merge(merged, m)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(merged, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to assemble configuration")
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKeyTransform), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply environment overrides")
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.cacheRoot = root
	r.cached = cfg
	r.logger.Debug().Str("root", root).Str("qualityLevel", cfg.QualityLevel.String()).Msg("configuration loaded")
	return cfg, nil
}

// Save validates cfg, writes it to <projectRoot>/.nimatarc and updates
// the cache in place so a following Load skips the re-read. The project
// root directory must already exist.
func (r *Repository) Save(cfg *Config, projectRoot string) error {
	if cfg == nil {
		return errors.New(errors.ErrInvalidInput, "cannot save a nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := paths.New(projectRoot)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to serialize configuration")
	}

	target := p.ProjectConfigPath()
	if err := os.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write %s", target)
	}

	r.cacheRoot = p.ProjectRoot()
	r.cached = cfg
	r.logger.Debug().Str("path", target).Msg("configuration saved")
	return nil
}

// ClearCache drops the cached configuration; the next Load re-reads
// from disk.
func (r *Repository) ClearCache() {
	r.cacheRoot = ""
	r.cached = nil
}

// GlobalPath returns the global configuration file location the
// repository would consult for the given project root.
func (r *Repository) GlobalPath(projectRoot string) (string, error) {
	p, err := paths.New(projectRoot)
	if err != nil {
		return "", err
	}
	return r.resolveGlobalPath(p), nil
}

func (r *Repository) resolveGlobalPath(p paths.Paths) string {
	switch {
	case r.globalPath != "":
		return r.globalPath
	case r.home != "":
		return filepath.Join(r.home, paths.NimataDirName, paths.GlobalConfigFile)
	default:
		return p.GlobalConfigPath()
	}
}

// FromMap decodes a plain mapping into a typed Config, applying the
// same decode hooks as Load.
func FromMap(m map[string]any) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load configuration map")
	}
	return decode(k)
}

// decode unmarshals the assembled koanf tree into a Config. Quality
// levels arrive as strings and are parsed through the closed enum;
// comma-separated assistant lists from environment variables are split.
func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToQualityLevelHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "configuration failed validation")
	}
	return &cfg, nil
}

func stringToQualityLevelHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(project.QualityLevel(0)) {
			return data, nil
		}
		return project.ParseQualityLevel(data.(string))
	}
}

// envKeyTransform maps NIMATA_TOOLS_ESLINT_ENABLED to
// tools.eslint.enabled, restoring camelCase for the keys that need it.
// Variables outside the configuration schema (such as
// NIMATA_CONFIG_DIR) are dropped.
func envKeyTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.Split(s, "_")
	for i, part := range parts {
		if alias, ok := envKeyAliases[part]; ok {
			parts[i] = alias
		}
	}
	switch parts[0] {
	case "version", "qualityLevel", "aiAssistants", "tools":
		return strings.Join(parts, ".")
	default:
		return ""
	}
}
