package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/config"
	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/logging"
	"github.com/nimata/nimata/pkg/paths"
	"github.com/nimata/nimata/pkg/ui"
)

func newConfigCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "config",
	}
	cmd.PersistentFlags().StringVar(&root, "root", "", MsgFlagRoot)

	cmd.AddCommand(newConfigShowCmd(&root))
	cmd.AddCommand(newConfigGetCmd(&root))
	cmd.AddCommand(newConfigSetCmd(&root))
	cmd.AddCommand(newConfigPathCmd(&root))
	cmd.AddCommand(newConfigInitCmd(&root))

	return cmd
}

func newConfigShowCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: MsgShowShort,
		Long:  MsgShowLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.NewRepository().Load(*root)
			if err != nil {
				return err
			}

			values := cfg.ToMap()
			out := cmd.OutOrStdout()
			if format == ui.FormatJSON {
				return printJSON(out, values)
			}
			fmt.Fprint(out, newRenderer(format).RenderConfig(values))
			return nil
		},
	}
}

func newConfigGetCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: MsgGetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.NewRepository().Load(*root)
			if err != nil {
				return err
			}

			value, ok := lookupConfigKey(cfg.ToMap(), args[0])
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownKey, args[0])
			}

			out := cmd.OutOrStdout()
			if format == ui.FormatJSON {
				return printJSON(out, value)
			}

			data, err := yaml.Marshal(value)
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to render value for %s", args[0])
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigSetCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   MsgSetShort,
		Long:    MsgSetLong,
		Example: MsgSetExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.config")

			repo := config.NewRepository()
			cfg, err := repo.Load(*root)
			if err != nil {
				return err
			}

			values := cfg.ToMap()
			setContextPath(values, strings.Split(args[0], "."), parseScalar(args[1]))

			updated, err := config.FromMap(values)
			if err != nil {
				return err
			}
			// Keys outside the schema are dropped by the decode; catching
			// that here beats silently writing a file without the change.
			if _, ok := lookupConfigKey(updated.ToMap(), args[0]); !ok {
				return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownKey, args[0])
			}

			if err := repo.Save(updated, *root); err != nil {
				return err
			}

			p, err := paths.New(*root)
			if err != nil {
				return err
			}
			logger.Info().Str("key", args[0]).Str("value", args[1]).Msg("Configuration updated")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigSet, args[0], args[1], p.ProjectConfigPath())
			return nil
		},
	}
}

func newConfigPathCmd(root *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: MsgPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			globalPath, err := config.NewRepository().GlobalPath(*root)
			if err != nil {
				return err
			}
			p, err := paths.New(*root)
			if err != nil {
				return err
			}
			projectPath := p.ProjectConfigPath()

			out := cmd.OutOrStdout()
			if format == ui.FormatJSON {
				type location struct {
					Path   string `json:"path"`
					Exists bool   `json:"exists"`
				}
				return printJSON(out, map[string]location{
					"global":  {globalPath, fileExists(globalPath)},
					"project": {projectPath, fileExists(projectPath)},
				})
			}

			fmt.Fprintf(out, MsgGlobalPathLine, globalPath, missingMarker(globalPath))
			fmt.Fprintf(out, MsgProjectPathLine, projectPath, missingMarker(projectPath))
			return nil
		},
	}
}

func newConfigInitCmd(root *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(*root)
			if err != nil {
				return err
			}

			target := p.ProjectConfigPath()
			if fileExists(target) && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgErrOutputExists, target)
			}

			if err := config.NewRepository().Save(config.Default(), *root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

// lookupConfigKey walks a dot-separated key through nested maps.
func lookupConfigKey(values map[string]any, key string) (any, bool) {
	var cur any = values
	for _, seg := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func missingMarker(path string) string {
	if fileExists(path) {
		return ""
	}
	return MsgPathMissing
}
