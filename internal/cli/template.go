package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/logging"
	"github.com/nimata/nimata/pkg/style"
	"github.com/nimata/nimata/pkg/template"
	"github.com/nimata/nimata/pkg/ui"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   MsgTemplateShort,
		GroupID: "template",
	}

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSubstCmd())

	return cmd
}

// fileReport pairs a validation result with the file it belongs to,
// the shape the JSON output emits per template.
type fileReport struct {
	Path string `json:"path"`
	template.ValidationResult
}

func newRenderCmd() *cobra.Command {
	var (
		contextPath string
		vars        []string
		outPath     string
		force       bool
	)

	cmd := &cobra.Command{
		Use:     "render <file>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.render")

			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadTemplate, args[0])
			}

			ctx, err := buildRenderContext(contextPath, vars)
			if err != nil {
				return err
			}

			logger.Info().
				Str("template", args[0]).
				Str("context", contextPath).
				Int("overrides", len(vars)).
				Msg("Rendering template")

			validation := template.Validate(string(content))
			report := style.Report{
				Path:     args[0],
				Valid:    validation.Valid,
				Errors:   validation.Errors,
				Warnings: validation.Warnings,
			}
			if format != ui.FormatJSON {
				printIssues(cmd.ErrOrStderr(), report)
			}
			if !validation.Valid && !force {
				return errors.Newf(errors.ErrTemplateInvalid, MsgErrInvalid, args[0])
			}

			rendered := template.Render(string(content), ctx)

			if outPath != "" {
				if _, err := os.Stat(outPath); err == nil && !force {
					return errors.Newf(errors.ErrInvalidInput, MsgErrOutputExists, outPath)
				}
				if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, MsgErrWriteOutput, outPath)
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case format == ui.FormatJSON:
				return printJSON(out, struct {
					Content    string                    `json:"content"`
					Validation template.ValidationResult `json:"validation"`
				}{rendered, validation})
			case outPath != "":
				fmt.Fprintf(out, MsgRenderedTo, args[0], outPath)
			default:
				fmt.Fprint(out, rendered)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", MsgFlagContext)
	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVar(&outPath, "out", "", MsgFlagOut)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <file>...",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		Example: MsgValidateExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.validate")

			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			reports := make([]style.Report, 0, len(args))
			fileReports := make([]fileReport, 0, len(args))
			invalid := 0

			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadTemplate, path)
				}

				result := template.Validate(string(content))
				if !result.Valid {
					invalid++
				}

				reports = append(reports, style.Report{
					Path:     path,
					Valid:    result.Valid,
					Errors:   result.Errors,
					Warnings: result.Warnings,
				})
				fileReports = append(fileReports, fileReport{Path: path, ValidationResult: result})
			}

			logger.Info().Int("templates", len(args)).Int("invalid", invalid).Msg("Validation finished")

			out := cmd.OutOrStdout()
			if format == ui.FormatJSON {
				if err := printJSON(out, fileReports); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, newRenderer(format).RenderReports(reports))
			}

			if invalid > 0 {
				return errors.Newf(errors.ErrTemplateInvalid, "%d of %d templates invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func newSubstCmd() *cobra.Command {
	var (
		contextPath string
		vars        []string
		varsPath    string
	)

	cmd := &cobra.Command{
		Use:     "subst <file>",
		Short:   MsgSubstShort,
		Long:    MsgSubstLong,
		Example: MsgSubstExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.subst")

			format, err := resolveFormat(cmd)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadTemplate, args[0])
			}

			ctx, err := buildRenderContext(contextPath, vars)
			if err != nil {
				return err
			}

			var defs []template.VariableDefinition
			if varsPath != "" {
				if defs, err = loadVariableDefs(varsPath); err != nil {
					return err
				}
			}

			logger.Info().
				Str("template", args[0]).
				Int("definitions", len(defs)).
				Msg("Substituting variables")

			result := template.Substitute(string(content), ctx, defs)

			out := cmd.OutOrStdout()
			if format == ui.FormatJSON {
				return printJSON(out, result)
			}

			printIssues(cmd.ErrOrStderr(), style.Report{
				Path:     args[0],
				Valid:    result.Validation.Valid,
				Errors:   result.Validation.Errors,
				Warnings: result.Validation.Warnings,
			})
			fmt.Fprint(out, result.Content)

			if !result.Validation.Valid {
				return errors.Newf(errors.ErrTemplateInvalid, MsgErrInvalid, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextPath, "context", "", MsgFlagContext)
	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringVar(&varsPath, "vars", "", MsgFlagVars)

	return cmd
}

// buildRenderContext assembles the template context: the context file
// first, then --var overrides on top.
func buildRenderContext(contextPath string, vars []string) (template.Context, error) {
	ctx := template.Context{}

	if contextPath != "" {
		data, err := os.ReadFile(contextPath)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadContext, contextPath)
		}
		if err := yaml.Unmarshal(data, &ctx); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrParseContext, contextPath)
		}
	}

	for _, kv := range vars {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadVarFlag, kv)
		}
		setContextPath(ctx, strings.Split(key, "."), parseScalar(raw))
	}

	return ctx, nil
}

// setContextPath writes value at a dot-separated path, creating
// intermediate maps and replacing non-map intermediates.
func setContextPath(ctx map[string]any, path []string, value any) {
	cur := ctx
	for _, seg := range path[:len(path)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}

// parseScalar interprets a flag value as YAML so booleans and numbers
// come through typed; anything unparseable stays a string.
func parseScalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

// loadVariableDefs reads a YAML list of variable declarations.
func loadVariableDefs(path string) ([]template.VariableDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, MsgErrReadVars, path)
	}

	var defs []template.VariableDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, MsgErrParseVars, path)
	}
	return defs, nil
}
