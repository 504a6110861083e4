package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Project scaffolding toolkit"
	MsgTemplateShort = "Work with nimata templates"
	MsgRenderShort   = "Render a template against a context"
	MsgValidateShort = "Check templates for structural problems"
	MsgSubstShort    = "Substitute plain variables, reporting diagnostics"
	MsgConfigShort   = "Inspect and edit nimata configuration"
	MsgShowShort     = "Show the effective merged configuration"
	MsgGetShort      = "Print a single configuration value"
	MsgSetShort      = "Set a configuration value in the project file"
	MsgPathShort     = "Show configuration file locations"
	MsgInitShort     = "Write a starter project configuration file"
	MsgVersionShort  = "Print version information"
	MsgTopicsShort   = "Display available documentation topics"
	MsgTopicsLong    = "Display a list of all available help topics that provide additional documentation beyond command help."

	// Status messages
	MsgRenderedTo      = "Rendered %s to %s\n"
	MsgConfigWritten   = "Wrote %s\n"
	MsgConfigSet       = "Set %s = %s in %s\n"
	MsgGlobalPathLine  = "global:  %s%s\n"
	MsgProjectPathLine = "project: %s%s\n"
	MsgPathMissing     = " (not found)"

	// Error messages
	MsgErrReadTemplate = "failed to read template %s"
	MsgErrReadContext  = "failed to read context file %s"
	MsgErrParseContext = "context file %s is not a YAML mapping"
	MsgErrReadVars     = "failed to read variable definitions %s"
	MsgErrParseVars    = "variable definitions %s are not a YAML list"
	MsgErrBadVarFlag   = "invalid --var %q (expected key=value)"
	MsgErrWriteOutput  = "failed to write %s"
	MsgErrOutputExists = "%s already exists (use --force to overwrite)"
	MsgErrInvalid      = "template %s failed validation"
	MsgErrUnknownKey   = "unknown configuration key %q"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format (auto, term, text, json)"
	MsgFlagContext = "YAML file providing the template context"
	MsgFlagVar     = "Context override as key=value (repeatable, dot-separated keys)"
	MsgFlagOut     = "Write rendered output to a file instead of stdout"
	MsgFlagForce   = "Proceed despite validation errors or existing files"
	MsgFlagVars    = "YAML file declaring expected variables (name, type, required)"
	MsgFlagRoot    = "Project root directory (defaults to the current directory)"
)

// Long messages
const (
	MsgRootLong = `nimata renders project templates and manages the configuration that
drives them. Templates use a small Handlebars-flavored syntax; settings
cascade from built-in defaults through a global file, a per-project
file and NIMATA_-prefixed environment variables.

See 'nimata help topics' for syntax and configuration references.`

	MsgRenderLong = `Render reads a template file, builds a context from --context and
--var flags, validates the template and renders it.

Validation warnings are printed to stderr but do not stop the render.
Validation errors do, unless --force is given; rendering itself never
fails, so --force always produces output.`

	MsgRenderExample = `  # Render to stdout with context from a file
  nimata template render README.md.hbs --context project.yaml

  # Override single values
  nimata template render README.md.hbs --var project.name=widget

  # Write to a file
  nimata template render README.md.hbs --context project.yaml --out README.md`

	MsgValidateLong = `Validate checks each template for structural problems: every opened
{{#if}}, {{#unless}} and {{#each}} block needs its closing tag.
Unterminated {{ placeholders are reported as warnings.

The exit code is 1 if any template is invalid.`

	MsgValidateExample = `  # Validate one template
  nimata template validate README.md.hbs

  # Validate many, as JSON
  nimata template validate templates/*.hbs --format json`

	MsgSubstLong = `Subst runs only the variable substitution pass: plain {{path}}
references are replaced from the context while block constructs,
helper calls and loop-scoped references pass through untouched.

Missing variables substitute as empty strings and produce warnings.
With --vars, substituted values are also checked against the declared
variable types.`

	MsgSubstExample = `  # Substitute with warnings reported
  nimata template subst snippet.txt --context project.yaml

  # Check values against declared types
  nimata template subst snippet.txt --context project.yaml --vars vars.yaml`

	MsgShowLong = `Show prints the effective configuration after merging defaults, the
global file, the project file and environment overrides.`

	MsgSetLong = `Set updates one key in the project configuration file (.nimatarc),
creating the file if needed. The value is parsed as YAML, so plain
scalars, booleans and numbers all work; lists use YAML flow syntax.`

	MsgSetExample = `  # Change the quality level
  nimata config set qualityLevel strict

  # Disable a tool
  nimata config set tools.eslint.enabled false

  # Replace the assistant list
  nimata config set aiAssistants '[claude, copilot]'`

	MsgInitLong = `Init writes a starter .nimatarc containing the built-in defaults to
the current project, ready to edit. Existing files are preserved
unless --force is given.`
)
