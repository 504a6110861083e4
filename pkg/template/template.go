// Package template implements nimata's text templating engine.
//
// Templates are plain strings containing placeholder constructs:
//
//   - variable references: {{project.name}}
//   - helper calls: {{helper:capitalize project.name}}
//   - conditionals: {{#if path}}...{{else}}...{{/if}} and
//     {{#unless path}}...{{/unless}}
//   - iteration: {{#each collection}}...{{/each}} with {{this}},
//     {{this.field}}, {{@key}}, {{@index}}, {{@first}} and {{@last}}
//     bound inside the body
//
// Rendering is deliberately lenient: unresolved variables become empty
// strings, unknown helpers render as empty strings, and malformed block
// structure degrades to literal text instead of failing. Structural
// problems are surfaced separately by Validate, which shares the same
// tokenizer as the renderer so the two can never disagree about what a
// construct is.
package template

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nimata/nimata/pkg/logging"
)

// Context is the data a template is rendered against. Values may be
// strings, booleans, numbers, nil, []any or nested map[string]any.
type Context = map[string]any

// ValidationResult reports the outcome of validating or substituting a
// template. Errors make the result invalid; warnings do not.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *ValidationResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

func (r *ValidationResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Renderer renders templates against contexts. The zero value is not
// usable; construct with New.
type Renderer struct {
	clock   func() time.Time
	helpers map[string]HelperFunc
	logger  zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock injects the time source used by time-dependent helpers such
// as year. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.clock = now
	}
}

// WithHelper registers an additional helper, overriding a builtin of the
// same name.
func WithHelper(name string, fn HelperFunc) Option {
	return func(r *Renderer) {
		r.helpers[name] = fn
	}
}

// New creates a Renderer with the builtin helper registry.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		clock:  time.Now,
		logger: logging.GetLogger("template"),
	}
	r.helpers = builtinHelpers(func() time.Time { return r.clock() })
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders template against ctx using a default Renderer.
func Render(template string, ctx Context) string {
	return New().Render(template, ctx)
}

// Validate checks template for structural validity using a default
// Renderer.
func Validate(template string) ValidationResult {
	return New().Validate(template)
}
