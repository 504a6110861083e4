package template

import (
	"fmt"
	"strings"
)

// Variable types usable in a VariableDefinition.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// VariableDefinition declares the expected shape of one template
// variable, used by Substitute to cross-check runtime values.
type VariableDefinition struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// SubstitutionResult is the output of a substitution pass: the content
// with plain references replaced, and the diagnostics collected while
// doing so.
type SubstitutionResult struct {
	Content    string           `json:"content"`
	Validation ValidationResult `json:"validation"`
}

// Substitute replaces plain {{path}} references in template with values
// from ctx, leaving block constructs, helper calls and loop-scoped
// references ({{this}}, {{@key}} and friends) untouched so a block-aware
// render pass can run afterwards.
//
// Missing variables substitute as empty strings and produce warnings.
// When defs are supplied, each substituted variable's runtime value is
// checked against its declared type; mismatches warn but the value is
// still substituted. Only a structural problem (an unterminated
// placeholder) makes the result invalid.
func (r *Renderer) Substitute(template string, ctx Context, defs []VariableDefinition) SubstitutionResult {
	result := SubstitutionResult{Validation: ValidationResult{Valid: true}}

	tokens, unterminated := tokenize(template)
	if unterminated {
		result.Validation.addError("Unterminated '{{' placeholder")
	}

	defByName := make(map[string]VariableDefinition, len(defs))
	for _, def := range defs {
		defByName[def.Name] = def
	}

	var out strings.Builder
	for _, tok := range tokens {
		if tok.kind != tokenVariable || isBlockScopedRef(tok.arg) {
			out.WriteString(tok.raw)
			continue
		}

		value, ok := lookupPath(ctx, strings.Split(tok.arg, "."))
		if !ok {
			if def, has := defByName[tok.arg]; has && def.Required {
				result.Validation.addWarning(fmt.Sprintf("Required variable '%s' is missing", tok.arg))
			} else {
				result.Validation.addWarning(fmt.Sprintf("Variable '%s' not found in context", tok.arg))
			}
			r.logger.Trace().Str("path", tok.arg).Msg("substituting empty for missing variable")
			continue
		}

		if def, has := defByName[tok.arg]; has && def.Type != "" {
			if actual := valueType(value); actual != def.Type {
				result.Validation.addWarning(fmt.Sprintf(
					"Variable '%s' expected type '%s' but got '%s'", tok.arg, def.Type, actual))
			}
		}

		out.WriteString(stringify(value))
	}

	result.Content = out.String()
	return result
}

// Substitute runs a substitution pass with a default Renderer.
func Substitute(template string, ctx Context, defs []VariableDefinition) SubstitutionResult {
	return New().Substitute(template, ctx, defs)
}

// isBlockScopedRef reports whether a variable reference only has meaning
// inside an iteration block and must survive the substitution pass.
func isBlockScopedRef(path string) bool {
	return path == "this" || strings.HasPrefix(path, "this.") || strings.HasPrefix(path, "@")
}

// valueType names the runtime type of a context value using the
// definition vocabulary.
func valueType(value any) string {
	switch value.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return TypeNumber
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	default:
		return "unknown"
	}
}
