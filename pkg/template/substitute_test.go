package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimata/nimata/pkg/template"
)

func TestSubstitutePlainReferences(t *testing.T) {
	ctx := template.Context{
		"name": "my-app",
		"project": map[string]any{
			"version": 2,
		},
		"enabled": false,
		"tags":    []any{"a", "b"},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "simple substitution",
			template: "name: {{name}}",
			want:     "name: my-app",
		},
		{
			name:     "dotted path substitution",
			template: "v{{project.version}}",
			want:     "v2",
		},
		{
			name:     "boolean stringified",
			template: "enabled={{enabled}}",
			want:     "enabled=false",
		},
		{
			name:     "array stringified",
			template: "tags={{tags}}",
			want:     "tags=a,b",
		},
		{
			name:     "missing variable becomes empty",
			template: "[{{ghost}}]",
			want:     "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := template.Substitute(tt.template, ctx, nil)
			assert.Equal(t, tt.want, result.Content)
			assert.True(t, result.Validation.Valid)
		})
	}
}

func TestSubstituteLeavesBlockSyntaxUntouched(t *testing.T) {
	ctx := template.Context{"name": "my-app", "active": true}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "if block untouched",
			template: "{{#if active}}{{name}}{{/if}}",
			want:     "{{#if active}}my-app{{/if}}",
		},
		{
			name:     "each block untouched",
			template: "{{#each items}}{{this}}{{/each}}",
			want:     "{{#each items}}{{this}}{{/each}}",
		},
		{
			name:     "else untouched",
			template: "{{#if active}}a{{else}}b{{/if}}",
			want:     "{{#if active}}a{{else}}b{{/if}}",
		},
		{
			name:     "this field reference untouched",
			template: "{{this.name}}",
			want:     "{{this.name}}",
		},
		{
			name:     "at specials untouched",
			template: "{{@key}}: {{@last}}",
			want:     "{{@key}}: {{@last}}",
		},
		{
			name:     "helper calls untouched",
			template: "{{helper:capitalize name}}",
			want:     "{{helper:capitalize name}}",
		},
		{
			name:     "unless untouched",
			template: "{{#unless @last}}, {{/unless}}",
			want:     "{{#unless @last}}, {{/unless}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := template.Substitute(tt.template, ctx, nil)
			assert.Equal(t, tt.want, result.Content)
			assert.True(t, result.Validation.Valid)
		})
	}
}

func TestSubstituteWarnings(t *testing.T) {
	defs := []template.VariableDefinition{
		{Name: "name", Type: template.TypeString, Required: true},
		{Name: "count", Type: template.TypeNumber},
		{Name: "flags", Type: template.TypeArray},
	}

	t.Run("missing variable warns and stays valid", func(t *testing.T) {
		result := template.Substitute("{{ghost}}", template.Context{}, defs)

		assert.True(t, result.Validation.Valid)
		require.Len(t, result.Validation.Warnings, 1)
		assert.Contains(t, result.Validation.Warnings[0], "ghost")
		assert.Contains(t, result.Validation.Warnings[0], "not found")
	})

	t.Run("missing required variable warns and stays valid", func(t *testing.T) {
		result := template.Substitute("{{name}}", template.Context{}, defs)

		assert.True(t, result.Validation.Valid)
		require.Len(t, result.Validation.Warnings, 1)
		assert.Contains(t, result.Validation.Warnings[0], "Required variable 'name' is missing")
	})

	t.Run("type mismatch warns and substitutes anyway", func(t *testing.T) {
		ctx := template.Context{"count": "three"}
		result := template.Substitute("n={{count}}", ctx, defs)

		assert.Equal(t, "n=three", result.Content)
		assert.True(t, result.Validation.Valid)
		require.Len(t, result.Validation.Warnings, 1)
		assert.Contains(t, result.Validation.Warnings[0], "expected type 'number' but got 'string'")
	})

	t.Run("matching type produces no warning", func(t *testing.T) {
		ctx := template.Context{
			"name":  "ok",
			"count": 3,
			"flags": []any{"x"},
		}
		result := template.Substitute("{{name}}{{count}}{{flags}}", ctx, defs)

		assert.Equal(t, "ok3x", result.Content)
		assert.True(t, result.Validation.Valid)
		assert.Empty(t, result.Validation.Warnings)
	})

	t.Run("undeclared variables are not type checked", func(t *testing.T) {
		result := template.Substitute("{{other}}", template.Context{"other": 1}, defs)

		assert.Equal(t, "1", result.Content)
		assert.Empty(t, result.Validation.Warnings)
	})
}

func TestSubstituteStructuralError(t *testing.T) {
	result := template.Substitute("ok {{name", template.Context{"name": "v"}, nil)

	assert.False(t, result.Validation.Valid)
	require.Len(t, result.Validation.Errors, 1)
	assert.Contains(t, result.Validation.Errors[0], "Unterminated")
	// Best-effort content still returned with the malformed tail intact.
	assert.Equal(t, "ok {{name", result.Content)
}
