package template_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nimata/nimata/pkg/template"
)

func TestRenderVariables(t *testing.T) {
	ctx := template.Context{
		"name": "widget",
		"project": map[string]any{
			"name":        "my-app",
			"description": "does things",
			"meta": map[string]any{
				"stars": 42,
			},
		},
		"enabled": true,
		"ratio":   0.5,
		"count":   3,
		"nothing": nil,
		"tags":    []any{"go", "cli"},
		"owner":   map[string]any{"name": "sam"},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "simple variable",
			template: "hello {{name}}",
			want:     "hello widget",
		},
		{
			name:     "dotted path",
			template: "{{project.name}}: {{project.description}}",
			want:     "my-app: does things",
		},
		{
			name:     "deeply nested path",
			template: "{{project.meta.stars}} stars",
			want:     "42 stars",
		},
		{
			name:     "missing variable renders empty",
			template: "[{{missing}}]",
			want:     "[]",
		},
		{
			name:     "missing intermediate key renders empty",
			template: "[{{project.owner.email}}]",
			want:     "[]",
		},
		{
			name:     "null renders empty",
			template: "[{{nothing}}]",
			want:     "[]",
		},
		{
			name:     "boolean renders as text",
			template: "{{enabled}}",
			want:     "true",
		},
		{
			name:     "float renders minimal form",
			template: "{{ratio}}",
			want:     "0.5",
		},
		{
			name:     "integer renders as text",
			template: "{{count}}",
			want:     "3",
		},
		{
			name:     "list joins with commas",
			template: "{{tags}}",
			want:     "go,cli",
		},
		{
			name:     "mapping renders as json",
			template: "{{owner}}",
			want:     `{"name":"sam"}`,
		},
		{
			name:     "whitespace inside braces is tolerated",
			template: "{{ name }}",
			want:     "widget",
		},
		{
			name:     "string length segment",
			template: "{{name.length}}",
			want:     "6",
		},
		{
			name:     "list length segment",
			template: "{{tags.length}}",
			want:     "2",
		},
		{
			name:     "no placeholders passes through",
			template: "plain text only",
			want:     "plain text only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.template, ctx))
		})
	}
}

func TestRenderConditionals(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ctx      template.Context
		want     string
	}{
		{
			name:     "truthy renders body",
			template: "{{#if active}}on{{/if}}",
			ctx:      template.Context{"active": true},
			want:     "on",
		},
		{
			name:     "falsy skips body",
			template: "{{#if active}}on{{/if}}",
			ctx:      template.Context{"active": false},
			want:     "",
		},
		{
			name:     "missing path is falsy",
			template: "{{#if ghost}}on{{/if}}",
			ctx:      template.Context{},
			want:     "",
		},
		{
			name:     "else branch",
			template: "{{#if active}}on{{else}}off{{/if}}",
			ctx:      template.Context{"active": false},
			want:     "off",
		},
		{
			name:     "empty string is falsy",
			template: "{{#if name}}yes{{else}}no{{/if}}",
			ctx:      template.Context{"name": ""},
			want:     "no",
		},
		{
			name:     "zero is falsy",
			template: "{{#if count}}yes{{else}}no{{/if}}",
			ctx:      template.Context{"count": 0},
			want:     "no",
		},
		{
			name:     "nonzero is truthy",
			template: "{{#if count}}yes{{/if}}",
			ctx:      template.Context{"count": 7},
			want:     "yes",
		},
		{
			name:     "empty list is truthy by bare existence",
			template: "{{#if items}}yes{{else}}no{{/if}}",
			ctx:      template.Context{"items": []any{}},
			want:     "yes",
		},
		{
			name:     "empty list length is falsy",
			template: "{{#if items.length}}yes{{else}}no{{/if}}",
			ctx:      template.Context{"items": []any{}},
			want:     "no",
		},
		{
			name:     "empty mapping is truthy by bare existence",
			template: "{{#if opts}}yes{{else}}no{{/if}}",
			ctx:      template.Context{"opts": map[string]any{}},
			want:     "yes",
		},
		{
			name:     "unless inverts",
			template: "{{#unless active}}off{{/unless}}",
			ctx:      template.Context{"active": false},
			want:     "off",
		},
		{
			name:     "unless with truthy renders nothing",
			template: "{{#unless active}}off{{/unless}}",
			ctx:      template.Context{"active": true},
			want:     "",
		},
		{
			name:     "nested conditionals",
			template: "{{#if a}}{{#if b}}both{{else}}only a{{/if}}{{/if}}",
			ctx:      template.Context{"a": true, "b": false},
			want:     "only a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.template, tt.ctx))
		})
	}
}

func TestRenderIteration(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ctx      template.Context
		want     string
	}{
		{
			name:     "list binds this in order",
			template: "{{#each items}}{{this}};{{/each}}",
			ctx:      template.Context{"items": []any{"a", "b", "c"}},
			want:     "a;b;c;",
		},
		{
			name:     "this field access",
			template: "{{#each users}}{{this.name}} {{/each}}",
			ctx: template.Context{"users": []any{
				map[string]any{"name": "ann"},
				map[string]any{"name": "bob"},
			}},
			want: "ann bob ",
		},
		{
			name:     "at index and first",
			template: "{{#each items}}{{@index}}{{#if @first}}!{{/if}}{{/each}}",
			ctx:      template.Context{"items": []any{"x", "y"}},
			want:     "0!1",
		},
		{
			name:     "unless last as separator",
			template: "{{#each items}}{{this}}{{#unless @last}}, {{/unless}}{{/each}}",
			ctx:      template.Context{"items": []any{"a", "b", "c"}},
			want:     "a, b, c",
		},
		{
			name:     "mapping binds key and value in key order",
			template: "{{#each tools}}{{@key}}={{this}};{{/each}}",
			ctx: template.Context{"tools": map[string]any{
				"prettier": "on",
				"eslint":   "off",
			}},
			want: "eslint=off;prettier=on;",
		},
		{
			name:     "nested each and if renders matching elements only",
			template: "{{#each items}}{{#if this.active}}{{this.name}}{{/if}}{{/each}}",
			ctx: template.Context{"items": []any{
				map[string]any{"name": "a", "active": true},
				map[string]any{"name": "b", "active": false},
			}},
			want: "a",
		},
		{
			name:     "each over non-iterable renders empty",
			template: "[{{#each count}}x{{/each}}]",
			ctx:      template.Context{"count": 5},
			want:     "[]",
		},
		{
			name:     "each over missing renders empty",
			template: "[{{#each ghost}}x{{/each}}]",
			ctx:      template.Context{},
			want:     "[]",
		},
		{
			name:     "root variables resolve inside loops",
			template: "{{#each items}}{{prefix}}{{this}} {{/each}}",
			ctx:      template.Context{"items": []any{"a", "b"}, "prefix": "v-"},
			want:     "v-a v-b ",
		},
		{
			name:     "nested loops bind innermost this",
			template: "{{#each rows}}{{#each this.cells}}{{this}},{{/each}};{{/each}}",
			ctx: template.Context{"rows": []any{
				map[string]any{"cells": []any{"1", "2"}},
				map[string]any{"cells": []any{"3"}},
			}},
			want: "1,2,;3,;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.template, tt.ctx))
		})
	}
}

func TestRenderMalformedStructure(t *testing.T) {
	tests := []struct {
		name     string
		template string
		ctx      template.Context
		want     string
	}{
		{
			name:     "unclosed if degrades to literal open tag",
			template: "{{#if x}}hello",
			ctx:      template.Context{"x": true},
			want:     "{{#if x}}hello",
		},
		{
			name:     "stray closer stays literal",
			template: "a{{/if}}b",
			ctx:      template.Context{},
			want:     "a{{/if}}b",
		},
		{
			name:     "stray else stays literal",
			template: "a{{else}}b",
			ctx:      template.Context{},
			want:     "a{{else}}b",
		},
		{
			name:     "unterminated placeholder stays literal",
			template: "x{{name",
			ctx:      template.Context{"name": "v"},
			want:     "x{{name",
		},
		{
			name:     "mismatched closer inside block stays literal",
			template: "{{#if x}}a{{/each}}b{{/if}}",
			ctx:      template.Context{"x": true},
			want:     "a{{/each}}b",
		},
		{
			name:     "variables after unclosed block still render",
			template: "{{#if x}}{{name}}",
			ctx:      template.Context{"x": true, "name": "v"},
			want:     "{{#if x}}v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, template.Render(tt.template, tt.ctx))
		})
	}
}

func TestRenderIdempotence(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := template.New(template.WithClock(func() time.Time { return fixed }))

	ctx := template.Context{
		"project": map[string]any{"name": "my-app"},
		"items":   []any{"a", "b"},
	}
	tmpl := "{{helper:year}} {{project.name}} {{#each items}}{{this}}{{/each}}"

	first := r.Render(tmpl, ctx)
	second := r.Render(tmpl, ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, "2024 my-app ab", first)
}
