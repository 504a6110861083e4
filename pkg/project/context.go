package project

import (
	"time"

	"github.com/iancoleman/strcase"

	"github.com/nimata/nimata/pkg/errors"
	"github.com/nimata/nimata/pkg/template"
)

// Metadata describes one project for template rendering purposes.
type Metadata struct {
	Name        string
	Description string
	Type        ProjectType
	Quality     QualityLevel
	Assistants  []AIAssistant
}

// Validate checks that the metadata is renderable: a non-empty name and
// known enum values throughout.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return errors.New(errors.ErrInvalidInput, "project name cannot be empty")
	}
	if m.Type.String() == "unknown" {
		return errors.Newf(errors.ErrProjectType, "unknown project type %d", int(m.Type))
	}
	if m.Quality.String() == "unknown" {
		return errors.Newf(errors.ErrQualityLevel, "unknown quality level %d", int(m.Quality))
	}
	for _, a := range m.Assistants {
		if a.String() == "unknown" {
			return errors.Newf(errors.ErrAssistant, "unknown assistant %d", int(a))
		}
	}
	return nil
}

// HasAssistant reports whether the metadata enables the given assistant.
func (m Metadata) HasAssistant(target AIAssistant) bool {
	for _, a := range m.Assistants {
		if a == target {
			return true
		}
	}
	return false
}

// BuildContext derives the template context for a project: the project
// section with case-variant names, the quality flags, the assistant
// toggles and the date fields. The clock is injectable so rendering is
// reproducible in tests.
//
// A fresh context is built on every call; callers may mutate their copy
// (for example to graft in a tools section from the configuration)
// without affecting later renders.
func BuildContext(meta Metadata, now func() time.Time) template.Context {
	if now == nil {
		now = time.Now
	}
	ts := now()

	assistantNames := make([]any, len(meta.Assistants))
	for i, a := range meta.Assistants {
		assistantNames[i] = a.String()
	}

	return template.Context{
		"project": map[string]any{
			"name":        meta.Name,
			"description": meta.Description,
			"type":        meta.Type.String(),
			"nameCamel":   strcase.ToLowerCamel(meta.Name),
			"namePascal":  strcase.ToCamel(meta.Name),
			"nameKebab":   strcase.ToKebab(meta.Name),
			"nameSnake":   strcase.ToSnake(meta.Name),
		},
		"quality": map[string]any{
			"level":    meta.Quality.String(),
			"isLight":  meta.Quality == QualityLight,
			"isMedium": meta.Quality == QualityMedium,
			"isStrict": meta.Quality == QualityStrict,
		},
		"assistants": map[string]any{
			"list":    assistantNames,
			"claude":  meta.HasAssistant(AssistantClaude),
			"copilot": meta.HasAssistant(AssistantCopilot),
		},
		"date": map[string]any{
			"year": ts.Year(),
			"iso":  ts.Format("2006-01-02"),
		},
	}
}
