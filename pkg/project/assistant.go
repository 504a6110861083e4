package project

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nimata/nimata/pkg/errors"
)

// AIAssistant identifies an assistant integration whose guidance files a
// scaffolded project carries.
type AIAssistant int

const (
	// AssistantClaude enables Claude guidance files
	AssistantClaude AIAssistant = iota
	// AssistantCopilot enables Copilot instruction files
	AssistantCopilot
)

// AllAssistants returns every known assistant integration.
func AllAssistants() []AIAssistant {
	return []AIAssistant{AssistantClaude, AssistantCopilot}
}

// String returns the configuration-file spelling of the assistant
func (a AIAssistant) String() string {
	switch a {
	case AssistantClaude:
		return "claude"
	case AssistantCopilot:
		return "copilot"
	default:
		return "unknown"
	}
}

// ParseAssistant parses a configuration value into an AIAssistant
func ParseAssistant(s string) (AIAssistant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "claude":
		return AssistantClaude, nil
	case "copilot":
		return AssistantCopilot, nil
	default:
		return AssistantClaude, errors.Newf(errors.ErrAssistant,
			"unknown assistant %q (expected claude or copilot)", s)
	}
}

// ParseAssistants parses a list of assistant names, rejecting the whole
// list on the first unknown name.
func ParseAssistants(names []string) ([]AIAssistant, error) {
	assistants := make([]AIAssistant, 0, len(names))
	for _, name := range names {
		a, err := ParseAssistant(name)
		if err != nil {
			return nil, err
		}
		assistants = append(assistants, a)
	}
	return assistants, nil
}

// MarshalYAML serializes the assistant as its string spelling
func (a AIAssistant) MarshalYAML() (interface{}, error) {
	switch a {
	case AssistantClaude, AssistantCopilot:
		return a.String(), nil
	default:
		return nil, errors.Newf(errors.ErrAssistant, "cannot serialize unknown assistant %d", int(a))
	}
}

// UnmarshalYAML parses the string spelling of an assistant
func (a *AIAssistant) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return errors.Wrap(err, errors.ErrAssistant, "assistant must be a string")
	}
	parsed, err := ParseAssistant(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
