package template

import "fmt"

// Validate checks the structural validity of a template: every opened
// {{#if}}, {{#unless}} and {{#each}} block must have a matching closer.
// It does not evaluate variable references. Validate and Render share
// one tokenizer, so they always agree on what counts as a construct.
func (r *Renderer) Validate(template string) ValidationResult {
	result := ValidationResult{Valid: true}

	tokens, unterminated := tokenize(template)
	if unterminated {
		result.addWarning("Unterminated '{{' placeholder")
	}

	var ifOpen, ifClosed, unlessOpen, unlessClosed, eachOpen, eachClosed int
	for _, tok := range tokens {
		switch tok.kind {
		case tokenIfOpen:
			ifOpen++
		case tokenIfClose:
			ifClosed++
		case tokenUnlessOpen:
			unlessOpen++
		case tokenUnlessClose:
			unlessClosed++
		case tokenEachOpen:
			eachOpen++
		case tokenEachClose:
			eachClosed++
		}
	}

	if ifOpen != ifClosed {
		result.addError(fmt.Sprintf("Unclosed {{#if}} blocks: %d open, %d closed", ifOpen, ifClosed))
	}
	if unlessOpen != unlessClosed {
		result.addError(fmt.Sprintf("Unclosed {{#unless}} blocks: %d open, %d closed", unlessOpen, unlessClosed))
	}
	if eachOpen != eachClosed {
		result.addError(fmt.Sprintf("Unclosed {{#each}} blocks: %d open, %d closed", eachOpen, eachClosed))
	}

	return result
}
