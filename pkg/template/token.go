package template

import "strings"

// tokenKind identifies one construct family recognized by the tokenizer.
type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVariable
	tokenHelper
	tokenIfOpen
	tokenUnlessOpen
	tokenEachOpen
	tokenElse
	tokenIfClose
	tokenUnlessClose
	tokenEachClose
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// token is one lexed unit of a template. raw always holds the exact
// source text of the token so malformed structure can degrade to literal
// output byte-for-byte.
type token struct {
	kind tokenKind
	raw  string
	// arg holds the path for variables and block opens, or the
	// "name arg..." spec for helper calls.
	arg string
}

// tokenize splits a template into text and construct tokens. It never
// fails: an opening delimiter without a matching close is returned as
// literal text, and the second result reports that it happened.
func tokenize(input string) ([]token, bool) {
	var tokens []token
	unterminated := false

	for len(input) > 0 {
		start := strings.Index(input, openDelim)
		if start < 0 {
			tokens = append(tokens, token{kind: tokenText, raw: input})
			break
		}
		if start > 0 {
			tokens = append(tokens, token{kind: tokenText, raw: input[:start]})
			input = input[start:]
		}

		end := strings.Index(input[len(openDelim):], closeDelim)
		if end < 0 {
			// No closing delimiter; the rest is literal text.
			tokens = append(tokens, token{kind: tokenText, raw: input})
			unterminated = true
			break
		}
		end += len(openDelim)

		raw := input[:end+len(closeDelim)]
		inner := strings.TrimSpace(input[len(openDelim):end])
		tokens = append(tokens, classify(raw, inner))
		input = input[end+len(closeDelim):]
	}

	return tokens, unterminated
}

// classify maps the trimmed content of one {{...}} construct to a token.
// Anything that is not a recognized block directive or helper call is a
// plain variable reference.
func classify(raw, inner string) token {
	switch {
	case inner == "else":
		return token{kind: tokenElse, raw: raw}
	case inner == "/if":
		return token{kind: tokenIfClose, raw: raw}
	case inner == "/unless":
		return token{kind: tokenUnlessClose, raw: raw}
	case inner == "/each":
		return token{kind: tokenEachClose, raw: raw}
	case isBlockOpen(inner, "#if"):
		return token{kind: tokenIfOpen, raw: raw, arg: blockArg(inner, "#if")}
	case isBlockOpen(inner, "#unless"):
		return token{kind: tokenUnlessOpen, raw: raw, arg: blockArg(inner, "#unless")}
	case isBlockOpen(inner, "#each"):
		return token{kind: tokenEachOpen, raw: raw, arg: blockArg(inner, "#each")}
	case strings.HasPrefix(inner, "helper:"):
		return token{kind: tokenHelper, raw: raw, arg: strings.TrimSpace(strings.TrimPrefix(inner, "helper:"))}
	default:
		return token{kind: tokenVariable, raw: raw, arg: inner}
	}
}

// isBlockOpen reports whether inner is the given directive, either bare
// ("{{#if}}") or followed by an argument ("{{#if path}}").
func isBlockOpen(inner, directive string) bool {
	if inner == directive {
		return true
	}
	return strings.HasPrefix(inner, directive+" ")
}

func blockArg(inner, directive string) string {
	return strings.TrimSpace(strings.TrimPrefix(inner, directive))
}
