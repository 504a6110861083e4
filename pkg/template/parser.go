package template

// The parser turns a token stream into a node tree. It is intentionally
// forgiving: a stray closer or {{else}} becomes literal text, and a block
// left open at end of input degrades to its opening tag as literal text
// followed by whatever body was parsed. This mirrors what an unmatched
// construct looks like in the rendered output of a valid template's
// surroundings, keeping Render total over malformed input.

type node interface {
	render(st *renderState)
}

// textNode emits its text verbatim.
type textNode struct {
	text string
}

// varNode emits the stringified value at a dotted path, or "".
type varNode struct {
	path string
}

// helperNode emits the result of a helper call, or "" for unknown names.
type helperNode struct {
	name string
	args []string
}

// condNode renders then or els depending on the truthiness of path.
// inverted selects {{#unless}} semantics.
type condNode struct {
	path     string
	inverted bool
	then     []node
	els      []node
}

// eachNode renders body once per element of the collection at path.
type eachNode struct {
	path string
	body []node
}

// seqNode groups nodes produced by degraded (unterminated) blocks.
type seqNode struct {
	nodes []node
}

type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) []node {
	p := &parser{tokens: tokens}
	var nodes []node
	for p.pos < len(p.tokens) {
		nodes = append(nodes, p.parseNode())
	}
	return nodes
}

// parseNode consumes exactly one node starting at the current token.
func (p *parser) parseNode() node {
	tok := p.tokens[p.pos]
	p.pos++

	switch tok.kind {
	case tokenText:
		return &textNode{text: tok.raw}
	case tokenVariable:
		return &varNode{path: tok.arg}
	case tokenHelper:
		name, args := splitHelperSpec(tok.arg)
		return &helperNode{name: name, args: args}
	case tokenIfOpen:
		return p.parseConditional(tok, false)
	case tokenUnlessOpen:
		return p.parseConditional(tok, true)
	case tokenEachOpen:
		return p.parseEach(tok)
	default:
		// Stray {{else}} or closer with no matching open.
		return &textNode{text: tok.raw}
	}
}

func (p *parser) parseConditional(open token, inverted bool) node {
	closeKind := tokenIfClose
	if inverted {
		closeKind = tokenUnlessClose
	}

	var then, els []node
	sawElse := false
	elseRaw := ""

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind == closeKind {
			p.pos++
			return &condNode{path: open.arg, inverted: inverted, then: then, els: els}
		}
		if tok.kind == tokenElse && !sawElse {
			p.pos++
			sawElse = true
			elseRaw = tok.raw
			continue
		}

		child := p.parseNode()
		if sawElse {
			els = append(els, child)
		} else {
			then = append(then, child)
		}
	}

	// Unterminated block: degrade to literal text around the parsed body.
	return degrade(open.raw, then, sawElse, elseRaw, els)
}

func (p *parser) parseEach(open token) node {
	var body []node

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind == tokenEachClose {
			p.pos++
			return &eachNode{path: open.arg, body: body}
		}
		body = append(body, p.parseNode())
	}

	return degrade(open.raw, body, false, "", nil)
}

func degrade(openRaw string, first []node, sawElse bool, elseRaw string, second []node) node {
	nodes := make([]node, 0, len(first)+len(second)+2)
	nodes = append(nodes, &textNode{text: openRaw})
	nodes = append(nodes, first...)
	if sawElse {
		nodes = append(nodes, &textNode{text: elseRaw})
	}
	nodes = append(nodes, second...)
	return &seqNode{nodes: nodes}
}
