package template

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// renderState carries everything a render pass needs: the root context,
// the stack of active iteration scopes, the output buffer and the
// renderer whose helpers and clock are in effect.
type renderState struct {
	r     *Renderer
	root  Context
	loops []loopScope
	out   strings.Builder
}

// loopScope is one active {{#each}} frame. Inside its body, this and the
// @-prefixed specials resolve against it; everything else resolves
// against the root context.
type loopScope struct {
	element any
	key     string
	index   int
	first   bool
	last    bool
	mapping bool
}

// Render renders the template against ctx. It never fails: unresolved
// references become empty strings and malformed block structure renders
// as literal text.
func (r *Renderer) Render(template string, ctx Context) string {
	tokens, _ := tokenize(template)
	nodes := parse(tokens)

	st := &renderState{r: r, root: ctx}
	for _, n := range nodes {
		n.render(st)
	}
	return st.out.String()
}

func (n *textNode) render(st *renderState) {
	st.out.WriteString(n.text)
}

func (n *seqNode) render(st *renderState) {
	for _, child := range n.nodes {
		child.render(st)
	}
}

func (n *varNode) render(st *renderState) {
	value, ok := st.resolve(n.path)
	if !ok {
		st.r.logger.Trace().Str("path", n.path).Msg("variable not found, rendering empty")
		return
	}
	st.out.WriteString(stringify(value))
}

func (n *helperNode) render(st *renderState) {
	fn, ok := st.r.helpers[n.name]
	if !ok {
		st.r.logger.Trace().Str("helper", n.name).Msg("unknown helper, rendering empty")
		return
	}

	args := make([]string, len(n.args))
	for i, arg := range n.args {
		if value, ok := st.resolve(arg); ok {
			args[i] = stringify(value)
		}
	}
	st.out.WriteString(fn(args))
}

func (n *condNode) render(st *renderState) {
	value, _ := st.resolve(n.path)
	truthy := isTruthy(value)
	if n.inverted {
		truthy = !truthy
	}

	branch := n.then
	if !truthy {
		branch = n.els
	}
	for _, child := range branch {
		child.render(st)
	}
}

func (n *eachNode) render(st *renderState) {
	value, ok := st.resolve(n.path)
	if !ok {
		return
	}

	switch coll := value.(type) {
	case []any:
		for i, element := range coll {
			st.pushLoop(loopScope{
				element: element,
				index:   i,
				first:   i == 0,
				last:    i == len(coll)-1,
			})
			for _, child := range n.body {
				child.render(st)
			}
			st.popLoop()
		}
	case map[string]any:
		// Go maps are unordered; iterate in ascending key order so
		// output is deterministic.
		keys := make([]string, 0, len(coll))
		for k := range coll {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			st.pushLoop(loopScope{
				element: coll[k],
				key:     k,
				index:   i,
				first:   i == 0,
				last:    i == len(keys)-1,
				mapping: true,
			})
			for _, child := range n.body {
				child.render(st)
			}
			st.popLoop()
		}
	default:
		// Iterating a non-iterable yields empty output.
	}
}

func (st *renderState) pushLoop(scope loopScope) {
	st.loops = append(st.loops, scope)
}

func (st *renderState) popLoop() {
	st.loops = st.loops[:len(st.loops)-1]
}

func (st *renderState) currentLoop() (loopScope, bool) {
	if len(st.loops) == 0 {
		return loopScope{}, false
	}
	return st.loops[len(st.loops)-1], true
}

// resolve looks up a dotted path. Loop-bound references (this, this.x and
// the @ specials) resolve against the innermost iteration scope; all
// other paths resolve against the root context.
func (st *renderState) resolve(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	if path == "this" || strings.HasPrefix(path, "this.") {
		scope, ok := st.currentLoop()
		if !ok {
			return nil, false
		}
		if path == "this" {
			return scope.element, true
		}
		return lookupPath(scope.element, strings.Split(path[len("this."):], "."))
	}

	if strings.HasPrefix(path, "@") {
		return st.resolveSpecial(path)
	}

	return lookupPath(st.root, strings.Split(path, "."))
}

func (st *renderState) resolveSpecial(name string) (any, bool) {
	scope, ok := st.currentLoop()
	if !ok {
		return nil, false
	}
	switch name {
	case "@key":
		if !scope.mapping {
			return nil, false
		}
		return scope.key, true
	case "@index":
		return scope.index, true
	case "@first":
		return scope.first, true
	case "@last":
		return scope.last, true
	default:
		return nil, false
	}
}

// lookupPath walks segments through nested mappings. The special segment
// "length" yields the element count of a list or string. A missing key
// or a nil anywhere on the way reports not-found.
func lookupPath(value any, segments []string) (any, bool) {
	current := value
	for _, seg := range segments {
		if current == nil {
			return nil, false
		}
		if seg == "length" {
			switch v := current.(type) {
			case []any:
				current = len(v)
				continue
			case string:
				current = len(v)
				continue
			}
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := m[seg]
		if !ok {
			return nil, false
		}
		current = next
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// isTruthy implements conditional truthiness: nil, false, empty string
// and numeric zero are falsy. Containers are truthy even when empty;
// emptiness is tested explicitly via the length path segment.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// stringify converts a context value to its textual form: strings pass
// through, numbers render in minimal decimal form, nil renders empty,
// lists join their stringified elements with commas and mappings render
// as compact JSON.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
