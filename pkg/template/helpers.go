package template

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// HelperFunc is a pure string transformation invoked by the
// {{helper:name arg...}} construct. Arguments arrive already resolved
// against the context; unresolvable arguments are empty strings.
type HelperFunc func(args []string) string

// builtinHelpers returns the fixed helper registry. The year helper
// closes over the renderer's clock so tests can pin time.
func builtinHelpers(now func() time.Time) map[string]HelperFunc {
	return map[string]HelperFunc{
		"capitalize": firstArg(capitalize),
		"camelCase":  firstArg(strcase.ToLowerCamel),
		"pascalCase": firstArg(strcase.ToCamel),
		"kebabCase":  firstArg(strcase.ToKebab),
		"snakeCase":  firstArg(strcase.ToSnake),
		"upperCase":  firstArg(strings.ToUpper),
		"lowerCase":  firstArg(strings.ToLower),
		"year": func([]string) string {
			return strconv.Itoa(now().Year())
		},
	}
}

// firstArg adapts a single-string transformation to the variadic helper
// shape; extra arguments are ignored.
func firstArg(fn func(string) string) HelperFunc {
	return func(args []string) string {
		if len(args) == 0 {
			return fn("")
		}
		return fn(args[0])
	}
}

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// splitHelperSpec splits "name arg1 arg2" into the helper name and its
// argument paths.
func splitHelperSpec(spec string) (string, []string) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
