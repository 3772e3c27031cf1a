// Package expand substitutes ${name} references in configuration values.
package expand

import (
	"regexp"
)

var re = regexp.MustCompile(`\$\{([a-zA-Z0-9_.-]+)(?::-([^}]*))?\}`)

// Expand replaces every ${name} in v with mapping(name). The form
// ${name:-fallback} yields fallback when mapping returns "".
func Expand(v string, mapping func(string) string) string {
	return re.ReplaceAllStringFunc(v, func(s string) string {
		m := re.FindStringSubmatch(s)
		if r := mapping(m[1]); r != "" {
			return r
		}
		return m[2]
	})
}
