package mailquery

import "strings"

// regexMeta is the fixed set of characters EscapeRegex prefixes with a
// backslash. Documented rather than delegated to regexp.QuoteMeta so
// downstream matchers across languages agree on the escaped set.
const regexMeta = "\\^$.|?*+()[]{}"

// EscapeRegex returns s with regular-expression metacharacters escaped,
// for embedding user-typed text in a regular expression. It is a pure
// string transform with no dependency on parsing.
func EscapeRegex(s string) string {
	var builder strings.Builder

	builder.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if strings.IndexByte(regexMeta, s[i]) >= 0 {
			builder.WriteByte('\\')
		}

		builder.WriteByte(s[i])
	}

	return builder.String()
}
