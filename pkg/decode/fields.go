package decode

import "strings"

// splitFields splits a comma-separated field list. Double-quoted fields may
// contain the separator (participant display names); quotes are stripped and
// a doubled quote inside a quoted field unescapes to a single quote.
func splitFields(s string) []string {
	fields := make([]string, 0, 16)
	i := 0

	for {
		if i < len(s) && s[i] == '"' {
			// Quoted field.
			var b strings.Builder
			i++
			for i < len(s) {
				if s[i] == '"' {
					if i+1 < len(s) && s[i+1] == '"' {
						b.WriteByte('"')
						i += 2
						continue
					}
					i++
					break
				}
				b.WriteByte(s[i])
				i++
			}
			// Anything between the closing quote and the separator
			// is dropped.
			for i < len(s) && s[i] != ',' {
				i++
			}
			fields = append(fields, b.String())
		} else {
			// Bare field.
			start := i
			for i < len(s) && s[i] != ',' {
				i++
			}
			fields = append(fields, s[start:i])
		}

		if i >= len(s) {
			return fields
		}
		i++ // separator
		if i == len(s) {
			return append(fields, "")
		}
	}
}

// quoteField renders a field, quoting it when it contains the separator or
// a quote character.
func quoteField(s string) string {
	if !strings.ContainsAny(s, `,"`) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
