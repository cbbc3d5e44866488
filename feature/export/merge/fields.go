package merge

import "strings"

// Delimiter separates fields in backend listings and in the rendered export.
const Delimiter = ','

// quote wraps fields whose free text contains the delimiter.
const quote = '"'

// SplitFields splits one delimited line into fields, honoring quoting: a
// field may be wrapped in quote characters and contain the delimiter
// literally inside the quotes, and a doubled quote inside a quoted field
// stands for one literal quote. Titles legitimately contain commas, so a
// naive split would shift every following field.
func SplitFields(line string) []string {
	fields := make([]string, 0, 8)
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == quote:
			if inQuotes && i+1 < len(line) && line[i+1] == quote {
				// Doubled quote inside a quoted field is a literal quote
				cur.WriteByte(quote)
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == Delimiter && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}

	return append(fields, cur.String())
}

// SanitizeTitle physically removes delimiter characters from free text. The
// output format carries no quoting, so embedded delimiters cannot be escaped,
// only removed. Sanitization is idempotent.
func SanitizeTitle(s string) string {
	return strings.ReplaceAll(s, string(Delimiter), "")
}
