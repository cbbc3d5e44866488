package discovery

import "strings"

// attachmentCategory is the backend's binary-attachment type. It is never an
// exportable content category and is excluded no matter which strategy
// produced the listing.
const attachmentCategory = "attachment"

// headerToken is the column header a malformed machine-readable listing can
// leak into the category list.
const headerToken = "name"

// Validate cleans a raw category listing: tokens are trimmed, empty tokens,
// the leaked header token and the attachment category are dropped, and the
// remainder is deduplicated preserving first-seen order.
func Validate(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var out []string

	for _, token := range raw {
		token = strings.TrimSpace(token)
		if token == "" || token == headerToken || token == attachmentCategory {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}

	return out
}

// splitLines turns raw command output into one token per line.
func splitLines(output []byte) []string {
	return strings.Split(strings.ReplaceAll(string(output), "\r\n", "\n"), "\n")
}
