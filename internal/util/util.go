package util

import "strings"

// MakeTextList joins a batch's compiled file paths into a single
// human-readable line for the summary line cmd/kushc/main.go prints once a
// batch has been compiled, e.g.
// "a.kush, b.kush, and c.kush".
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		// three or more: oxford comma before the last entry.
		last := len(items) - 1
		joined := strings.Join(items[:last], ", ")
		return joined + ", and " + items[last]
	}
}
