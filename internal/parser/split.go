package parser

import (
	"strings"
)

// Split cuts a multi-hand file into one block per hand. A block starts at
// every header line ("... Hand #123: ..."); blank lines between hands are
// dropped. Text before the first header is kept as its own block so the
// caller sees it fail instead of losing it silently.
func Split(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []string
	var cur []string
	flush := func() {
		block := strings.TrimSpace(strings.Join(cur, "\n"))
		if block != "" {
			blocks = append(blocks, block)
		}
		cur = cur[:0]
	}
	for _, raw := range strings.Split(text, "\n") {
		if Classify(strings.TrimSpace(raw)) == RoleHeader {
			flush()
		}
		cur = append(cur, raw)
	}
	flush()
	return blocks
}
