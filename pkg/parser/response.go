package parser

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("^```[a-zA-Z]*\n|\n?```$")

// CleanResponse trims model output and removes a code fence wrapping the
// whole response. Fences inside the text are left alone.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") && len(text) > 6 {
		text = fenceRe.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
