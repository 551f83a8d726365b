package generate

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?ms)^////$.*?^////\s*?\n`)
	lineCommentRe  = regexp.MustCompile(`(?m)^//[^/\n].*\n|^//\n`)
)

// postprocess cleans up a rendered skeleton: optionally strips comments,
// collapses blank-line runs, and normalizes the ending so that two generated
// files can be included right next to each other without syntax bleed.
func postprocess(body string, keepComments bool) string {
	if !keepComments {
		body = blockCommentRe.ReplaceAllString(body, "")
		body = lineCommentRe.ReplaceAllString(body, "")
	}

	body = strings.TrimLeft(body, " \t\n")

	for strings.Contains(body, "\n\n\n") {
		body = strings.ReplaceAll(body, "\n\n\n", "\n\n")
	}

	return strings.TrimRight(body, "\n") + "\n\n"
}
