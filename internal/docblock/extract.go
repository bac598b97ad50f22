package docblock

import (
	"regexp"
	"strings"
)

var (
	// Sass uses line comments: "//doc" followed by lines indented with a space.
	sassCommentPattern = regexp.MustCompile(`\s*//doc\s*((( [^\n]*\n)|\n)+)`)

	// Every other recognized type uses "/*doc ... */".
	blockCommentPattern = regexp.MustCompile(`(?ms)^\s*/\*doc(.*?)\*/`)
)

// Extract returns the inner text of every documentation comment in content.
// ext is the file extension including the dot. Files without documentation
// comments yield an empty slice.
func Extract(content, ext string) []string {
	pattern := blockCommentPattern
	if strings.EqualFold(ext, ".sass") {
		pattern = sassCommentPattern
	}

	matches := pattern.FindAllStringSubmatch(content, -1)
	comments := make([]string, 0, len(matches))
	for _, m := range matches {
		comments = append(comments, m[1])
	}
	return comments
}
