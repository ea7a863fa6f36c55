// Package sanitize derives filesystem-safe base names from episode titles.
package sanitize

import (
	"regexp"
	"strings"
)

// maxBaseNameLength bounds the base name so the full path stays well under
// common filesystem limits once the extension is appended.
const maxBaseNameLength = 200

var (
	invalidChars  = regexp.MustCompile(`[\\/*?:"<>|]`)
	separatorRuns = regexp.MustCompile(`[\s-]+`)
)

// BaseName turns an arbitrary title into a safe filename base: characters
// illegal in file paths are stripped, runs of whitespace and hyphens collapse
// to a single underscore, leading/trailing underscores are trimmed, and the
// result is truncated to a bounded length.
func BaseName(title string) string {
	name := invalidChars.ReplaceAllString(title, "")
	name = separatorRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	runes := []rune(name)
	if len(runes) > maxBaseNameLength {
		runes = runes[:maxBaseNameLength]
	}
	return string(runes)
}
