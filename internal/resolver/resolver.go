// Package resolver picks the best audio enclosure for an episode.
package resolver

import (
	"strings"

	"github.com/podopus/podopus/internal/domain"
)

// Source is the chosen audio URL for one episode. Native is true when the
// enclosure is already in the target opus/ogg family and needs no transcode.
type Source struct {
	URL    string
	Native bool
}

// Resolve scans an episode's enclosures and returns the single best audio
// source. Native opus/ogg always wins over mpeg/mp3, regardless of enclosure
// order, so audio already in the target codec is never re-encoded.
//
// Enclosures typed as anything else (video, AAC, ...) are ignored; an episode
// carrying only those resolves to nothing.
func Resolve(episode domain.Episode) (Source, bool) {
	for _, enc := range episode.Enclosures {
		if mimeContains(enc.MIMEType, "opus", "ogg") {
			return Source{URL: enc.URL, Native: true}, true
		}
	}

	for _, enc := range episode.Enclosures {
		if mimeContains(enc.MIMEType, "mpeg", "mp3") {
			return Source{URL: enc.URL}, true
		}
	}

	return Source{}, false
}

// mimeContains reports whether the MIME type mentions any of the given
// markers. Matching is case-insensitive and substring-based so parameterized
// types like "audio/ogg; codecs=opus" match too.
func mimeContains(mimeType string, markers ...string) bool {
	lowered := strings.ToLower(mimeType)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
