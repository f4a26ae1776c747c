package mimetypes

import "mime"

type MIME string

const (
	Unknown         MIME = "unknown"
	TextPlain       MIME = "text/plain"
	ApplicationJSON MIME = "application/json"
)

// Matches compares the media type of a detected or declared value, parameters such as charset are ignored.
func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// MatchesAny returns the first expected type detected matches.
func MatchesAny(detected string, expected ...MIME) (MIME, bool) {
	for _, e := range expected {
		if m, ok := Matches(detected, e); ok {
			return m, true
		}
	}
	return Unknown, false
}
