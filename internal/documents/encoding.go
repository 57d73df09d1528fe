package documents

import (
	"strings"
	"unicode/utf8"
)

// mojibakeMarkers are prefixes of UTF-8 text that was decoded as Latin-1 and
// re-encoded, the classic "Â©" corruption seen in real corpora.
var mojibakeMarkers = []string{
	"Â©", // Â©
	"Â®", // Â®
	"â", // â€ + smart quote/dash continuation bytes
	"Ã©", // Ã©
	"Ã¨", // Ã¨
}

// hasEncodingAnomaly reports whether s carries byte sequences that indicate
// an encoding round-trip went wrong somewhere upstream. Detection is
// deliberately conservative: flagging a real "Â" glyph once is cheaper for an
// author to dismiss than silently shipping mangled metadata.
func hasEncodingAnomaly(s string) bool {
	if s == "" {
		return false
	}
	if !utf8.ValidString(s) {
		return true
	}
	if strings.ContainsRune(s, utf8.RuneError) {
		return true
	}
	for _, marker := range mojibakeMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
