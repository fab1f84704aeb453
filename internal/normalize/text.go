package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text canonicalises a descriptive string: NFC composition, trimmed, inner
// whitespace collapsed. The "--" placeholder becomes "". Natural keys must
// never go through Text since it would change their derived ids.
func Text(s string) string {
	if blank(s) {
		return ""
	}
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// OptionalText is Text returning nil for an empty result.
func OptionalText(s string) *string {
	t := Text(s)
	if t == "" {
		return nil
	}
	return &t
}
