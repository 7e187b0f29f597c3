package sample

import "strings"

// Replacement is written in place of every disallowed character.
const Replacement = '_'

// disallowed lists characters that break table fields or file names.
const disallowed = ", <>.'\";:"

// Sanitize replaces each disallowed character in raw with Replacement.
// A run of N disallowed characters becomes N replacements. The disallowed
// set is ASCII, so every other byte, valid UTF-8 or not, is kept as is.
func Sanitize(raw string) string {
	if strings.IndexAny(raw, disallowed) < 0 {
		return raw
	}
	b := []byte(raw)
	for i, c := range b {
		if strings.IndexByte(disallowed, c) >= 0 {
			b[i] = Replacement
		}
	}
	return string(b)
}
