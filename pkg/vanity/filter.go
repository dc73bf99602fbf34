package vanity

import "strings"

// Matches reports whether encoded starts with filter. The comparison is a
// case-sensitive literal prefix match; an empty filter matches everything.
func Matches(encoded, filter string) bool {
	return strings.HasPrefix(encoded, filter)
}

// Reachable reports whether filter can ever match an encoded public key,
// i.e. it is at most EncodedKeyLen characters of lowercase hex.
func Reachable(filter string) bool {
	return len(filter) <= EncodedKeyLen && lowerHex(filter)
}

// lowerHex reports whether s contains only [0-9a-f].
func lowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
