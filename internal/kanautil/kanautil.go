// Package kanautil provides the small set of UTF-8/codepoint utilities the
// deinflector, preprocessor, and lookup coordinator all need: codepoint
// length and offsets, prefix slicing by codepoint count, and ASCII case
// folding. Named for the domain (kana/codepoint utilities) rather than
// "utf8util" because every caller in this module is operating on Japanese
// text specifically.
package kanautil

import "unicode/utf8"

// CodepointLen returns the number of Unicode codepoints (runes) in s.
func CodepointLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ByteOffsetOfCodepoint returns the byte offset of the n-th codepoint
// (0-indexed) in s. If n >= CodepointLen(s), returns len(s).
func ByteOffsetOfCodepoint(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for count := 0; count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			return len(s)
		}
		i += size
	}
	return i
}

// PrefixCodepoints returns the first n codepoints of s. If n exceeds the
// codepoint length, the whole string is returned.
func PrefixCodepoints(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return s[:ByteOffsetOfCodepoint(s, n)]
}

// SuffixCodepoints returns the last n codepoints of s.
func SuffixCodepoints(s string, n int) string {
	total := CodepointLen(s)
	if n >= total {
		return s
	}
	return s[ByteOffsetOfCodepoint(s, total-n):]
}

// HasSuffixCodepoints reports whether s ends with suffix, purely as a byte
// comparison (suffix matching never needs to be codepoint-aware beyond
// ensuring the match starts on a rune boundary, which byte-suffix matching
// on valid UTF-8 already guarantees).
func HasSuffixCodepoints(s, suffix string) bool {
	if len(suffix) > len(s) {
		return false
	}
	return s[len(s)-len(suffix):] == suffix
}

// TrimSuffixCodepoints removes suffix from the end of s, assuming
// HasSuffixCodepoints(s, suffix) is true.
func TrimSuffixCodepoints(s, suffix string) string {
	return s[:len(s)-len(suffix)]
}

// Runes returns s as a rune slice, for callers that need random access by
// codepoint index repeatedly (avoids re-decoding UTF-8 on every call).
func Runes(s string) []rune {
	return []rune(s)
}

// FoldASCII lowercases ASCII letters only, leaving all other codepoints
// (including Japanese kana/kanji) untouched.
func FoldASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
