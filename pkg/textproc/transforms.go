package textproc

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

func identity(s string) option { return option{text: s, steps: 0} }

// stageHalfwidthKatakana implements transformer 1: halfwidth katakana (and
// halfwidth punctuation sharing its block) folded to fullwidth, combining a
// base with a following halfwidth dakuten/handakuten mark into one
// precomposed fullwidth kana where the combination exists.
func stageHalfwidthKatakana(s string) []option {
	converted := convertHalfwidthKatakana(s)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

func convertHalfwidthKatakana(s string) string {
	runes := []rune(s)
	var out []rune
	for i := 0; i < len(runes); i++ {
		base, ok := halfwidthKatakana[runes[i]]
		if !ok {
			out = append(out, runes[i])
			continue
		}
		if i+1 < len(runes) {
			switch runes[i+1] {
			case halfwidthDakuten:
				if combined, ok := dakutenCombine[base]; ok {
					out = append(out, combined)
					i++
					continue
				}
			case halfwidthHandakuten:
				if combined, ok := handakutenCombine[base]; ok {
					out = append(out, combined)
					i++
					continue
				}
			}
		}
		out = append(out, base)
	}
	return string(out)
}

// stageLatinToHiragana implements transformer 2: case-fold to lower, then
// apply longest-match-first romaji replacements, with a post-fix pass that
// rewrites a leftover sokuon-gap-sokuon single-letter span into a plain
// sokuon (the replacement table is not iterative, so っXっ patterns from a
// single consumed consonant can remain; this folds them).
func stageLatinToHiragana(s string) []option {
	folded := strings.ToLower(s)
	converted := applyRomaji(folded)
	converted = fixSokuonGaps(converted)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

func applyRomaji(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		matched := false
		for _, entry := range romajiTable {
			if strings.HasPrefix(s[i:], entry.from) {
				b.WriteString(entry.to)
				i += len(entry.from)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		r := s[i]
		if r >= 'a' && r <= 'z' {
			// unmapped latin letter, leave as-is
			b.WriteByte(r)
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		if size == 0 {
			size = 1
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func fixSokuonGaps(s string) string {
	runes := []rune(s)
	for i := 0; i+2 < len(runes); i++ {
		if (runes[i] == 'っ' || runes[i] == 'ッ') && runes[i+2] == runes[i] {
			letter := runes[i+1]
			if letter >= 'a' && letter <= 'z' {
				runes = append(runes[:i+1], runes[i+2:]...)
			}
		}
	}
	return string(runes)
}

// stageCombiningMarkFold implements transformer 3: scanning left-to-right,
// fold a kana followed by a combining dakuten/handakuten mark into its
// precomposed form.
func stageCombiningMarkFold(s string) []option {
	converted := foldCombiningMarks(s)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

func foldCombiningMarks(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if i+1 < len(runes) {
			switch runes[i+1] {
			case combiningDakuten:
				if folded, ok := combiningDakutenTargets[runes[i]]; ok {
					out = append(out, folded)
					i++
					continue
				}
			case combiningHandakuten:
				if folded, ok := combiningHandakutenTargets[runes[i]]; ok {
					out = append(out, folded)
					i++
					continue
				}
			}
		}
		out = append(out, runes[i])
	}
	return string(out)
}

// inCompatibilityBlock covers the CJK Compatibility, CJK Compatibility
// Ideographs and CJK Compatibility Forms blocks targeted by transformer 4.
func inCompatibilityBlock(r rune) bool {
	return (r >= 0x3300 && r <= 0x33FF) || (r >= 0xF900 && r <= 0xFAFF) || (r >= 0xFE30 && r <= 0xFE4F)
}

// inRadicalsBlock covers the Kangxi Radicals and CJK Radicals Supplement
// blocks targeted by transformer 5.
func inRadicalsBlock(r rune) bool {
	return (r >= 0x2E80 && r <= 0x2EFF) || (r >= 0x2F00 && r <= 0x2FDF)
}

func decomposeBlockRunes(s string, inBlock func(rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if inBlock(r) {
			b.WriteString(norm.NFKD.String(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stageCJKCompatibilityNFKD implements transformer 4, grounded on
// golang.org/x/text/unicode/norm's NFKD decomposition.
func stageCJKCompatibilityNFKD(s string) []option {
	converted := decomposeBlockRunes(s, inCompatibilityBlock)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

// stageCJKRadicalNFKD implements transformer 5.
func stageCJKRadicalNFKD(s string) []option {
	converted := decomposeBlockRunes(s, inRadicalsBlock)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

// stageAlphanumericWidth implements transformer 6 via toHalfwidthAlnum and
// toFullwidthAlnum.
func stageAlphanumericWidth(s string) []option {
	opts := []option{identity(s)}
	if half := toHalfwidthAlnum(s); half != s {
		opts = append(opts, option{text: half, steps: 1})
	}
	if full := toFullwidthAlnum(s); full != s {
		opts = append(opts, option{text: full, steps: 1})
	}
	return opts
}

func toHalfwidthAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0xFF01 && r <= 0xFF5E:
			b.WriteRune(r - 0xFEE0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toFullwidthAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '!' && r <= '~':
			b.WriteRune(r + 0xFEE0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stageHiraganaKatakana implements transformer 7: hiragana → katakana is a
// fixed codepoint offset; katakana → hiragana additionally resolves the
// prolonged sound mark using the preceding kana's vowel class, with the
// historical o+ー→う exception.
func stageHiraganaKatakana(s string) []option {
	opts := []option{identity(s)}
	if toK := hiraganaToKatakana(s); toK != s {
		opts = append(opts, option{text: toK, steps: 1})
	}
	if toH := katakanaToHiragana(s); toH != s {
		opts = append(opts, option{text: toH, steps: 1})
	}
	return opts
}

func hiraganaToKatakana(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 0x3041 && r <= 0x3096 {
			b.WriteRune(r + 0x60)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func katakanaToHiragana(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	var lastVowel byte
	for _, r := range runes {
		if r == 'ー' {
			if lastVowel != 0 {
				v := lastVowel
				if v == 'o' {
					v = 'u' // historical: お+ー folds to う, not お
				}
				out = append(out, vowelKana[v])
			} else {
				out = append(out, r)
			}
			continue
		}
		if r >= 0x30A1 && r <= 0x30F6 {
			h := r - 0x60
			out = append(out, h)
			lastVowel = vowelClass[h]
			continue
		}
		out = append(out, r)
		lastVowel = vowelClass[r]
	}
	return string(out)
}

// isEmphaticMark reports whether r is one of the three codepoints
// transformer 8 treats as a collapsible emphatic run: small tsu, small
// katakana tsu, prolonged sound mark.
func isEmphaticMark(r rune) bool {
	return r == 'っ' || r == 'ッ' || r == 'ー'
}

// stageCollapseEmphatic implements transformer 8: runs of emphatic marks at
// the very start/end of the text are preserved; "partial" leaves one
// representative of each interior adjacent run, "full" removes interior
// runs entirely.
func stageCollapseEmphatic(s string) []option {
	opts := []option{identity(s)}
	if partial := collapseEmphatic(s, false); partial != s {
		opts = append(opts, option{text: partial, steps: 1})
	}
	if full := collapseEmphatic(s, true); full != s {
		opts = append(opts, option{text: full, steps: 1})
	}
	return opts
}

func collapseEmphatic(s string, full bool) string {
	runes := []rune(s)
	n := len(runes)
	if n == 0 {
		return s
	}
	start := 0
	for start < n && isEmphaticMark(runes[start]) {
		start++
	}
	end := n
	for end > start && isEmphaticMark(runes[end-1]) {
		end--
	}
	if start >= end {
		return s
	}

	var out []rune
	out = append(out, runes[:start]...)
	i := start
	for i < end {
		if !isEmphaticMark(runes[i]) {
			out = append(out, runes[i])
			i++
			continue
		}
		j := i
		for j < end && runes[j] == runes[i] {
			j++
		}
		if !full {
			out = append(out, runes[i])
		}
		i = j
	}
	out = append(out, runes[end:]...)
	return string(out)
}

// stageKanjiVariant implements transformer 9: a static 1-to-1 code point
// table from a variant form to its standard form.
func stageKanjiVariant(s string) []option {
	converted := applyKanjiVariants(s)
	if converted == s {
		return []option{identity(s)}
	}
	return []option{identity(s), {text: converted, steps: 1}}
}

func applyKanjiVariants(s string) string {
	var b strings.Builder
	for _, r := range s {
		if std, ok := kanjiVariants[r]; ok {
			b.WriteRune(std)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
