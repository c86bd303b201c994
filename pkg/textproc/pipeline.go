// Package textproc enumerates orthographic variants of a query fragment:
// nine ordered transformers, each with its own small option set, applied as
// a union-and-dedup sweep so the lookup coordinator can prefer
// less-modified matches via the accumulated step count.
package textproc

// Variant is one candidate rewriting of the original text, plus the number
// of optional transformations applied to reach it.
type Variant struct {
	Text  string
	Steps int
}

// option is one transformer output: a candidate text and how many steps it
// costs relative to the input (0 for the identity option).
type option struct {
	text  string
	steps int
}

type stageFunc func(s string) []option

var stages = []stageFunc{
	stageHalfwidthKatakana,
	stageLatinToHiragana,
	stageCombiningMarkFold,
	stageCJKCompatibilityNFKD,
	stageCJKRadicalNFKD,
	stageAlphanumericWidth,
	stageHiraganaKatakana,
	stageCollapseEmphatic,
	stageKanjiVariant,
}

// Process runs text through all nine transformers and returns the
// deduplicated set of (text, step_count) variants reachable, including the
// identity variant (original text, step_count 0).
func Process(text string) []Variant {
	current := map[string]int{text: 0}
	for _, stage := range stages {
		current = applyStage(current, stage)
	}
	out := make([]Variant, 0, len(current))
	for t, steps := range current {
		out = append(out, Variant{Text: t, Steps: steps})
	}
	return out
}

func applyStage(in map[string]int, stage stageFunc) map[string]int {
	out := make(map[string]int, len(in))
	for text, steps := range in {
		for _, opt := range stage(text) {
			total := steps + opt.steps
			if cur, ok := out[opt.text]; !ok || total < cur {
				out[opt.text] = total
			}
		}
	}
	return out
}
