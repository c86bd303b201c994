package deinflect

import "github.com/kotobaserve/kotoba/internal/kanautil"

func codepointLen(s string) int { return kanautil.CodepointLen(s) }

// Candidate is one reachable (text, conditions, trace) triple.
type Candidate struct {
	Text       string
	Conditions Conditions
	Trace      []string
}

const maxDepth = 8

// Deinflect expands text into every dictionary-form candidate reachable by
// recursively undoing suffix rewrites, bounded-depth right-to-left, the way
// a recursive suffix-stripping walker explores predecessor states. The
// result always starts with the identity triple (text, NONE, nil) and is
// order-stable with respect to insertion; it may contain duplicate strings
// with different traces or conditions.
func Deinflect(text string) []Candidate {
	var out []Candidate
	var trace []string
	walk(text, NONE, trace, 0, &out)
	return out
}

func walk(text string, cond Conditions, trace []string, depth int, out *[]Candidate) {
	*out = append(*out, Candidate{Text: text, Conditions: cond, Trace: append([]string(nil), trace...)})

	if depth >= maxDepth {
		return
	}

	length := codepointLen(text)
	limit := maxRuleLength
	if length < limit {
		limit = length
	}
	for n := limit; n >= 1; n-- {
		suffix := kanautil.SuffixCodepoints(text, n)
		candidates, ok := rulesBySuffix[suffix]
		if !ok {
			continue
		}
		for _, r := range candidates {
			if cond != NONE && cond&r.ConditionsIn == 0 {
				continue
			}
			rewritten := kanautil.TrimSuffixCodepoints(text, suffix) + r.To
			if rewritten == text {
				continue
			}
			trace = append(trace, r.Group)
			walk(rewritten, r.ConditionsOut, trace, depth+1, out)
			trace = trace[:len(trace)-1]
		}
	}
}
