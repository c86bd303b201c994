// Package lookup coordinates the prefix scan, orthographic-variant and
// deinflection fan-out, reader queries, grammatical compatibility
// filtering, deduplication, and ranking that together answer one user
// query. The shape generalizes a single-dimension "visit candidates,
// filter, accumulate, sort, truncate" completion routine across three
// fan-out dimensions instead of one.
package lookup

import (
	"math"
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/kotobaserve/kotoba/internal/kanautil"
	"github.com/kotobaserve/kotoba/pkg/deinflect"
	"github.com/kotobaserve/kotoba/pkg/dictreader"
	"github.com/kotobaserve/kotoba/pkg/textproc"
)

// Result is one ranked entry returned to the caller.
type Result struct {
	Expression  string
	Reading     string
	Rules       string
	Glossaries  []dictreader.GlossaryEntry
	Frequencies []dictreader.FreqGroup
	Pitches     []dictreader.PitchGroup
	Matched     int // codepoint length of the prefix that produced this entry
	Steps       int // preprocessor step count of the winning variant
	TraceLen    int // deinflection trace length of the winning candidate
}

type survivor struct {
	res      *dictreader.TermResult
	matched  int
	steps    int
	traceLen int
}

// Lookup runs the full coordinator procedure against text, returning at
// most maxResults ranked entries. scanLength bounds how many leading
// codepoints of text are considered as prefixes. scanLength or maxResults
// <= 0 yields an empty result list, per the programmer-error policy.
func Lookup(reader *dictreader.Reader, text string, scanLength, maxResults int) []Result {
	if scanLength <= 0 || maxResults <= 0 {
		return nil
	}

	total := kanautil.CodepointLen(text)
	l := scanLength
	if total < l {
		l = total
	}

	// Survivors are accumulated in a patricia trie keyed by
	// "expression\x00reading" rather than a plain map: the trie's
	// shared-prefix structure means term results for the same expression
	// (different readings) sit in the same subtree, which the trie
	// visitor below walks in a single pass to produce the final ranked
	// list.
	survivors := patricia.NewTrie()

	for i := l; i >= 1; i-- {
		prefix := kanautil.PrefixCodepoints(text, i)
		for _, variant := range textproc.Process(prefix) {
			for _, cand := range deinflect.Deinflect(variant.Text) {
				termResults := reader.QueryTerm(cand.Text)
				for _, tr := range termResults {
					if !compatible(cand.Conditions, tr.Rules) {
						continue
					}
					key := patricia.Prefix(tr.Expression + "\x00" + tr.Reading)
					if item := survivors.Get(key); item != nil {
						existing := item.(*survivor)
						if i > existing.matched {
							existing.res = tr
							existing.matched = i
							existing.steps = variant.Steps
							existing.traceLen = len(cand.Trace)
						}
						continue
					}
					survivors.Insert(key, &survivor{
						res:      tr,
						matched:  i,
						steps:    variant.Steps,
						traceLen: len(cand.Trace),
					})
				}
			}
		}
	}

	var list []*survivor
	survivors.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		list = append(list, item.(*survivor))
		return nil
	})

	reader.AttachFrequencies(collectResults(list))
	reader.AttachPitch(collectResults(list))

	freqDictCount := reader.FrequencyDictCount()
	sort.SliceStable(list, func(a, b int) bool {
		return rankLess(list[a], list[b], freqDictCount)
	})

	if len(list) > maxResults {
		list = list[:maxResults]
	}

	out := make([]Result, 0, len(list))
	for _, s := range list {
		out = append(out, Result{
			Expression:  s.res.Expression,
			Reading:     s.res.Reading,
			Rules:       s.res.Rules,
			Glossaries:  s.res.Glossaries,
			Frequencies: s.res.Frequencies,
			Pitches:     s.res.Pitches,
			Matched:     s.matched,
			Steps:       s.steps,
			TraceLen:    s.traceLen,
		})
	}
	return out
}

func collectResults(list []*survivor) []*dictreader.TermResult {
	out := make([]*dictreader.TermResult, len(list))
	for i, s := range list {
		out[i] = s.res
	}
	return out
}

// compatible implements the compatibility filter: if cond is NONE, every
// term passes; otherwise the dictionary-side bitmap derived from the
// term's rules string must either be zero (no tags declared) or share a
// bit with cond.
func compatible(cond deinflect.Conditions, rules string) bool {
	if cond == deinflect.NONE {
		return true
	}
	dictCond := deinflect.Translate(rules)
	if dictCond == deinflect.NONE {
		return true
	}
	return dictCond&cond != 0
}

// rankLess implements step 5's lexicographic comparison: longer matched
// prefix first, then smaller step count, then shorter trace, then
// frequency order dictionary-by-dictionary in mount order.
func rankLess(a, b *survivor, freqDictCount int) bool {
	if a.matched != b.matched {
		return a.matched > b.matched
	}
	if a.steps != b.steps {
		return a.steps < b.steps
	}
	if a.traceLen != b.traceLen {
		return a.traceLen < b.traceLen
	}
	for d := 0; d < freqDictCount; d++ {
		av := minFreqForDict(a.res, d)
		bv := minFreqForDict(b.res, d)
		if av != bv {
			return av < bv
		}
	}
	return false
}

// minFreqForDict returns the minimum non-negative frequency value among a
// dictionary's entries for this term. Negative values (some frequency
// dictionaries use them to mark a rank offset or an unranked placeholder
// rather than an actual frequency) are excluded from the minimum rather than
// winning it outright.
func minFreqForDict(res *dictreader.TermResult, dictIndex int) float64 {
	if dictIndex >= len(res.Frequencies) {
		return math.Inf(1)
	}
	group := res.Frequencies[dictIndex]
	min := math.Inf(1)
	for _, e := range group.Entries {
		if e.Value < 0 {
			continue
		}
		if float64(e.Value) < min {
			min = float64(e.Value)
		}
	}
	return min
}
