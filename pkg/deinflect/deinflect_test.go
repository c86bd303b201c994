package deinflect

import "testing"

func hasCandidate(cands []Candidate, text string) bool {
	for _, c := range cands {
		if c.Text == text {
			return true
		}
	}
	return false
}

func TestDeinflectIncludesIdentity(t *testing.T) {
	cands := Deinflect("食べる")
	if len(cands) == 0 {
		t.Fatal("expected at least the identity candidate")
	}
	if cands[0].Text != "食べる" || cands[0].Conditions != NONE || len(cands[0].Trace) != 0 {
		t.Fatalf("first candidate should be the identity triple, got %+v", cands[0])
	}
}

func TestDeinflectMasuStem(t *testing.T) {
	cands := Deinflect("食べます")
	if !hasCandidate(cands, "食べる") {
		t.Fatalf("expected masu-stem deinflection to reach 食べる, got %+v", cands)
	}
}

func TestDeinflectTeForm(t *testing.T) {
	cands := Deinflect("食べて")
	if !hasCandidate(cands, "食べる") {
		t.Fatalf("expected te-form deinflection to reach 食べる, got %+v", cands)
	}
}

func TestDeinflectTaForm(t *testing.T) {
	cands := Deinflect("飲んだ")
	if !hasCandidate(cands, "飲む") {
		t.Fatalf("expected ta-form deinflection to reach 飲む, got %+v", cands)
	}
}

func TestDeinflectKuFormAdjective(t *testing.T) {
	cands := Deinflect("早く")
	if !hasCandidate(cands, "早い") {
		t.Fatalf("expected ku-form deinflection to reach 早い, got %+v", cands)
	}
}

func TestDeinflectNaiForm(t *testing.T) {
	cands := Deinflect("書かない")
	if !hasCandidate(cands, "書く") {
		t.Fatalf("expected nai-form deinflection to reach 書く, got %+v", cands)
	}
}

func TestDeinflectChainedMasenToDictionaryForm(t *testing.T) {
	cands := Deinflect("食べません")
	if !hasCandidate(cands, "食べる") {
		t.Fatalf("expected chained masen->masu-stem->dictionary form to reach 食べる, got %+v", cands)
	}
}

// Scenario 1 from spec.md §8: 食べられました (polite past passive/potential
// of 食べる) must reach 食べる via a -ました -> -ます -> passive/potential
// chain: masu-past undoes the ました contraction to ます, masu-stem undoes
// ます to the ichidan dictionary form, and potential-passive then undoes
// られる.
func TestDeinflectScenario1MasuPastPassiveChain(t *testing.T) {
	cands := Deinflect("食べられました")
	var found *Candidate
	for i := range cands {
		if cands[i].Text == "食べる" {
			found = &cands[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected 食べられました to deinflect to 食べる, got %+v", cands)
	}
	if found.Conditions&V1 == 0 {
		t.Fatalf("expected the 食べる candidate's conditions to include V1, got %v", found.Conditions)
	}
	hasMasu, hasPassive := false, false
	for _, g := range found.Trace {
		if g == "masu-past" || g == "masu-stem" {
			hasMasu = true
		}
		if g == "potential-passive" {
			hasPassive = true
		}
	}
	if !hasMasu || !hasPassive {
		t.Fatalf("expected trace to mention a masu step and a passive/potential step, got %v", found.Trace)
	}
}

// The ませんでした family (polite past negative) reaches the dictionary
// form via でした -> Masen, then the masen rule (now gated on Masen rather
// than an unconditional NONE) consumes it into the masu-stem chain.
func TestDeinflectScenarioMasenDeshitaChain(t *testing.T) {
	cands := Deinflect("食べませんでした")
	if !hasCandidate(cands, "食べる") {
		t.Fatalf("expected ませんでした chain to reach 食べる, got %+v", cands)
	}
}

// Scenario 2 from spec.md §8: 高くない reaches 高い via a trace ending in
// an adj-i nai-form rewrite (an equivalent trace to the two-step -ない/-く
// decomposition the spec describes).
func TestDeinflectScenario2NaiFormAdjective(t *testing.T) {
	cands := Deinflect("高くない")
	var found *Candidate
	for i := range cands {
		if cands[i].Text == "高い" {
			found = &cands[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("expected 高くない to deinflect to 高い, got %+v", cands)
	}
	if found.Conditions&AdjI == 0 {
		t.Fatalf("expected the 高い candidate's conditions to include AdjI, got %v", found.Conditions)
	}
	if len(found.Trace) == 0 {
		t.Fatal("expected a non-empty trace reaching 高い")
	}
}

func TestDeinflectNeverExceedsMaxDepth(t *testing.T) {
	cands := Deinflect("食べます")
	for _, c := range cands {
		if len(c.Trace) > maxDepth {
			t.Fatalf("candidate trace %v exceeds maxDepth %d", c.Trace, maxDepth)
		}
	}
}

func TestDeinflectNoMatchingSuffixYieldsOnlyIdentity(t *testing.T) {
	// A text with no matching suffixes should only ever produce the
	// identity candidate.
	cands := Deinflect("猫")
	if len(cands) != 1 {
		t.Fatalf("expected only the identity candidate for 猫, got %+v", cands)
	}
}

func TestTranslateLongestPrefixWins(t *testing.T) {
	if got := Translate("v5u"); got != V5 {
		t.Fatalf("Translate(v5u) = %v, want V5", got)
	}
	if got := Translate("v1"); got != V1 {
		t.Fatalf("Translate(v1) = %v, want V1", got)
	}
	if got := Translate("adj-i"); got != AdjI {
		t.Fatalf("Translate(adj-i) = %v, want AdjI", got)
	}
}

func TestTranslateMultipleTags(t *testing.T) {
	got := Translate("v5u vt")
	if got&V5 == 0 {
		t.Fatalf("Translate(v5u vt) = %v, expected V5 bit set", got)
	}
}

func TestTranslateUnknownTagContributesNothing(t *testing.T) {
	if got := Translate("xyz"); got != NONE {
		t.Fatalf("Translate(xyz) = %v, want NONE", got)
	}
}

func TestTranslateEmptyString(t *testing.T) {
	if got := Translate(""); got != NONE {
		t.Fatalf("Translate(\"\") = %v, want NONE", got)
	}
}
