package deinflect

// Rule is one reverse-rewrite step: if a candidate ends in From and its
// current condition bitmap is NONE or intersects ConditionsIn, a new
// candidate is produced ending in To instead, with condition bitmap set to
// ConditionsOut and the trace extended by Group.
type Rule struct {
	From           string
	To             string
	ConditionsIn   Conditions
	ConditionsOut  Conditions
	Group          string
}

// rules is the full table, grounded on standard Japanese verb/adjective
// conjugation patterns. It is intentionally not exhaustive of every
// irregular form; it covers the categories of the condition lattice in
// conditions.go (v1, v5, vk/vs/vz, adj-i, and the
// masu/masen/te/ba/ku/ta/nn/nasai/ya auxiliary forms). v1 and v5 are single
// categories here; there are no dominant/peripheral subtypes.
var rules = []Rule{
	// masu-stem -> dictionary form
	{"ます", "る", Masu, V1, "masu-stem"},
	{"ります", "る", Masu, V1, "masu-stem"},
	{"きます", "く", Masu, V5, "masu-stem"},
	{"ぎます", "ぐ", Masu, V5, "masu-stem"},
	{"します", "す", Masu, V5, "masu-stem"},
	{"ちます", "つ", Masu, V5, "masu-stem"},
	{"にます", "ぬ", Masu, V5, "masu-stem"},
	{"びます", "ぶ", Masu, V5, "masu-stem"},
	{"みます", "む", Masu, V5, "masu-stem"},
	{"ります", "る", Masu, V5, "masu-stem"},
	{"います", "う", Masu, V5, "masu-stem"},
	{"きます", "くる", Masu, VK, "masu-stem"},
	{"します", "する", Masu, VS, "masu-stem"},
	{"じます", "ずる", Masu, VZ, "masu-stem"},

	// masen (negative polite) -> masu-stem
	{"ません", "ます", Masen, Masu, "masen"},

	// nai-form (plain negative) -> dictionary form
	{"ない", "る", Nn, V1, "nai-form"},
	{"かない", "く", Nn, V5, "nai-form"},
	{"がない", "ぐ", Nn, V5, "nai-form"},
	{"さない", "す", Nn, V5, "nai-form"},
	{"たない", "つ", Nn, V5, "nai-form"},
	{"なない", "ぬ", Nn, V5, "nai-form"},
	{"ばない", "ぶ", Nn, V5, "nai-form"},
	{"まない", "む", Nn, V5, "nai-form"},
	{"らない", "る", Nn, V5, "nai-form"},
	{"わない", "う", Nn, V5, "nai-form"},
	{"こない", "くる", Nn, VK, "nai-form"},
	{"しない", "する", Nn, VS, "nai-form"},
	{"じない", "ずる", Nn, VZ, "nai-form"},
	{"くない", "い", Nn, AdjI, "nai-form-adj"},

	// te-form -> dictionary form
	{"て", "る", Te, V1, "te-form"},
	{"いて", "く", Te, V5, "te-form"},
	{"いで", "ぐ", Te, V5, "te-form"},
	{"して", "す", Te, V5, "te-form"},
	{"って", "つ", Te, V5, "te-form"},
	{"って", "る", Te, V5, "te-form"},
	{"って", "う", Te, V5, "te-form"},
	{"んで", "ぬ", Te, V5, "te-form"},
	{"んで", "ぶ", Te, V5, "te-form"},
	{"んで", "む", Te, V5, "te-form"},
	{"きて", "くる", Te, VK, "te-form"},
	{"して", "する", Te, VS, "te-form"},
	{"じて", "ずる", Te, VZ, "te-form"},
	{"くて", "い", Te, AdjI, "te-form-adj"},

	// ta-form (past) -> dictionary form
	{"た", "る", Ta, V1, "ta-form"},
	{"いた", "く", Ta, V5, "ta-form"},
	{"いだ", "ぐ", Ta, V5, "ta-form"},
	{"した", "す", Ta, V5, "ta-form"},
	{"った", "つ", Ta, V5, "ta-form"},
	{"った", "る", Ta, V5, "ta-form"},
	{"った", "う", Ta, V5, "ta-form"},
	{"んだ", "ぬ", Ta, V5, "ta-form"},
	{"んだ", "ぶ", Ta, V5, "ta-form"},
	{"んだ", "む", Ta, V5, "ta-form"},
	{"きた", "くる", Ta, VK, "ta-form"},
	{"した", "する", Ta, VS, "ta-form"},
	{"じた", "ずる", Ta, VZ, "ta-form"},
	{"かった", "い", Ta, AdjI, "ta-form-adj"},
	{"ました", "ます", Ta, Masu, "masu-past"},
	{"でした", "", Ta, Masen, "copula-past"},

	// ba-form (conditional) -> dictionary form
	{"れば", "る", Ba, V1, "ba-form"},
	{"けば", "く", Ba, V5, "ba-form"},
	{"げば", "ぐ", Ba, V5, "ba-form"},
	{"せば", "す", Ba, V5, "ba-form"},
	{"てば", "つ", Ba, V5, "ba-form"},
	{"ねば", "ぬ", Ba, V5, "ba-form"},
	{"べば", "ぶ", Ba, V5, "ba-form"},
	{"めば", "む", Ba, V5, "ba-form"},
	{"れば", "る", Ba, V5, "ba-form"},
	{"えば", "う", Ba, V5, "ba-form"},
	{"くれば", "くる", Ba, VK, "ba-form"},
	{"すれば", "する", Ba, VS, "ba-form"},
	{"ければ", "い", Ba, AdjI, "ba-form-adj"},

	// ya-form (colloquial conditional, -eba -> -ya)
	{"れりゃ", "る", Ya, V1, "ya-form"},
	{"けりゃ", "く", Ya, V5, "ya-form"},

	// ku-form (adverbial, i-adjective only)
	{"く", "い", Ku, AdjI, "ku-form"},

	// nasai (imperative, masu-stem based)
	{"なさい", "ます", Nasai, Masu, "nasai-form"},

	// potential/passive -(r)areru, causative -(s)aseru collapse to V1 stems.
	// Each attaches to the irrealis stem of an ichidan verb, so
	// ConditionsIn=V1: after another rule they fire only when that rule
	// produced V1 (e.g. masu-stem). Like every rule, they also fire on the
	// unmodified input, whose condition bitmap is NONE.
	{"られる", "る", V1, V1, "potential-passive"},
	{"える", "う", V1, V1, "potential"},
	{"せる", "す", V1, V1, "causative"},
	{"かせる", "く", V1, V1, "causative"},

	// volitional -(y)ou
	{"よう", "る", NONE, V1, "volitional"},
	{"おう", "う", NONE, V5, "volitional"},
	{"こう", "く", NONE, V5, "volitional"},
}

// maxRuleLength is the longest From suffix, measured in codepoints, used
// to bound the descending suffix-length scan in Deinflect.
var maxRuleLength int

// rulesBySuffix indexes rules by their exact From suffix for O(1) lookup
// at each candidate suffix length, mirroring the exact-suffix map spec.md
// describes.
var rulesBySuffix map[string][]Rule

func init() {
	rulesBySuffix = make(map[string][]Rule, len(rules))
	for _, r := range rules {
		rulesBySuffix[r.From] = append(rulesBySuffix[r.From], r)
		n := codepointLen(r.From)
		if n > maxRuleLength {
			maxRuleLength = n
		}
	}
}
