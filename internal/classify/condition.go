package classify

// MatchMode selects how an AndCondition combines its keywords.
type MatchMode int

const (
	// MatchAll requires every keyword to be present.
	MatchAll MatchMode = iota
	// MatchAny requires at least one keyword to be present.
	MatchAny
)

// AndCondition is one top-tier trigger for a rule: a set of keywords combined
// under MatchAll or MatchAny. A satisfied condition classifies the document
// immediately with full confidence and bypasses the rule's exclude keywords.
type AndCondition struct {
	Keywords []string
	Mode     MatchMode
}

// Match evaluates the condition against a keyword hit set and returns the
// keywords that were present.
func (c AndCondition) Match(hits keywordSet) (bool, []string) {
	var matched []string
	for _, kw := range c.Keywords {
		if hits[kw] {
			matched = append(matched, kw)
		}
	}
	if c.Mode == MatchAll {
		return len(matched) == len(c.Keywords), matched
	}
	return len(matched) > 0, matched
}

func allOf(keywords ...string) AndCondition {
	return AndCondition{Keywords: keywords, Mode: MatchAll}
}

func anyOf(keywords ...string) AndCondition {
	return AndCondition{Keywords: keywords, Mode: MatchAny}
}
